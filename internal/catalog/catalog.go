package catalog

import "strings"

const (
	// ContainerCaguama 是 940ml 的大瓶装
	ContainerCaguama = "caguama"
	// Container40oz 是 1182ml 的 40 盎司瓶
	Container40oz = "40oz"
)

// Beer 为预置的啤酒条目。
type Beer struct {
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	ABV   float64 `json:"abv"`
	Craft bool    `json:"craft"`
}

// Container 描述一种容器及其容量。
type Container struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Emoji    string `json:"emoji"`
	VolumeML int    `json:"volume_ml"`
}

var (
	beers = []Beer{
		{Name: "Corona Extra", Brand: "Grupo Modelo", ABV: 4.5},
		{Name: "Corona Light", Brand: "Grupo Modelo", ABV: 3.7},
		{Name: "Modelo Especial", Brand: "Grupo Modelo", ABV: 4.4},
		{Name: "Modelo Negra", Brand: "Grupo Modelo", ABV: 5.4},
		{Name: "Tecate", Brand: "Cuauhtémoc Moctezuma", ABV: 4.5},
		{Name: "Tecate Light", Brand: "Cuauhtémoc Moctezuma", ABV: 3.9},
		{Name: "Dos Equis Lager", Brand: "Cuauhtémoc Moctezuma", ABV: 4.2},
		{Name: "Dos Equis Ambar", Brand: "Cuauhtémoc Moctezuma", ABV: 4.7},
		{Name: "Pacífico", Brand: "Grupo Modelo", ABV: 4.5},
		{Name: "Sol", Brand: "Cuauhtémoc Moctezuma", ABV: 4.5},
		{Name: "Victoria", Brand: "Grupo Modelo", ABV: 4.0},
		{Name: "Bohemia Clara", Brand: "Cuauhtémoc Moctezuma", ABV: 4.8},
		{Name: "Bohemia Oscura", Brand: "Cuauhtémoc Moctezuma", ABV: 5.3},
		{Name: "Bohemia Weizen", Brand: "Cuauhtémoc Moctezuma", ABV: 5.1},
		{Name: "León", Brand: "Cuauhtémoc Moctezuma", ABV: 4.5},
		{Name: "Indio", Brand: "Cuauhtémoc Moctezuma", ABV: 4.1},
		{Name: "Montejo", Brand: "Grupo Modelo", ABV: 4.0},
		{Name: "Superior", Brand: "Cuauhtémoc Moctezuma", ABV: 4.5},
		{Name: "Carta Blanca", Brand: "Cuauhtémoc Moctezuma", ABV: 4.5},
		{Name: "Estrella", Brand: "Regional", ABV: 4.5},
		{Name: "Minerva Pale Ale", Brand: "Minerva", ABV: 5.0, Craft: true},
		{Name: "Minerva IPA", Brand: "Minerva", ABV: 6.5, Craft: true},
		{Name: "Minerva Stout", Brand: "Minerva", ABV: 5.0, Craft: true},
		{Name: "Cucapá Chupacabras", Brand: "Cucapá", ABV: 5.8, Craft: true},
		{Name: "Cucapá Honey", Brand: "Cucapá", ABV: 5.0, Craft: true},
		{Name: "Cucapá Runaway IPA", Brand: "Cucapá", ABV: 6.5, Craft: true},
		{Name: "Tempus Doble Malta", Brand: "Tempus", ABV: 8.0, Craft: true},
		{Name: "Wendlandt Golden Ale", Brand: "Wendlandt", ABV: 5.0, Craft: true},
		{Name: "Colimita", Brand: "Cervecería de Colima", ABV: 4.5, Craft: true},
		{Name: "Ramuri", Brand: "Ramuri", ABV: 4.8, Craft: true},
	}

	containers = []Container{
		{ID: "can_325ml", Label: "Can 325ml", Emoji: "🥫", VolumeML: 325},
		{ID: "can_355ml", Label: "Can 355ml (12oz)", Emoji: "🥫", VolumeML: 355},
		{ID: "can_473ml", Label: "Can 473ml (Tallboy)", Emoji: "🥫", VolumeML: 473},
		{ID: "can_710ml", Label: "Can 710ml (24oz)", Emoji: "🥫", VolumeML: 710},
		{ID: "bottle_355ml", Label: "Bottle 355ml", Emoji: "🍺", VolumeML: 355},
		{ID: ContainerCaguama, Label: "Caguama 940ml", Emoji: "🐢", VolumeML: 940},
		{ID: "ballena", Label: "Ballena 1.2L", Emoji: "🐳", VolumeML: 1200},
		{ID: "draft_pint", Label: "Draft Pint", Emoji: "🍻", VolumeML: 473},
		{ID: "draft_half", Label: "Draft Half", Emoji: "🍻", VolumeML: 237},
		{ID: Container40oz, Label: "40oz", Emoji: "💀", VolumeML: 1182},
	}

	containerLookup = func() map[string]Container {
		lookup := make(map[string]Container, len(containers))
		for _, c := range containers {
			lookup[c.ID] = c
		}
		return lookup
	}()
)

// Beers 返回预置啤酒列表
func Beers() []Beer {
	out := make([]Beer, len(beers))
	copy(out, beers)
	return out
}

// Containers 返回容器列表
func Containers() []Container {
	out := make([]Container, len(containers))
	copy(out, containers)
	return out
}

// LookupContainer 按 ID 查找容器
func LookupContainer(id string) (Container, bool) {
	c, ok := containerLookup[strings.TrimSpace(id)]
	return c, ok
}

// ValidContainer 判断容器 ID 是否存在
func ValidContainer(id string) bool {
	_, ok := LookupContainer(id)
	return ok
}

// LookupBeer 按名称查找预置啤酒，忽略大小写。
func LookupBeer(name string) (Beer, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, b := range beers {
		if strings.ToLower(b.Name) == target {
			return b, true
		}
	}
	return Beer{}, false
}
