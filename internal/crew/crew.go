package crew

import "strings"

// Member 描述一名固定成员及其展示信息。
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

var (
	members = []Member{
		{ID: "ian", Name: "Ian", Emoji: "🧠", Color: "green", Hex: "#22c55e"},
		{ID: "tyler", Name: "Tyler", Emoji: "💪", Color: "blue", Hex: "#3b82f6"},
		{ID: "james", Name: "James", Emoji: "👑", Color: "purple", Hex: "#a855f7"},
	}
	memberLookup = func() map[string]Member {
		lookup := make(map[string]Member, len(members))
		for _, m := range members {
			lookup[m.ID] = m
		}
		return lookup
	}()
)

// All 返回完整名单，顺序固定。
func All() []Member {
	out := make([]Member, len(members))
	copy(out, members)
	return out
}

// IDs 返回名单中的用户 ID。
func IDs() []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}

// Lookup 按 ID 查找成员，ID 大小写与首尾空白不敏感。
func Lookup(id string) (Member, bool) {
	m, ok := memberLookup[Normalize(id)]
	return m, ok
}

// Valid 判断 ID 是否属于名单。
func Valid(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Normalize 统一 ID 格式
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
