// Package insight 在内存快照上计算饮酒统计，所有函数均为纯函数：
// 不做 I/O、不持有状态，空输入返回零值，异常数值原样参与计算。
package insight

import "time"

const (
	dateLayout = "2006-01-02"

	// 乙醇密度 g/mL
	ethanolDensity = 0.789
	// 美国标准杯的乙醇克数
	gramsPerStandardDrink = 14
)

// Entry 是聚合器唯一的输入形态。
type Entry struct {
	ID            uint
	UserID        string
	Name          string
	Brand         string
	ABV           float64
	ContainerType string
	VolumeML      int
	LoggedAt      time.Time
}

// StdDrinks 返回 volumeML * (abv/100) * 0.789 / 14，按从左到右的顺序求值。
func StdDrinks(volumeML int, abv float64) float64 {
	return float64(volumeML) * (abv / 100) * ethanolDensity / gramsPerStandardDrink
}

// StdDrinks 返回该条记录折合的标准杯数。
func (e Entry) StdDrinks() float64 {
	return StdDrinks(e.VolumeML, e.ABV)
}

// DayKey 返回 t 在 loc 下的日历日期 YYYY-MM-DD。loc 为 nil 时按 UTC。
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(locationOrUTC(loc)).Format(dateLayout)
}

// StartOfDay 返回 t 在 loc 下当天零点。
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(locationOrUTC(loc))
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// ParseDay 将 YYYY-MM-DD 解析为 loc 下的零点。
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, day, locationOrUTC(loc))
}

// Since 返回 LoggedAt >= cutoff 的记录，保持原有顺序。
func Since(entries []Entry, cutoff time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.LoggedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
