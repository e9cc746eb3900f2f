package insight

import "time"

// Totals 为终身累计数据。
type Totals struct {
	TotalBeers     int     `json:"total_beers"`
	TotalVolume    int     `json:"total_volume"`
	AvgABV         float64 `json:"avg_abv"`
	TotalStdDrinks float64 `json:"total_std_drinks"`
	DaysTracked    int     `json:"days_tracked"`
	AvgPerDay      float64 `json:"avg_per_day"`
	LastDrinkDate  *string `json:"last_drink_date"`
}

// LifetimeTotals 汇总全部记录。平均 ABV 不按容量加权；
// 日均标准杯的分母至少为 1。
func LifetimeTotals(entries []Entry, loc *time.Location) Totals {
	loc = locationOrUTC(loc)

	var totals Totals
	var abvSum float64
	days := make(map[string]struct{})
	last := ""

	for _, e := range entries {
		totals.TotalBeers++
		totals.TotalVolume += e.VolumeML
		totals.TotalStdDrinks += e.StdDrinks()
		abvSum += e.ABV

		key := DayKey(e.LoggedAt, loc)
		days[key] = struct{}{}
		if key > last {
			last = key
		}
	}

	if totals.TotalBeers > 0 {
		totals.AvgABV = abvSum / float64(totals.TotalBeers)
	}

	totals.DaysTracked = len(days)
	totals.AvgPerDay = totals.TotalStdDrinks / float64(max(totals.DaysTracked, 1))

	if last != "" {
		totals.LastDrinkDate = &last
	}

	return totals
}
