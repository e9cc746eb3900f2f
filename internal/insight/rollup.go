package insight

import (
	"cmp"
	"slices"
	"time"
)

// DayBucket 汇总某个日历日的全部记录。
type DayBucket struct {
	Day       string  `json:"day"`
	Count     int     `json:"count"`
	VolumeML  int     `json:"volume"`
	StdDrinks float64 `json:"std_drinks"`
}

// RollupOptions 控制按日汇总的窗口与补零。
//
// WindowDays <= 0 表示不限窗口；FillGaps 仅在 WindowDays > 0 时生效，
// 此时输出恰好 WindowDays 个以 Now 所在日期结尾的连续日期，缺失日补零。
type RollupOptions struct {
	Now        time.Time
	WindowDays int
	FillGaps   bool
	Location   *time.Location
}

// Rollup 是唯一的按日汇总原语，结果按日期升序。
func Rollup(entries []Entry, opts RollupOptions) []DayBucket {
	loc := locationOrUTC(opts.Location)

	filtered := entries
	if opts.WindowDays > 0 {
		filtered = Since(entries, opts.Now.AddDate(0, 0, -opts.WindowDays))
	}

	buckets := bucketize(filtered, loc)
	if !opts.FillGaps || opts.WindowDays <= 0 {
		return sortBuckets(buckets)
	}

	today := StartOfDay(opts.Now, loc)
	out := make([]DayBucket, 0, opts.WindowDays)
	for i := opts.WindowDays - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dateLayout)
		if b, ok := buckets[key]; ok {
			out = append(out, *b)
			continue
		}
		out = append(out, DayBucket{Day: key})
	}
	return out
}

func bucketize(entries []Entry, loc *time.Location) map[string]*DayBucket {
	buckets := make(map[string]*DayBucket)
	for _, e := range entries {
		key := DayKey(e.LoggedAt, loc)
		b, ok := buckets[key]
		if !ok {
			b = &DayBucket{Day: key}
			buckets[key] = b
		}
		b.Count++
		b.VolumeML += e.VolumeML
		b.StdDrinks += e.StdDrinks()
	}
	return buckets
}

func sortBuckets(buckets map[string]*DayBucket) []DayBucket {
	out := make([]DayBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b DayBucket) int {
		return cmp.Compare(a.Day, b.Day)
	})
	return out
}

// PersonalBest 返回记录数最多的一天；并列时取最早的日期。
func PersonalBest(entries []Entry, loc *time.Location) (DayBucket, bool) {
	return bestDay(entries, loc, func(a, b DayBucket) bool { return a.Count > b.Count })
}

// HeaviestDay 返回标准杯合计最多的一天；并列时取最早的日期。
func HeaviestDay(entries []Entry, loc *time.Location) (DayBucket, bool) {
	return bestDay(entries, loc, func(a, b DayBucket) bool { return a.StdDrinks > b.StdDrinks })
}

func bestDay(entries []Entry, loc *time.Location, better func(a, b DayBucket) bool) (DayBucket, bool) {
	days := sortBuckets(bucketize(entries, locationOrUTC(loc)))
	if len(days) == 0 {
		return DayBucket{}, false
	}

	best := days[0]
	for _, d := range days[1:] {
		if better(d, best) {
			best = d
		}
	}
	return best, true
}
