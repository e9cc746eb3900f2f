package insight

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mogbrew/internal/catalog"
)

const headToHeadDays = 7

// ErrInvalidPeriod 在排行榜周期不是 week/all 时返回
var ErrInvalidPeriod = errors.New("invalid leaderboard period")

// Period 为排行榜的统计周期。
type Period string

const (
	PeriodWeek Period = "week"
	PeriodAll  Period = "all"
)

// ParsePeriod 解析周期，空字符串视为 week。
func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PeriodWeek:
		return PeriodWeek, nil
	case PeriodAll:
		return PeriodAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, raw)
	}
}

// LeaderboardOptions 指定周期、参考时间与名单。
type LeaderboardOptions struct {
	Period   Period
	Now      time.Time
	Location *time.Location
	Roster   []string
}

// Standing 为单个用户在周期内的累计。
type Standing struct {
	UserID         string  `json:"user_id"`
	TotalBeers     int     `json:"total_beers"`
	TotalVolume    int     `json:"total_volume"`
	TotalStdDrinks float64 `json:"total_std_drinks"`
	DaysActive     int     `json:"days_active"`
}

// HeadToHeadDay 是对比图中的一天，Counts 覆盖名单中的每个用户。
type HeadToHeadDay struct {
	Day    string         `json:"day"`
	Counts map[string]int `json:"counts"`
}

// DayRecord 描述某用户某天的记录数。
type DayRecord struct {
	UserID string `json:"user_id"`
	Day    string `json:"day"`
	Count  int    `json:"count"`
}

// UserCount 描述某用户的计数。
type UserCount struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

// Superlatives 基于全部记录（不受周期限制），无符合条件的记录时为 nil。
type Superlatives struct {
	MostInOneDay  *DayRecord `json:"most_beers_day"`
	CaguamaKing   *UserCount `json:"caguama_king"`
	FortyOzLegend *UserCount `json:"forty_oz_legend"`
}

// Board 是排行榜视图模型。
type Board struct {
	Period       Period          `json:"period"`
	Standings    []Standing      `json:"standings"`
	HeadToHead   []HeadToHeadDay `json:"head_to_head"`
	TopBrands    map[string]Rank `json:"top_brands"`
	Superlatives Superlatives    `json:"superlatives"`
}

// Leaderboard 计算多用户排行榜。
//
// 排名按 total_beers 降序，其次标准杯降序，再按 user_id 升序。
// 对比图固定为最近 7 个日历日 × 名单，缺失补零。
func Leaderboard(entries []Entry, opts LeaderboardOptions) Board {
	loc := locationOrUTC(opts.Location)

	period := opts.Period
	if period == "" {
		period = PeriodWeek
	}

	scoped := entries
	if period == PeriodWeek {
		scoped = Since(entries, opts.Now.AddDate(0, 0, -7))
	}

	return Board{
		Period:       period,
		Standings:    standings(scoped, loc),
		HeadToHead:   headToHead(entries, opts.Roster, opts.Now, loc),
		TopBrands:    topBrands(scoped),
		Superlatives: superlatives(entries, loc),
	}
}

func standings(entries []Entry, loc *time.Location) []Standing {
	byUser := make(map[string]*Standing)
	days := make(map[string]map[string]struct{})

	for _, e := range entries {
		s, ok := byUser[e.UserID]
		if !ok {
			s = &Standing{UserID: e.UserID}
			byUser[e.UserID] = s
			days[e.UserID] = make(map[string]struct{})
		}
		s.TotalBeers++
		s.TotalVolume += e.VolumeML
		s.TotalStdDrinks += e.StdDrinks()
		days[e.UserID][DayKey(e.LoggedAt, loc)] = struct{}{}
	}

	out := make([]Standing, 0, len(byUser))
	for id, s := range byUser {
		s.DaysActive = len(days[id])
		out = append(out, *s)
	}

	slices.SortFunc(out, func(a, b Standing) int {
		if diff := cmp.Compare(b.TotalBeers, a.TotalBeers); diff != 0 {
			return diff
		}
		if diff := cmp.Compare(b.TotalStdDrinks, a.TotalStdDrinks); diff != 0 {
			return diff
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out
}

func headToHead(entries []Entry, roster []string, now time.Time, loc *time.Location) []HeadToHeadDay {
	today := StartOfDay(now, loc)

	grid := make([]HeadToHeadDay, 0, headToHeadDays)
	index := make(map[string]int, headToHeadDays)
	for i := headToHeadDays - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dateLayout)
		counts := make(map[string]int, len(roster))
		for _, id := range roster {
			counts[id] = 0
		}
		index[key] = len(grid)
		grid = append(grid, HeadToHeadDay{Day: key, Counts: counts})
	}

	for _, e := range entries {
		pos, ok := index[DayKey(e.LoggedAt, loc)]
		if !ok {
			continue
		}
		if _, known := grid[pos].Counts[e.UserID]; known {
			grid[pos].Counts[e.UserID]++
		}
	}
	return grid
}

func topBrands(entries []Entry) map[string]Rank {
	byUser := make(map[string][]Entry)
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	out := make(map[string]Rank, len(byUser))
	for id, userEntries := range byUser {
		if ranks := BrandRanking(userEntries, 1); len(ranks) > 0 {
			out[id] = ranks[0]
		}
	}
	return out
}

func superlatives(entries []Entry, loc *time.Location) Superlatives {
	type userDay struct {
		user string
		day  string
	}

	perDay := make(map[userDay]int)
	caguamas := make(map[string]int)
	fortyOz := make(map[string]int)

	for _, e := range entries {
		perDay[userDay{user: e.UserID, day: DayKey(e.LoggedAt, loc)}]++
		switch e.ContainerType {
		case catalog.ContainerCaguama:
			caguamas[e.UserID]++
		case catalog.Container40oz:
			fortyOz[e.UserID]++
		}
	}

	var result Superlatives
	for k, count := range perDay {
		candidate := DayRecord{UserID: k.user, Day: k.day, Count: count}
		if result.MostInOneDay == nil || betterDayRecord(candidate, *result.MostInOneDay) {
			result.MostInOneDay = &candidate
		}
	}

	result.CaguamaKing = topUser(caguamas)
	result.FortyOzLegend = topUser(fortyOz)
	return result
}

func betterDayRecord(a, b DayRecord) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	if a.Day != b.Day {
		return a.Day < b.Day
	}
	return a.UserID < b.UserID
}

func topUser(counts map[string]int) *UserCount {
	var best *UserCount
	for id, count := range counts {
		if count <= 0 {
			continue
		}
		if best == nil || count > best.Count || (count == best.Count && id < best.UserID) {
			best = &UserCount{UserID: id, Count: count}
		}
	}
	return best
}
