package insight

import (
	"cmp"
	"slices"
)

// Rank 是按某个键分组后的计数。
type Rank struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BrandRanking 按品牌计数降序，计数相同按名称升序；limit <= 0 不截断。
func BrandRanking(entries []Entry, limit int) []Rank {
	return rankBy(entries, func(e Entry) string { return e.Brand }, limit)
}

// ContainerRanking 按容器类型计数降序，不截断。
func ContainerRanking(entries []Entry) []Rank {
	return rankBy(entries, func(e Entry) string { return e.ContainerType }, 0)
}

func rankBy(entries []Entry, key func(Entry) string, limit int) []Rank {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[key(e)]++
	}

	ranks := make([]Rank, 0, len(counts))
	for name, count := range counts {
		ranks = append(ranks, Rank{Name: name, Count: count})
	}

	slices.SortFunc(ranks, func(a, b Rank) int {
		if diff := cmp.Compare(b.Count, a.Count); diff != 0 {
			return diff
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}
