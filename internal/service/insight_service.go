package service

import (
	"context"
	"slices"

	"github.com/mogbrew/internal/crew"
	"github.com/mogbrew/internal/insight"
)

const (
	dailyWindowDays   = 14
	heatmapWindowDays = 91
	topBrandLimit     = 5
)

// InsightService 从存储读取快照并交给聚合器计算
type InsightService struct {
	beers  *BeerService
	roster []string
}

// Insights 是个人统计页的视图模型
type Insights struct {
	UserID       string              `json:"user_id"`
	Daily        []insight.DayBucket `json:"daily"`
	Heatmap      []insight.DayBucket `json:"heatmap"`
	Brands       []insight.Rank      `json:"brands"`
	Containers   []insight.Rank      `json:"containers"`
	Totals       insight.Totals      `json:"totals"`
	PersonalBest *insight.DayBucket  `json:"personal_best"`
	HeaviestDay  *insight.DayBucket  `json:"heaviest_day"`
}

// NewInsightService 构造 InsightService，名单默认取固定成员
func NewInsightService(beers *BeerService) *InsightService {
	return &InsightService{beers: beers, roster: crew.IDs()}
}

// Insights 计算单个用户的统计
func (s *InsightService) Insights(ctx context.Context, userID string) (*Insights, error) {
	rows, err := s.beers.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := toInsightEntries(rows)
	now := s.beers.Now()
	loc := s.beers.Location()

	result := &Insights{
		UserID:     crew.Normalize(userID),
		Daily:      insight.Rollup(entries, insight.RollupOptions{Now: now, WindowDays: dailyWindowDays, Location: loc}),
		Heatmap:    insight.Rollup(entries, insight.RollupOptions{Now: now, WindowDays: heatmapWindowDays, FillGaps: true, Location: loc}),
		Brands:     insight.BrandRanking(entries, topBrandLimit),
		Containers: insight.ContainerRanking(entries),
		Totals:     insight.LifetimeTotals(entries, loc),
	}

	if best, ok := insight.PersonalBest(entries, loc); ok {
		result.PersonalBest = &best
	}
	if heaviest, ok := insight.HeaviestDay(entries, loc); ok {
		result.HeaviestDay = &heaviest
	}

	return result, nil
}

// History 返回用户所有有记录的日期，最新在前
func (s *InsightService) History(ctx context.Context, userID string) ([]insight.DayBucket, error) {
	rows, err := s.beers.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	days := insight.Rollup(toInsightEntries(rows), insight.RollupOptions{
		Now:      s.beers.Now(),
		Location: s.beers.Location(),
	})
	slices.Reverse(days)
	return days, nil
}

// Leaderboard 计算全员排行榜
func (s *InsightService) Leaderboard(ctx context.Context, period insight.Period) (*insight.Board, error) {
	rows, err := s.beers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	board := insight.Leaderboard(toInsightEntries(rows), insight.LeaderboardOptions{
		Period:   period,
		Now:      s.beers.Now(),
		Location: s.beers.Location(),
		Roster:   s.roster,
	})
	return &board, nil
}
