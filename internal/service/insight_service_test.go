package service

import (
	"context"
	"testing"
	"time"

	"github.com/mogbrew/internal/insight"
)

func TestInsightsAssemblesViewModel(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)}
	beers := newTestBeerService(t, clock)
	svc := NewInsightService(beers)
	ctx := context.Background()

	// 3 月 10 日 3 瓶，3 月 12 日 2 瓶，3 月 15 日 2 瓶
	if _, err := beers.Log(ctx, tecate("ian", 3)); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	clock.now = time.Date(2025, 3, 12, 21, 0, 0, 0, time.UTC)
	if _, err := beers.Log(ctx, LogInput{UserID: "ian", BeerName: "Victoria", Brand: "Grupo Modelo", ABV: 4.0, ContainerType: "caguama", Quantity: 2}); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	clock.now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	if _, err := beers.Log(ctx, tecate("ian", 2)); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	if _, err := beers.Log(ctx, tecate("tyler", 1)); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	got, err := svc.Insights(ctx, "ian")
	if err != nil {
		t.Fatalf("Insights returned error: %v", err)
	}

	if got.Totals.TotalBeers != 7 {
		t.Fatalf("expected 7 beers, got %d", got.Totals.TotalBeers)
	}
	if got.Totals.DaysTracked != 3 {
		t.Fatalf("expected 3 tracked days, got %d", got.Totals.DaysTracked)
	}
	if len(got.Daily) != 3 {
		t.Fatalf("expected sparse daily rollup with 3 days, got %d", len(got.Daily))
	}
	if len(got.Heatmap) != 91 {
		t.Fatalf("expected 91 heatmap cells, got %d", len(got.Heatmap))
	}
	if last := got.Heatmap[len(got.Heatmap)-1]; last.Day != "2025-03-15" || last.Count != 2 {
		t.Fatalf("unexpected last heatmap cell %+v", last)
	}
	if got.PersonalBest == nil || got.PersonalBest.Day != "2025-03-10" || got.PersonalBest.Count != 3 {
		t.Fatalf("unexpected personal best %+v", got.PersonalBest)
	}
	// 两瓶 940ml 的 Victoria 超过三瓶 355ml 的 Tecate
	if got.HeaviestDay == nil || got.HeaviestDay.Day != "2025-03-12" {
		t.Fatalf("unexpected heaviest day %+v", got.HeaviestDay)
	}
	if len(got.Brands) != 2 || got.Brands[0].Name != "Heineken México" || got.Brands[0].Count != 5 {
		t.Fatalf("unexpected brand ranking %+v", got.Brands)
	}
	if len(got.Containers) != 2 || got.Containers[0].Name != "can_355ml" {
		t.Fatalf("unexpected container ranking %+v", got.Containers)
	}

	history, err := svc.History(ctx, "ian")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 3 || history[0].Day != "2025-03-15" || history[2].Day != "2025-03-10" {
		t.Fatalf("expected newest-first history, got %+v", history)
	}
}

func TestInsightsForEmptyUser(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	svc := NewInsightService(newTestBeerService(t, clock))

	got, err := svc.Insights(context.Background(), "james")
	if err != nil {
		t.Fatalf("Insights returned error: %v", err)
	}
	if got.Totals.TotalBeers != 0 || got.PersonalBest != nil || got.HeaviestDay != nil {
		t.Fatalf("expected zero values, got %+v", got)
	}
	if len(got.Daily) != 0 || len(got.Heatmap) != 91 {
		t.Fatalf("unexpected rollups: daily=%d heatmap=%d", len(got.Daily), len(got.Heatmap))
	}
}

func TestLeaderboardCoversRoster(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)}
	beers := newTestBeerService(t, clock)
	svc := NewInsightService(beers)
	ctx := context.Background()

	if _, err := beers.Log(ctx, LogInput{UserID: "tyler", BeerName: "Indio", Brand: "Heineken México", ABV: 4.1, ContainerType: "caguama", Quantity: 2}); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	clock.now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	if _, err := beers.Log(ctx, tecate("ian", 1)); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	week, err := svc.Leaderboard(ctx, insight.PeriodWeek)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(week.HeadToHead) != 7 {
		t.Fatalf("expected 7 head-to-head days, got %d", len(week.HeadToHead))
	}
	for _, day := range week.HeadToHead {
		if len(day.Counts) != 3 {
			t.Fatalf("expected every roster member on %s, got %+v", day.Day, day.Counts)
		}
	}
	if len(week.Standings) != 1 || week.Standings[0].UserID != "ian" {
		t.Fatalf("expected only ian in weekly standings, got %+v", week.Standings)
	}
	if week.Superlatives.CaguamaKing == nil || week.Superlatives.CaguamaKing.UserID != "tyler" || week.Superlatives.CaguamaKing.Count != 2 {
		t.Fatalf("caguama king is computed over all entries, got %+v", week.Superlatives.CaguamaKing)
	}

	all, err := svc.Leaderboard(ctx, insight.PeriodAll)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(all.Standings) != 2 || all.Standings[0].UserID != "tyler" {
		t.Fatalf("expected tyler to lead all-time standings, got %+v", all.Standings)
	}
}
