package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mogbrew/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func setupBeerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newTestBeerService(t *testing.T, clock *testClock) *BeerService {
	t.Helper()
	return NewBeerService(setupBeerTestDB(t)).WithClock(clock.Now)
}

func tecate(user string, quantity int) LogInput {
	return LogInput{
		UserID:        user,
		BeerName:      "Tecate",
		Brand:         "Heineken México",
		ABV:           4.5,
		ContainerType: "can_355ml",
		VolumeML:      355,
		Quantity:      quantity,
	}
}

func TestLogQuantityCreatesIndependentDeletableRows(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestBeerService(t, clock)
	insights := NewInsightService(svc)
	ctx := context.Background()

	before, err := insights.Insights(ctx, "ian")
	if err != nil {
		t.Fatalf("Insights returned error: %v", err)
	}

	rows, err := svc.Log(ctx, tecate("ian", 3))
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	ids := make(map[uint]struct{})
	for _, row := range rows {
		if row.ID == 0 {
			t.Fatalf("expected persisted id, got zero")
		}
		if !row.LoggedAt.Equal(clock.now) {
			t.Fatalf("expected shared timestamp %v, got %v", clock.now, row.LoggedAt)
		}
		ids[row.ID] = struct{}{}
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 distinct ids, got %d", len(ids))
	}

	after, err := insights.Insights(ctx, "ian")
	if err != nil {
		t.Fatalf("Insights returned error: %v", err)
	}
	if after.Totals.TotalBeers != before.Totals.TotalBeers+3 {
		t.Fatalf("expected total beers to grow by 3, got %d -> %d", before.Totals.TotalBeers, after.Totals.TotalBeers)
	}

	for _, row := range rows {
		if err := svc.Delete(ctx, row.ID); err != nil {
			t.Fatalf("Delete(%d) returned error: %v", row.ID, err)
		}
	}

	final, err := insights.Insights(ctx, "ian")
	if err != nil {
		t.Fatalf("Insights returned error: %v", err)
	}
	if final.Totals.TotalBeers != 0 || final.Totals.TotalVolume != 0 {
		t.Fatalf("expected no residue after delete, got %+v", final.Totals)
	}
	if final.Totals.LastDrinkDate != nil {
		t.Fatalf("expected nil last drink date, got %q", *final.Totals.LastDrinkDate)
	}
}

func TestLogRejectsInvalidInput(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestBeerService(t, clock)

	cases := []struct {
		name   string
		mutate func(*LogInput)
		want   error
	}{
		{"unknown user", func(in *LogInput) { in.UserID = "bob" }, ErrUnknownUser},
		{"blank name", func(in *LogInput) { in.BeerName = "   " }, ErrInvalidEntry},
		{"unknown container", func(in *LogInput) { in.ContainerType = "bucket" }, ErrInvalidEntry},
		{"negative volume", func(in *LogInput) { in.VolumeML = -10 }, ErrInvalidEntry},
		{"abv too high", func(in *LogInput) { in.ABV = 120 }, ErrInvalidEntry},
		{"negative abv", func(in *LogInput) { in.ABV = -1 }, ErrInvalidEntry},
		{"zero quantity", func(in *LogInput) { in.Quantity = 0 }, ErrInvalidEntry},
		{"too many", func(in *LogInput) { in.Quantity = MaxQuantity + 1 }, ErrInvalidEntry},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tecate("tyler", 1)
			tc.mutate(&input)
			if _, err := svc.Log(context.Background(), input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected input must not be stored, found %d rows", len(all))
	}
}

func TestLogSanitizesAndFillsVolume(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestBeerService(t, clock)

	rows, err := svc.Log(context.Background(), LogInput{
		UserID:        " James ",
		BeerName:      "<b>Indio</b> & Friends",
		Brand:         "<i>Heineken México</i>",
		ABV:           4.1,
		ContainerType: "caguama",
		Quantity:      1,
		Notes:         "<script>alert(1)</script>cold one",
	})
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	row := rows[0]
	if row.UserID != "james" {
		t.Fatalf("expected normalized user id, got %q", row.UserID)
	}
	if row.BeerName != "Indio & Friends" {
		t.Fatalf("unexpected beer name %q", row.BeerName)
	}
	if row.Brand != "Heineken México" {
		t.Fatalf("unexpected brand %q", row.Brand)
	}
	if row.Notes != "cold one" {
		t.Fatalf("unexpected notes %q", row.Notes)
	}
	if row.VolumeML != 940 {
		t.Fatalf("expected caguama volume 940, got %d", row.VolumeML)
	}
}

func TestTodayAndDayUseReferenceLocation(t *testing.T) {
	// UTC 03:00 在 UTC-6 仍是前一天晚上
	clock := &testClock{now: time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC)}
	svc := newTestBeerService(t, clock).WithLocation(time.FixedZone("CST", -6*60*60))
	ctx := context.Background()

	if _, err := svc.Log(ctx, tecate("ian", 2)); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	summary, today, err := svc.TodaySummary(ctx, "ian")
	if err != nil {
		t.Fatalf("TodaySummary returned error: %v", err)
	}
	if summary.Day != "2025-03-14" || summary.Count != 2 || len(today) != 2 {
		t.Fatalf("unexpected summary %+v (%d rows)", summary, len(today))
	}
	if summary.VolumeML != 710 {
		t.Fatalf("expected 710ml, got %d", summary.VolumeML)
	}

	prev, err := svc.Day(ctx, "ian", "2025-03-14")
	if err != nil {
		t.Fatalf("Day returned error: %v", err)
	}
	if len(prev) != 2 {
		t.Fatalf("expected 2 entries on 2025-03-14, got %d", len(prev))
	}

	next, err := svc.Day(ctx, "ian", "2025-03-15")
	if err != nil {
		t.Fatalf("Day returned error: %v", err)
	}
	if len(next) != 0 {
		t.Fatalf("expected no entries on 2025-03-15, got %d", len(next))
	}

	if _, err := svc.Day(ctx, "ian", "15/03/2025"); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}

	other, err := svc.Today(ctx, "tyler")
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected tyler to have no entries, got %d", len(other))
	}
}

func TestRecentDedupesCombos(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)}
	svc := newTestBeerService(t, clock)
	ctx := context.Background()

	if _, err := svc.Log(ctx, tecate("tyler", 2)); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	clock.now = clock.now.Add(time.Hour)
	if _, err := svc.Log(ctx, LogInput{UserID: "tyler", BeerName: "Modelo Especial", Brand: "Grupo Modelo", ABV: 4.5, ContainerType: "caguama", Quantity: 1}); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	clock.now = clock.now.Add(time.Hour)
	if _, err := svc.Log(ctx, tecate("tyler", 1)); err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	recent, err := svc.Recent(ctx, "tyler", 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 distinct combos, got %d", len(recent))
	}
	if recent[0].BeerName != "Tecate" || !recent[0].LastLoggedAt.Equal(clock.now) {
		t.Fatalf("expected most recent combo first, got %+v", recent[0])
	}
	if recent[1].BeerName != "Modelo Especial" || recent[1].VolumeML != 940 {
		t.Fatalf("unexpected second combo %+v", recent[1])
	}

	limited, err := svc.Recent(ctx, "tyler", 1)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestDeleteMissingEntry(t *testing.T) {
	clock := &testClock{now: time.Now().UTC()}
	svc := newTestBeerService(t, clock)

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestQueriesRequireKnownUser(t *testing.T) {
	clock := &testClock{now: time.Now().UTC()}
	svc := newTestBeerService(t, clock)
	ctx := context.Background()

	if _, err := svc.ListForUser(ctx, ""); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser for blank user, got %v", err)
	}
	if _, err := svc.Today(ctx, "nobody"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if _, err := svc.Recent(ctx, "nobody", 5); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestLogStripsEncodedMarkup(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	svc := newTestBeerService(t, clock)

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"encoded tag", "&lt;b&gt;Tecate&lt;/b&gt;", "Tecate"},
		{"double encoded script", "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;Sol", "Sol"},
		{"plain ampersand", "Dos &amp; Equis", "Dos & Equis"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tecate("ian", 1)
			input.BeerName = tc.input
			rows, err := svc.Log(context.Background(), input)
			if err != nil {
				t.Fatalf("Log returned error: %v", err)
			}
			if rows[0].BeerName != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, rows[0].BeerName)
			}
			if strings.Contains(rows[0].BeerName, "<") {
				t.Fatalf("markup survived sanitising: %q", rows[0].BeerName)
			}
		})
	}
}
