package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mogbrew/internal/catalog"
	"github.com/mogbrew/internal/crew"
	"github.com/mogbrew/internal/db"
	"github.com/mogbrew/internal/insight"
	"gorm.io/gorm"
)

const (
	defaultRecentLimit = 5
	maxUnescapeRounds  = 8
)

var (
	// ErrEntryNotFound 在删除不存在的记录时返回
	ErrEntryNotFound = errors.New("beer entry not found")
	// ErrInvalidDay 在日期格式不是 YYYY-MM-DD 时返回
	ErrInvalidDay = errors.New("invalid day")
)

// BeerService 负责饮酒记录的写入、删除与查询。
// 所有查询都需要显式传入 userID。
type BeerService struct {
	db        *gorm.DB
	validator EntryValidator
	policy    *bluemonday.Policy
	now       func() time.Time
	loc       *time.Location
}

// RecentBeer 是快速添加用的组合，按最近一次饮用排序
type RecentBeer struct {
	BeerName      string    `json:"beer_name"`
	Brand         string    `json:"brand"`
	ABV           float64   `json:"abv"`
	ContainerType string    `json:"container_type"`
	VolumeML      int       `json:"volume_ml"`
	LastLoggedAt  time.Time `json:"last_logged_at"`
}

// DaySummary 汇总某天的数量、容量与标准杯
type DaySummary struct {
	Day       string  `json:"day"`
	Count     int     `json:"count"`
	VolumeML  int     `json:"volume"`
	StdDrinks float64 `json:"std_drinks"`
}

// NewBeerService 构造 BeerService，默认使用 UTC 与名单校验。
func NewBeerService(gdb *gorm.DB) *BeerService {
	return &BeerService{
		db:        gdb,
		validator: RosterValidator{MaxQuantity: MaxQuantity},
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
		loc:       time.UTC,
	}
}

// WithLocation 设置按日统计使用的时区。
func (s *BeerService) WithLocation(loc *time.Location) *BeerService {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// WithClock 允许在测试中固定当前时间。
func (s *BeerService) WithClock(now func() time.Time) *BeerService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithValidator 替换写入校验策略。
func (s *BeerService) WithValidator(v EntryValidator) *BeerService {
	if v != nil {
		s.validator = v
	}
	return s
}

// Location 返回参考时区
func (s *BeerService) Location() *time.Location {
	return s.loc
}

// Now 返回服务当前时间
func (s *BeerService) Now() time.Time {
	return s.now()
}

// Log 在同一事务中写入 Quantity 条相同记录，要么全部成功，要么全部失败。
func (s *BeerService) Log(ctx context.Context, input LogInput) ([]db.BeerLog, error) {
	input = s.normalizeInput(input)
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	loggedAt := s.now().UTC()
	rows := make([]db.BeerLog, input.Quantity)
	for i := range rows {
		rows[i] = db.BeerLog{
			UserID:        input.UserID,
			BeerName:      input.BeerName,
			Brand:         input.Brand,
			ABV:           input.ABV,
			ContainerType: input.ContainerType,
			VolumeML:      input.VolumeML,
			Notes:         input.Notes,
			LoggedAt:      loggedAt,
		}
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	}); err != nil {
		return nil, fmt.Errorf("log beers: %w", err)
	}

	return rows, nil
}

// Delete 硬删除一条记录
func (s *BeerService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&db.BeerLog{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete beer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Today 返回用户今天的记录，最新在前
func (s *BeerService) Today(ctx context.Context, userID string) ([]db.BeerLog, error) {
	return s.between(ctx, userID, insight.StartOfDay(s.now(), s.loc))
}

// Day 返回用户某天（YYYY-MM-DD）的记录，最新在前
func (s *BeerService) Day(ctx context.Context, userID, day string) ([]db.BeerLog, error) {
	start, err := insight.ParseDay(strings.TrimSpace(day), s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return s.between(ctx, userID, start)
}

func (s *BeerService) between(ctx context.Context, userID string, start time.Time) ([]db.BeerLog, error) {
	id, err := requireUser(userID)
	if err != nil {
		return nil, err
	}

	end := start.AddDate(0, 0, 1)

	var rows []db.BeerLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", id).
		Where("logged_at >= ? AND logged_at < ?", start.UTC(), end.UTC()).
		Order("logged_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list day beers: %w", err)
	}
	return rows, nil
}

// TodaySummary 汇总今天的数量、容量与标准杯
func (s *BeerService) TodaySummary(ctx context.Context, userID string) (DaySummary, []db.BeerLog, error) {
	rows, err := s.Today(ctx, userID)
	if err != nil {
		return DaySummary{}, nil, err
	}

	summary := DaySummary{Day: insight.DayKey(s.now(), s.loc)}
	for _, row := range rows {
		summary.Count++
		summary.VolumeML += row.VolumeML
		summary.StdDrinks += insight.StdDrinks(row.VolumeML, row.ABV)
	}
	return summary, rows, nil
}

// Recent 返回最近喝过的不同组合，用于快速添加
func (s *BeerService) Recent(ctx context.Context, userID string, limit int) ([]RecentBeer, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	id, err := requireUser(userID)
	if err != nil {
		return nil, err
	}

	var rows []db.BeerLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", id).
		Order("logged_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recent beers: %w", err)
	}

	type comboKey struct {
		name, brand, container string
		abv                    float64
		volume                 int
	}

	seen := make(map[comboKey]struct{})
	recent := make([]RecentBeer, 0, limit)
	for _, row := range rows {
		key := comboKey{name: row.BeerName, brand: row.Brand, container: row.ContainerType, abv: row.ABV, volume: row.VolumeML}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		recent = append(recent, RecentBeer{
			BeerName:      row.BeerName,
			Brand:         row.Brand,
			ABV:           row.ABV,
			ContainerType: row.ContainerType,
			VolumeML:      row.VolumeML,
			LastLoggedAt:  row.LoggedAt,
		})
		if len(recent) == limit {
			break
		}
	}
	return recent, nil
}

// ListForUser 返回用户全部记录，按时间升序
func (s *BeerService) ListForUser(ctx context.Context, userID string) ([]db.BeerLog, error) {
	id, err := requireUser(userID)
	if err != nil {
		return nil, err
	}

	var rows []db.BeerLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", id).
		Order("logged_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list user beers: %w", err)
	}
	return rows, nil
}

// ListAll 返回所有用户的记录，按时间升序
func (s *BeerService) ListAll(ctx context.Context) ([]db.BeerLog, error) {
	var rows []db.BeerLog
	if err := s.db.WithContext(ctx).
		Order("logged_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list beers: %w", err)
	}
	return rows, nil
}

func (s *BeerService) normalizeInput(input LogInput) LogInput {
	input.UserID = crew.Normalize(input.UserID)
	input.BeerName = s.cleanText(input.BeerName)
	input.Brand = s.cleanText(input.Brand)
	input.Notes = s.cleanText(input.Notes)
	input.ContainerType = strings.TrimSpace(input.ContainerType)

	if input.VolumeML == 0 {
		if container, ok := catalog.LookupContainer(input.ContainerType); ok {
			input.VolumeML = container.VolumeML
		}
	}
	return input
}

// cleanText 先彻底还原实体再去除 HTML 标签，编码过的标签也会被清掉。
// 最后一次还原只撤销 Sanitize 自身的转义。
func (s *BeerService) cleanText(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(unescapeAll(value))))
}

// unescapeAll 反复还原实体直到不再变化，处理多重编码
func unescapeAll(value string) string {
	for i := 0; i < maxUnescapeRounds; i++ {
		next := html.UnescapeString(value)
		if next == value {
			break
		}
		value = next
	}
	return value
}

func requireUser(userID string) (string, error) {
	id := crew.Normalize(userID)
	if !crew.Valid(id) {
		return "", fmt.Errorf("%w: %q", ErrUnknownUser, userID)
	}
	return id, nil
}

func toInsightEntries(rows []db.BeerLog) []insight.Entry {
	entries := make([]insight.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, insight.Entry{
			ID:            row.ID,
			UserID:        row.UserID,
			Name:          row.BeerName,
			Brand:         row.Brand,
			ABV:           row.ABV,
			ContainerType: row.ContainerType,
			VolumeML:      row.VolumeML,
			LoggedAt:      row.LoggedAt,
		})
	}
	return entries
}
