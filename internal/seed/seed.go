// Package seed 生成演示用的饮酒记录。
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mogbrew/internal/catalog"
	"github.com/mogbrew/internal/crew"
	"github.com/mogbrew/internal/db"
	"gorm.io/gorm"
)

// Options 控制生成的数据范围
type Options struct {
	Days  int
	Now   time.Time
	Seed  uint64
	Force bool
}

// 常喝的容器权重更高
var containerWeights = []struct {
	id     string
	weight int
}{
	{"can_355ml", 6},
	{"bottle_355ml", 4},
	{"can_473ml", 3},
	{"caguama", 2},
	{"draft_pint", 2},
	{"40oz", 1},
	{"ballena", 1},
}

// Generate 为名单中每个成员生成 days 天内的记录，同一 seed 结果相同。
func Generate(opts Options) []db.BeerLog {
	if opts.Days <= 0 {
		opts.Days = 30
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	beers := catalog.Beers()
	now := opts.Now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var rows []db.BeerLog
	for _, userID := range crew.IDs() {
		for offset := opts.Days - 1; offset >= 0; offset-- {
			// 大约一半的日子不喝
			if rng.IntN(2) == 0 {
				continue
			}

			day := today.AddDate(0, 0, -offset)
			count := 1 + rng.IntN(4)
			for i := 0; i < count; i++ {
				beer := beers[rng.IntN(len(beers))]
				container, _ := catalog.LookupContainer(pickContainer(rng))
				loggedAt := day.Add(time.Duration(17+rng.IntN(6))*time.Hour + time.Duration(rng.IntN(60))*time.Minute)
				if loggedAt.After(now) {
					loggedAt = now
				}

				rows = append(rows, db.BeerLog{
					UserID:        userID,
					BeerName:      beer.Name,
					Brand:         beer.Brand,
					ABV:           beer.ABV,
					ContainerType: container.ID,
					VolumeML:      container.VolumeML,
					LoggedAt:      loggedAt,
				})
			}
		}
	}
	return rows
}

func pickContainer(rng *rand.Rand) string {
	total := 0
	for _, c := range containerWeights {
		total += c.weight
	}
	n := rng.IntN(total)
	for _, c := range containerWeights {
		if n < c.weight {
			return c.id
		}
		n -= c.weight
	}
	return catalog.ContainerCaguama
}

// Run 写入演示数据。已有数据且未指定 Force 时跳过，返回写入条数。
func Run(ctx context.Context, gdb *gorm.DB, opts Options) (int, error) {
	var count int64
	if err := gdb.WithContext(ctx).Model(&db.BeerLog{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count beers: %w", err)
	}
	if count > 0 && !opts.Force {
		return 0, nil
	}

	rows := Generate(opts)
	if len(rows) == 0 {
		return 0, nil
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Force {
			if err := tx.Where("1 = 1").Delete(&db.BeerLog{}).Error; err != nil {
				return err
			}
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return 0, fmt.Errorf("seed beers: %w", err)
	}
	return len(rows), nil
}
