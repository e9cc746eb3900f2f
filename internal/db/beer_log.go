package db

import "time"

// BeerLog 记录一次饮用（一瓶/一罐）。
// 不使用 gorm.Model：删除为硬删除，没有 deleted_at。
// 记录创建后不可修改，LoggedAt 在写入时确定。
type BeerLog struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        string    `gorm:"size:32;not null;index:idx_beer_logs_user_logged,priority:1"`
	BeerName      string    `gorm:"size:200;not null"`
	Brand         string    `gorm:"size:200;not null;default:''"`
	ABV           float64   `gorm:"column:abv;not null;default:0"`
	ContainerType string    `gorm:"size:32;not null"`
	VolumeML      int       `gorm:"column:volume_ml;not null"`
	Notes         string    `gorm:"type:text"`
	LoggedAt      time.Time `gorm:"not null;index;index:idx_beer_logs_user_logged,priority:2"`
	CreatedAt     time.Time
}

// TableName 固定表名
func (BeerLog) TableName() string {
	return "beer_logs"
}
