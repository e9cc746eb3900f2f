package db

import "time"

// ErrorRecord 保存服务端/客户端错误，供离线排查。
// Metadata 为 JSON 对象文本。
type ErrorRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"index;not null"`
	Type      string    `gorm:"size:16;not null"`
	Service   string    `gorm:"size:64;not null"`
	App       string    `gorm:"size:64;not null"`
	Message   string    `gorm:"type:text"`
	Stack     string    `gorm:"type:text"`
	URL       string    `gorm:"column:url;type:text"`
	Metadata  string    `gorm:"type:text"`
}

// TableName 与共享错误库保持一致
func (ErrorRecord) TableName() string {
	return "errors"
}
