package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mogbrew/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ErrorTypeServer = "server"
	ErrorTypeClient = "client"

	maxErrorMessageRunes = 4096
)

// ErrorLogService 将错误写入独立的错误库，供离线排查。
// 写入失败只记日志，不会影响主请求。
type ErrorLogService struct {
	db     *gorm.DB
	logger *zap.Logger
	app    string
	now    func() time.Time
}

// ErrorRecordInput 描述错误的上下文
type ErrorRecordInput struct {
	Type     string
	Service  string
	URL      string
	Stack    string
	Metadata map[string]any
}

// NewErrorLogService 构造 ErrorLogService，gdb 可以为 nil（此时只写日志）。
func NewErrorLogService(gdb *gorm.DB, logger *zap.Logger, app string) *ErrorLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(app) == "" {
		app = "mogbrew"
	}
	return &ErrorLogService{db: gdb, logger: logger, app: app, now: time.Now}
}

// Record 记录一个 Go error
func (s *ErrorLogService) Record(ctx context.Context, err error, input ErrorRecordInput) {
	if err == nil {
		return
	}
	s.RecordMessage(ctx, err.Error(), input)
}

// RecordMessage 记录一条错误消息，从不返回错误，也不会 panic。
func (s *ErrorLogService) RecordMessage(ctx context.Context, message string, input ErrorRecordInput) {
	if s == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("error log write panicked", zap.Any("panic", r), zap.String("original_msg", message))
		}
	}()

	if s.db == nil {
		s.logger.Warn("error log database unavailable", zap.String("original_msg", message))
		return
	}

	metadata := "{}"
	if len(input.Metadata) > 0 {
		if encoded, err := json.Marshal(input.Metadata); err == nil {
			metadata = string(encoded)
		}
	}

	recordType := input.Type
	if recordType != ErrorTypeClient {
		recordType = ErrorTypeServer
	}

	record := db.ErrorRecord{
		Timestamp: s.now().UTC(),
		Type:      recordType,
		Service:   strings.TrimSpace(input.Service),
		App:       s.app,
		Message:   truncateRunes(message, maxErrorMessageRunes),
		Stack:     input.Stack,
		URL:       input.URL,
		Metadata:  metadata,
	}
	if record.Service == "" {
		record.Service = "unknown"
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logger.Error("failed to write error record", zap.Error(err), zap.String("original_msg", message))
	}
}

// Ping 检查错误库是否可用
func (s *ErrorLogService) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("error log database not initialized")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("error log handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Recent 返回最近的错误记录，最新在前
func (s *ErrorLogService) Recent(ctx context.Context, limit int) ([]db.ErrorRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("error log database not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	var records []db.ErrorRecord
	if err := s.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list error records: %w", err)
	}
	return records, nil
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit]) + "…(truncated)"
}
