package handler

import (
	"time"

	"github.com/mogbrew/internal/service"
	"gorm.io/gorm"
)

// RequestIDKey 是 gin.Context 中保存请求 ID 的键
const RequestIDKey = "request_id"

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	beers    *service.BeerService
	insights *service.InsightService
	errorLog *service.ErrorLogService
	notes    *service.NotesRenderer
}

// NewAPI constructs a handler set with shared services.
// loc 为按日统计使用的参考时区，nil 时按 UTC。
func NewAPI(db *gorm.DB, errorLog *service.ErrorLogService, loc *time.Location) *API {
	beers := service.NewBeerService(db).WithLocation(loc)

	return &API{
		db:       db,
		beers:    beers,
		insights: service.NewInsightService(beers),
		errorLog: errorLog,
		notes:    service.NewNotesRenderer(),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Beers exposes the beer service for the CLI and tests.
func (a *API) Beers() *service.BeerService {
	return a.beers
}

// ErrorLog 返回错误日志服务，供恢复中间件使用
func (a *API) ErrorLog() *service.ErrorLogService {
	return a.errorLog
}
