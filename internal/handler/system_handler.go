package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	componentUp   = "up"
	componentDown = "down"
)

// HealthCheck 检查业务库与错误库。
// 业务库不可用返回 503；错误库只影响 error_log 字段，服务仍视为可用。
func (a *API) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	payload := gin.H{
		"status":    "ok",
		"database":  componentUp,
		"error_log": componentUp,
	}

	if err := a.errorLog.Ping(ctx); err != nil {
		payload["error_log"] = componentDown
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		payload["status"] = "error"
		payload["database"] = componentDown
		c.JSON(http.StatusServiceUnavailable, payload)
		return
	}

	c.JSON(http.StatusOK, payload)
}
