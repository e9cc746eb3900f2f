package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mogbrew/internal/service"
)

const (
	sessionUserKey = "user_id"

	msgInternalError  = "internal server error"
	msgUserIDRequired = "user_id is required"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseLimitQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// resolveUserID 依次取显式参数、查询参数、会话中选中的成员；都没有时返回 400。
func resolveUserID(c *gin.Context, explicit string) (string, bool) {
	if id := strings.TrimSpace(explicit); id != "" {
		return id, true
	}
	if id := strings.TrimSpace(c.Query("user_id")); id != "" {
		return id, true
	}
	if id, ok := sessions.Default(c).Get(sessionUserKey).(string); ok && strings.TrimSpace(id) != "" {
		return id, true
	}

	respondError(c, http.StatusBadRequest, msgUserIDRequired)
	return "", false
}

// recordServerError 将内部错误写入错误日志并返回通用的 500。
func (a *API) recordServerError(c *gin.Context, serviceName string, err error) {
	a.errorLog.Record(c.Request.Context(), err, service.ErrorRecordInput{
		Type:    service.ErrorTypeServer,
		Service: serviceName,
		URL:     c.Request.URL.String(),
		Metadata: map[string]any{
			"method":     c.Request.Method,
			"request_id": c.GetString(RequestIDKey),
		},
	})
	respondError(c, http.StatusInternalServerError, msgInternalError)
}
