package router

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mogbrew/internal/handler"
	"github.com/mogbrew/internal/logging"
	"github.com/mogbrew/internal/service"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestID 为每个请求分配 ID，沿用上游传入的值
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(handler.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog 每个请求输出一行结构化日志
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	logger = logging.Named(logger, "http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		requestLogger := logging.WithRequestID(logger, c.GetString(handler.RequestIDKey))
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			requestLogger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			requestLogger.Warn("request", fields...)
		default:
			requestLogger.Info("request", fields...)
		}
	}
}

// Recovery 捕获 handler 中的 panic，写入错误日志后返回 500
func Recovery(errorLog *service.ErrorLogService, logger *zap.Logger) gin.HandlerFunc {
	logger = logging.Named(logger, "recovery")

	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			requestID := c.GetString(handler.RequestIDKey)
			err := fmt.Errorf("panic: %v", recovered)
			logging.WithRequestID(logger, requestID).Error("handler panicked", zap.Error(err))

			errorLog.Record(c.Request.Context(), err, service.ErrorRecordInput{
				Type:    service.ErrorTypeServer,
				Service: "http",
				URL:     c.Request.URL.String(),
				Stack:   string(debug.Stack()),
				Metadata: map[string]any{
					"method":     c.Request.Method,
					"request_id": requestID,
				},
			})

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}()

		c.Next()
	}
}
