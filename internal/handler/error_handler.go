package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mogbrew/internal/service"
)

type clientErrorPayload struct {
	Message  string         `json:"message"`
	Service  string         `json:"service"`
	URL      string         `json:"url"`
	Stack    string         `json:"stack"`
	Metadata map[string]any `json:"metadata"`
}

// ReportClientError 接收前端上报的错误并写入错误日志
func (a *API) ReportClientError(c *gin.Context) {
	var payload clientErrorPayload
	if !bindJSON(c, &payload, "invalid error report") {
		return
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		respondError(c, http.StatusBadRequest, "message is required")
		return
	}

	metadata := payload.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["user_agent"] = c.Request.UserAgent()
	metadata["request_id"] = c.GetString(RequestIDKey)

	serviceName := strings.TrimSpace(payload.Service)
	if serviceName == "" {
		serviceName = "client"
	}

	a.errorLog.RecordMessage(c.Request.Context(), message, service.ErrorRecordInput{
		Type:     service.ErrorTypeClient,
		Service:  serviceName,
		URL:      payload.URL,
		Stack:    payload.Stack,
		Metadata: metadata,
	})

	c.JSON(http.StatusAccepted, gin.H{"success": true})
}
