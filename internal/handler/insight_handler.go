package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mogbrew/internal/crew"
	"github.com/mogbrew/internal/insight"
	"github.com/mogbrew/internal/service"
)

// Insights 返回个人统计
func (a *API) Insights(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	result, err := a.insights.Insights(c.Request.Context(), userID)
	if err != nil {
		a.handleInsightError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// History 返回所有有记录的日期
func (a *API) History(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	days, err := a.insights.History(c.Request.Context(), userID)
	if err != nil {
		a.handleInsightError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// Leaderboard 返回排行榜，period 为 week 或 all
func (a *API) Leaderboard(c *gin.Context) {
	period, err := insight.ParsePeriod(c.Query("period"))
	if err != nil {
		a.handleInsightError(c, err)
		return
	}

	board, err := a.insights.Leaderboard(c.Request.Context(), period)
	if err != nil {
		a.handleInsightError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"crew":  crew.All(),
		"board": board,
	})
}

func (a *API) handleInsightError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		respondError(c, http.StatusBadRequest, "unknown user")
	case errors.Is(err, insight.ErrInvalidPeriod):
		respondError(c, http.StatusBadRequest, "period must be week or all")
	default:
		a.recordServerError(c, "insights", err)
	}
}
