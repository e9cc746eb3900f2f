package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/mogbrew/internal/handler"
	"go.uber.org/zap"
)

const sessionName = "mogbrew_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionSecret == "" {
		sessionSecret = "mogbrew-dev-secret"
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), Recovery(api.ErrorLog(), logger))

	// 会话只用来记住当前选中的成员
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 60 * 60 * 24 * 365, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/healthz", api.HealthCheck)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/crew", api.ListCrew)
		apiGroup.GET("/catalog", api.ListCatalog)
		apiGroup.GET("/session/user", api.CurrentUser)
		apiGroup.POST("/session/user", api.SelectUser)

		apiGroup.POST("/log", api.LogBeers)
		apiGroup.GET("/today", api.Today)
		apiGroup.GET("/recent", api.Recent)
		apiGroup.GET("/history", api.History)
		apiGroup.GET("/history/:day", api.DayBeers)
		apiGroup.DELETE("/beers/:id", api.DeleteBeer)

		apiGroup.GET("/insights", api.Insights)
		apiGroup.GET("/leaderboard", api.Leaderboard)

		apiGroup.POST("/errors", api.ReportClientError)
	}

	return r
}
