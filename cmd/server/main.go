package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mogbrew/internal/config"
	"github.com/mogbrew/internal/db"
	"github.com/mogbrew/internal/handler"
	"github.com/mogbrew/internal/logging"
	"github.com/mogbrew/internal/router"
	"github.com/mogbrew/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.AppName, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.Fatal("failed to initialize database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}

	// 错误库不可用时只记日志，服务照常启动
	if err := db.InitErrors(cfg.ErrorsDatabasePath); err != nil {
		logger.Warn("error log database unavailable", zap.String("path", cfg.ErrorsDatabasePath), zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)

	errorLog := service.NewErrorLogService(db.ErrorsDB, logging.Named(logger, "errors"), cfg.AppName)
	api := handler.NewAPI(db.DB, errorLog, loc)
	r := router.SetupRouter(api, cfg.SessionSecret, logger)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.ListenAddr), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
