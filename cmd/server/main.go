package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yourname/activitytracker/internal"
	"github.com/yourname/activitytracker/internal/api"
	"github.com/yourname/activitytracker/internal/config"
	"github.com/yourname/activitytracker/internal/metrics"
	"github.com/yourname/activitytracker/internal/service"
	"github.com/yourname/activitytracker/internal/storage"
)

type app struct {
	logger    internal.Logger
	analytics *service.Analytics
	status    *service.Status
}

func (a *app) Logger() internal.Logger       { return a.logger }
func (a *app) Analytics() *service.Analytics { return a.analytics }
func (a *app) Status() *service.Status       { return a.status }

func newLogger(cfg *config.Config) (internal.Logger, func(), error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	zl, err := zc.Build()
	if err != nil {
		return nil, nil, err
	}
	return internal.NewZapLogger(zl.Sugar()), func() { _ = zl.Sync() }, nil
}

func main() {
	cfg := config.Load()

	logger, flush, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer flush()

	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	cache, err := service.NewIntervalCache(cfg.CacheSize)
	if err != nil {
		logger.Fatalf("failed to init interval cache: %v", err)
	}
	analytics := service.NewAnalytics(store, store, cache, logger)
	status := service.NewStatus(analytics, store)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.Register()

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestIDMiddleware(), api.MetricsMiddleware())
	api.RegisterRoutes(r, &app{logger: logger, analytics: analytics, status: status})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("server running on %s (backend=%s)", cfg.HTTPAddr, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}
