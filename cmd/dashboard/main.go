package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/engagement-dashboard/api/swagger"
	"github.com/noah-isme/engagement-dashboard/internal/handler"
	internalmiddleware "github.com/noah-isme/engagement-dashboard/internal/middleware"
	"github.com/noah-isme/engagement-dashboard/internal/repository"
	"github.com/noah-isme/engagement-dashboard/internal/service"
	"github.com/noah-isme/engagement-dashboard/pkg/config"
	"github.com/noah-isme/engagement-dashboard/pkg/export"
	"github.com/noah-isme/engagement-dashboard/pkg/logger"
)

// @title Engagement Compliance Dashboard API
// @version 1.0.0
// @description Reviewer dashboard for searching physician messages and running compliance checks.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	messageAPI := repository.NewMessageAPIRepository(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout)

	var (
		store   *service.SessionStore
		metrics *service.MetricsService
	)
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService(func() int {
			if store == nil {
				return 0
			}
			return store.Len()
		})
	}
	store = service.NewSessionStore(service.SessionDeps{
		API: messageAPI,
		Executor: service.ExecutorConfig{
			Timeout:  cfg.Backend.RequestTimeout,
			Ordering: service.ParseOrderingPolicy(cfg.Backend.Ordering),
		},
		Logger:  logr,
		Metrics: metrics,
	}, cfg.Sessions.TTL)

	exports := service.NewExportService(export.NewCSVExporter(), export.NewPDFExporter())
	dashboardSvc := service.NewDashboardService(validator.New(), exports, logr)

	handlers := handler.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		API:       handler.NewAPIHandler(dashboardSvc),
		Export:    handler.NewExportHandler(dashboardSvc),
		Metrics:   handler.NewMetricsHandler(metrics, messageAPI, 2*time.Second),
	}

	r, err := handler.NewRouter(handlers, internalmiddleware.Session(store, cfg.Sessions), handler.RouterOptions{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Docs:           cfg.Env != config.EnvProduction,
		Metrics:        metrics,
		Logger:         logr,
	})
	if err != nil {
		logr.Fatal("failed to build router", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"backend", messageAPI.BaseURL(),
		"ordering", cfg.Backend.Ordering)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
