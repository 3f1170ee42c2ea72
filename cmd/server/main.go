package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resaletrack/internal/config"
	"resaletrack/internal/handler"
	"resaletrack/internal/logger"
	"resaletrack/internal/port"
	"resaletrack/internal/reporting"
	"resaletrack/internal/repository/postgres"
	"resaletrack/internal/router"
	"resaletrack/internal/service"
	s3storage "resaletrack/internal/storage/s3"
)

// @title Resale Profitability API
// @version 1.0
// @description Profitability reporting over resale inventory.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog := logger.New(cfg.Log)
	defer zlog.Sync() //nolint:errcheck
	zap.ReplaceGlobals(zlog)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	itemRepo := postgres.NewItemRepo(db)

	// Initialize storage (only needed for presigned thumbnails)
	var storage port.ObjectStorage
	if cfg.Report.PresignThumbnails && cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(context.Background(), &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	loc := cfg.Report.Location()
	now := func() time.Time { return time.Now().In(loc) }
	engine := reporting.NewEngine(
		service.NewThumbnailLinker(&cfg.Report, &cfg.S3, storage),
		reporting.Options{
			Placeholder: cfg.Report.PlaceholderThumbnail,
			DefaultTopN: cfg.Report.DefaultTopN,
			Logger:      zlog.Named("reporting"),
		},
	)
	reportSvc := service.NewReportService(itemRepo, engine, now, zlog.Named("report"))

	// Initialize handlers
	reportH := handler.NewReportHandler(reportSvc, now)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(zlog, cfg.CORS.AllowedOrigins, reportH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
