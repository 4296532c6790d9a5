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

	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"
	"gorm.io/gorm"

	"bibiartisan/internal/config"
	"bibiartisan/internal/database"
	"bibiartisan/internal/flash"
	"bibiartisan/internal/logging"
	"bibiartisan/internal/media"
	"bibiartisan/internal/metrics"
	"bibiartisan/internal/server"
	"bibiartisan/internal/services"
	"bibiartisan/internal/store"
)

const (
	shutdownTimeout   = 30 * time.Second
	readTimeout       = 15 * time.Second
	idleTimeout       = 60 * time.Second
	dbMetricsInterval = 15 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, "bibiartisan")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Configuration validation failed", zap.Error(err))
	}

	logger.Info("Starting service",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.Bool("debug", cfg.App.Debug),
		zap.String("host", cfg.App.Host),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database
	db, err := database.Open(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		logger.Info("Closing database connections")
		if err := database.Close(db); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go reportDBStats(ctx, db)

	resolver, err := media.New(ctx, &cfg.Media)
	if err != nil {
		logger.Fatal("Failed to initialize media resolver", zap.Error(err))
	}

	flashStore, closeFlash, err := newFlashStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize flash store", zap.Error(err))
	}
	defer closeFlash()

	// Create service instances
	st := store.New(db)
	emailSvc := services.NewEmailService(&cfg.Email, logger)
	whatsappSvc := services.NewWhatsAppService(&cfg.WhatsApp, logger)
	gallerySvc := services.NewGalleryService(st, resolver, logger)
	inquirySvc := services.NewInquiryService(st, emailSvc, whatsappSvc, &cfg.Email, logger)
	diagnosticsSvc := services.NewDiagnosticsService(cfg.Credentials())
	healthSvc := services.NewHealthService(db, cfg.App.Name)

	if !emailSvc.IsEnabled() {
		logger.Warn("Email sending is disabled; messages will only be logged")
	}
	if cfg.Auth.DiagnosticsEnabled {
		logger.Warn("Diagnostics endpoint is enabled and discloses credentials")
	}

	// Mount HTTP handlers
	mux := goahttp.NewMuxer()
	srv := server.New(gallerySvc, inquirySvc, diagnosticsSvc, healthSvc, flashStore, server.Options{
		DiagnosticsEnabled: cfg.Auth.DiagnosticsEnabled,
		SecretKey:          cfg.Auth.SecretKey,
	}, logger)
	srv.Use(middleware.RequestID())
	srv.Use(middleware.PopulateRequestContext())
	srv.Mount(mux)
	for _, m := range srv.Mounts {
		logger.Info("Mounted endpoint", zap.String("method", m.Method), zap.String("verb", m.Verb), zap.String("pattern", m.Pattern))
	}

	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(mux, cfg, logger),
		ReadTimeout:  readTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     zap.NewStdLog(logger.Named("http")),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server failed", zap.Error(err))
		return
	case sig := <-shutdown:
		logger.Info("Starting graceful shutdown", zap.String("signal", sig.String()))
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during graceful shutdown", zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("Shutdown timeout exceeded, forcing close")
			httpServer.Close()
		}
	}

	logger.Info("Server shutdown complete")
}

// newFlashStore builds the configured flash store and its cleanup func
func newFlashStore(ctx context.Context, cfg *config.Config) (flash.Store, func(), error) {
	secure := !cfg.App.Debug
	switch cfg.Flash.Store {
	case "redis":
		client, err := flash.NewRedisClient(ctx, cfg.Flash.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return flash.NewRedisStore(client, cfg.Flash.TTL, secure), func() { client.Close() }, nil
	default:
		return flash.NewCookieStore(cfg.Flash.TTL, secure), func() {}, nil
	}
}

// reportDBStats publishes connection pool gauges until ctx is done
func reportDBStats(ctx context.Context, db *gorm.DB) {
	ticker := time.NewTicker(dbMetricsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stats, err := database.Stats(db); err == nil {
				metrics.UpdateDBConnections(stats)
			}
		}
	}
}
