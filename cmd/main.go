/*
Package main is the entry point for the profilehub API server.

It is responsible for loading configuration, initializing the global logging system,
connecting to PostgreSQL (running migrations), selecting the image storage backend,
setting up the HTTP server, and gracefully handling operating system interrupt signals
(SIGINT, SIGTERM) so in-flight requests and scheduled image removals can finish.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"profilehub/internal/app/db"
	"profilehub/internal/app/profile"
	"profilehub/internal/app/storage"
	"profilehub/internal/app/user"
	"profilehub/internal/configs"
	"profilehub/internal/handler"
	"profilehub/internal/pkg/auth/jwt"
	"profilehub/internal/pkg/limiter"
	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/metrics"
	"profilehub/internal/pkg/password"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment(), handler.ServiceName)
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("image_backend", cfg.ImageBackend).
		Int("bcrypt_cost", cfg.BcryptCost).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.Database.DSN())
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	backend, err := newImageBackend(ctx, cfg)
	if err != nil {
		logx.Fatal(err, "Failed to initialize image storage", "backend", cfg.ImageBackend)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	users := user.NewStore(pool)
	images := storage.NewImageStore(backend, collector)
	replacer := profile.NewReplacer(images, users, collector)

	authLimiter := limiter.NewIPRateLimiter(rate.Limit(handler.AuthRate), handler.AuthBurst)
	defer authLimiter.Close()

	deps := &handler.AppDeps{
		Config:      cfg,
		Users:       users,
		Passwords:   password.NewHasher(cfg.BcryptCost),
		Tokens:      jwt.NewService(cfg.JWTSecret),
		Images:      images,
		Replacer:    replacer,
		Metrics:     collector,
		AuthLimiter: authLimiter,
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           handler.Router(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info("profilehub server starting", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	// Let image removals scheduled by the last requests finish.
	replacer.Wait()

	logx.Info("Server gracefully stopped.")
}

// newImageBackend builds the storage backend selected by IMAGE_BACKEND.
func newImageBackend(ctx context.Context, cfg *configs.AppConfig) (storage.Backend, error) {
	switch cfg.ImageBackend {
	case configs.ImageBackendS3:
		return storage.NewS3Backend(ctx, storage.S3Config{
			Bucket:          cfg.S3BucketName,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	default:
		return storage.NewLocalBackend(cfg.UploadDir)
	}
}
