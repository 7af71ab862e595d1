// cmd/report-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"transparency-service/internal/api"
	"transparency-service/internal/common/config"
	"transparency-service/internal/common/database"
	"transparency-service/internal/common/logger"
	"transparency-service/internal/common/observability"
	"transparency-service/internal/questions"
	"transparency-service/internal/report"
	"transparency-service/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting report service...",
		zap.String("environment", cfg.App.Environment),
		zap.String("listen", cfg.Server.ListenAddress),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return pg.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "PostgreSQL initialization")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis (optional; reports fall back to postgres reads) ---
	var reportCache *store.ReportCache
	redisClient, err := database.NewRedis(cfg.Database.Redis)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx)
		cancel()
	}
	if err != nil {
		zapLog.Warn("redis unavailable, report cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		reportCache = store.NewReportCache(redisClient, time.Duration(cfg.Database.Redis.ReportTTL)*time.Second, log)
		zapLog.Info("Redis connected successfully")
	}

	db := pg.GetDB()
	productStore := store.NewProductStore(db)
	questionStore := store.NewQuestionStore(db)
	responseStore := store.NewResponseStore(db)
	reportStore := store.NewReportStore(db)

	// Tier order is fixed: primary, secondary when configured, then fallback.
	providers := []questions.Provider{
		questions.NewPrimaryClient(
			cfg.Upstreams.Primary.BaseURL,
			time.Duration(cfg.Upstreams.Primary.Timeout)*time.Millisecond,
			log,
		),
	}
	if cfg.Upstreams.Secondary.Enabled() {
		providers = append(providers, questions.NewSecondaryClient(
			cfg.Upstreams.Secondary.BaseURL,
			cfg.Upstreams.Secondary.APIKey,
			time.Duration(cfg.Upstreams.Secondary.Timeout)*time.Millisecond,
			log,
		))
	} else {
		zapLog.Info("secondary generation tier disabled (no API key)")
	}
	providers = append(providers, questions.NewFallbackProvider())

	orchestrator := questions.NewOrchestrator(questionStore, log, providers...)
	assembler := report.NewAssembler(productStore, questionStore, responseStore, reportStore, reportCache, log)
	renderer := report.NewRenderer(cfg.Report.PlatformName, log)

	server := &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      api.NewServer(productStore, orchestrator, assembler, renderer, obs, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	// Prometheus scrape endpoint on its own listener
	if cfg.Server.MetricsAddress != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Server.MetricsAddress, mux); err != nil && err != http.ErrServerClosed {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.ListenAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	zapLog.Info("Report service stopped")
}
