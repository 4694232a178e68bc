// cmd/server/main.go
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitchforge/internal/api"
	"pitchforge/internal/common/aws"
	"pitchforge/internal/common/config"
	"pitchforge/internal/common/database"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/common/observability"
	"pitchforge/internal/enrich"
	"pitchforge/internal/notify"
	"pitchforge/internal/quota"
	"pitchforge/internal/render"
	"pitchforge/internal/search"
	"pitchforge/internal/store"
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
			delay *= 2 // Exponential backoff
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

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info("starting pitchforge server",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment))

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		log.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	log.Info("PostgreSQL connected")

	pitchStore := store.NewPostgres(pg.DB)
	if err := pitchStore.EnsureSchema(ctx); err != nil {
		log.Fatal("pitches schema setup failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		log.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	log.Info("Redis connected")

	limiter := quota.NewLimiter(rdb.Client, pitchStore, cfg.Quota.DefaultMonthlyLimit, log)

	// --- Init Elasticsearch (optional) with retry ---
	var archive api.PitchArchive
	if cfg.Search.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			log.Fatal("elasticsearch failed after retries", zap.Error(err))
		}

		pitchArchive := search.NewArchive(esClient.Client, cfg.Search.Index, log)
		if err := pitchArchive.EnsureIndex(ctx); err != nil {
			log.Fatal("pitch index setup failed", zap.Error(err))
		}
		archive = pitchArchive
		log.Info("Elasticsearch connected", zap.String("index", cfg.Search.Index))
	} else {
		log.Info("search disabled, archive endpoints report unavailable")
	}

	renderer := render.NewMarkdown(nil)

	// --- Init AWS notification clients (optional) ---
	var sender api.OutreachSender
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled || cfg.Notifications.Alerts.Enabled {
		awsClients, err := aws.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			log.Fatal("aws clients failed", zap.Error(err))
		}
		sender = notify.NewSender(notify.Config{
			EmailEnabled:  cfg.Notifications.Email.Enabled,
			SMSEnabled:    cfg.Notifications.SMS.Enabled,
			FromEmail:     cfg.Notifications.Email.FromEmail,
			AlertsEnabled: cfg.Notifications.Alerts.Enabled,
			AlertTopicARN: cfg.Notifications.Alerts.TopicARN,
		}, awsClients.SES, awsClients.SNS, renderer, log)
		log.Info("notification clients initialized", zap.String("region", cfg.Notifications.AWS.Region))
	} else {
		log.Info("notifications disabled, send endpoint reports unavailable")
	}

	// --- Init market data enrichment (optional) ---
	enricher := enrich.NewClient(enrich.Config{
		Enabled: cfg.Enrichment.Enabled,
		BaseURL: cfg.Enrichment.BaseURL,
		APIKey:  cfg.Enrichment.APIKey,
		Timeout: config.GetDuration(cfg.Enrichment.Timeout),
	}, log)
	if enricher.Enabled() {
		log.Info("market data enrichment enabled", zap.String("baseUrl", cfg.Enrichment.BaseURL))
	}

	// --- HTTP Server ---
	gin.SetMode(cfg.Server.Mode)
	handler := api.NewHandler(cfg, api.Deps{
		Store:    pitchStore,
		Limiter:  limiter,
		Renderer: renderer,
		Enricher: enricher,
		Archive:  archive,
		Sender:   sender,
		Obs:      obs,
	}, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		log.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	log.Info("pitchforge server stopped gracefully")
}
