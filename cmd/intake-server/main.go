// cmd/intake-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	awsclient "application-intake/internal/common/aws"
	"application-intake/internal/common/camunda"
	"application-intake/internal/common/config"
	"application-intake/internal/common/database"
	"application-intake/internal/common/logger"
	"application-intake/internal/common/observability"
	"application-intake/internal/notify"
	"application-intake/internal/search"
	"application-intake/internal/sink"
	"application-intake/internal/submission"
	"application-intake/internal/web"

	na "application-intake/internal/workers/application/notify-applicant"
	ra "application-intake/internal/workers/application/record-application"
	sa "application-intake/internal/workers/application/score-application"
	va "application-intake/internal/workers/application/validate-application"
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

	zapLog.Info("Starting intake server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("sinkDriver", cfg.Sink.Driver),
	)

	ctx := context.Background()

	tracing, err := observability.NewTracing(cfg.Observability.ServiceName,
		cfg.Observability.JaegerEndpoint, cfg.Observability.SampleRatio)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}
	obs, err := observability.New(cfg.Observability.ServiceName, tracing)
	if err != nil {
		zapLog.Fatal("metrics init failed", zap.Error(err))
	}

	checks := map[string]web.HealthCheck{}

	// --- Table sink ---
	var (
		sinks sink.Provider
		scope string
	)
	switch cfg.Sink.Driver {
	case config.SinkDriverPostgres:
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		sinks = sink.Static(sink.NewPostgresSink(pg, log))
		scope = cfg.Database.Postgres.Database
		checks["postgres"] = pg.Ping
	case config.SinkDriverMemory:
		sinks = sink.Static(sink.NewMemorySink(cfg.App.Name))
		scope = "memory"
		zapLog.Warn("memory sink selected, rows are not persisted")
	default:
		if missing := cfg.Google.Missing(); len(missing) > 0 {
			zapLog.Warn("Google Sheets configuration incomplete", zap.Strings("missing", missing))
		}
		sinks = sink.SheetsProvider(cfg.Google, log)
		scope = cfg.Google.SheetID
	}

	// --- Ensured-table cache ---
	if cfg.Database.Redis.Enabled {
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		zapLog.Info("Redis connected successfully")

		if ttl := config.GetDuration(cfg.Sink.EnsureCacheTTL); ttl > 0 {
			sinks = sink.WithEnsureCache(sinks, rc.Client, scope, ttl, log)
		}
		checks["redis"] = rc.Ping
	}

	opts := []submission.Option{
		submission.WithObservability(obs),
		submission.WithTimeout(config.GetDuration(cfg.Sink.Timeout)),
	}

	// --- Search index ---
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 10, 3*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		indexer := search.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.Index, log)
		if err := indexer.EnsureIndex(ctx); err != nil {
			zapLog.Warn("search index bootstrap failed", zap.Error(err))
		}
		opts = append(opts, submission.WithIndexer(indexer))
		checks["elasticsearch"] = esClient.Ping
	}

	// --- Notifications ---
	var (
		sesService notify.SESService
		snsService notify.SNSService
	)
	awsCfg := cfg.Integrations.AWS
	if awsCfg.SES.Enabled || awsCfg.SNS.Enabled {
		sdkCfg, err := awsclient.LoadConfig(ctx, awsCfg.Region)
		if err != nil {
			zapLog.Fatal("aws config load failed", zap.Error(err))
		}
		if awsCfg.SES.Enabled {
			sesService = awsclient.NewSESClient(sdkCfg)
		}
		if awsCfg.SNS.Enabled {
			snsService = awsclient.NewSNSClient(sdkCfg)
		}
	}
	notifier := notify.NewNotifier(notify.Config{
		EmailEnabled: awsCfg.SES.Enabled,
		FromEmail:    awsCfg.SES.FromEmail,
		TopicEnabled: awsCfg.SNS.Enabled,
		TopicARN:     awsCfg.SNS.TopicARN,
		Company:      cfg.App.Company,
	}, sesService, snsService, log)

	// The web handlers notify inline; BPMN processes use notify-applicant.
	submissions := submission.NewService(sinks, log, append(opts, submission.WithNotifier(notifier))...)

	// --- Zeebe workers ---
	var workers *camunda.Workers
	if cfg.Camunda.Enabled {
		zeebe, err := camunda.NewClient(ctx, camunda.ConfigFrom(cfg.Camunda))
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer zeebe.Close()
		zapLog.Info("Zeebe client connected successfully")

		checks["zeebe"] = zeebe.HealthCheck

		// Processes run notify-applicant as their own step.
		recorder := submission.NewService(sinks, log, opts...)

		workers = camunda.NewWorkers(zeebe.GetClient(), log)

		wc := config.GetWorkerConfig(cfg, va.TaskType)
		workers.Start(va.TaskType, wc, va.NewHandler(va.LoadConfig(wc), log).Handle)

		wc = config.GetWorkerConfig(cfg, sa.TaskType)
		workers.Start(sa.TaskType, wc, sa.NewHandler(sa.LoadConfig(wc), log).Handle)

		wc = config.GetWorkerConfig(cfg, ra.TaskType)
		workers.Start(ra.TaskType, wc, ra.NewHandler(ra.LoadConfig(wc), recorder, log).Handle)

		wc = config.GetWorkerConfig(cfg, na.TaskType)
		workers.Start(na.TaskType, wc, na.NewHandler(na.LoadConfig(wc), notifier, log).Handle)

		zapLog.Info("Workers registered", zap.Int("count", workers.Count()))
	}

	// --- HTTP server ---
	server, err := web.NewServer(web.Deps{
		Submissions: submissions,
		Sinks:       sinks,
		SinkDriver:  cfg.Sink.Driver,
		Google:      cfg.Google,
		Company:     cfg.App.Company,
		Checks:      checks,
	}, cfg.Server, log)
	if err != nil {
		zapLog.Fatal("http server init failed", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLog.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	if workers != nil {
		workers.Close()
	}
	obs.Shutdown(shutdownCtx)

	zapLog.Info("Intake server stopped")
}
