package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ovenlane/bakeops-backend/internal/cron"
	"github.com/ovenlane/bakeops-backend/internal/distributors"
	"github.com/ovenlane/bakeops-backend/internal/orders"
	"github.com/ovenlane/bakeops-backend/internal/scheduling"
	"github.com/ovenlane/bakeops-backend/internal/stores"
	"github.com/ovenlane/bakeops-backend/internal/trips"
	"github.com/ovenlane/bakeops-backend/pkg/config"
	"github.com/ovenlane/bakeops-backend/pkg/db"
	"github.com/ovenlane/bakeops-backend/pkg/logger"
	"github.com/ovenlane/bakeops-backend/pkg/metrics"
	"github.com/ovenlane/bakeops-backend/pkg/migrate"
	"github.com/ovenlane/bakeops-backend/pkg/outbox"
	"github.com/ovenlane/bakeops-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "scheduler-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "scheduler-worker"

	logg = logger.New(logger.Options{
		ServiceName: "scheduler-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ordersRepo := orders.NewRepository(dbClient.DB())
	outboxRepo := outbox.NewRepository(dbClient.DB())
	outboxService := outbox.NewService(outboxRepo, logg)

	schedulingService, err := scheduling.NewService(scheduling.ServiceParams{
		TxRunner:     dbClient,
		Drafts:       scheduling.NewRepository(dbClient.DB()),
		Orders:       ordersRepo,
		Stores:       stores.NewRepository(dbClient.DB()),
		Distributors: distributors.NewRepository(dbClient.DB()),
		Trips:        trips.NewRepository(dbClient.DB()),
		Events:       outboxService,
		Analyzer:     scheduling.NewAnalyzer(scheduling.NewZoneResolver(nil), nil),
		Pool:         scheduling.NewPoolProvider(distributors.NewRepository(dbClient.DB()), cfg.Scheduling.MaxDailyCapacity),
		Scorer:       scheduling.NewScorer(nil, cfg.Scheduling.MaxDailyCapacity),
		Estimator:    scheduling.NewEstimator(nil, cfg.Scheduling.DefaultDeliverySlot, nil),
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduling service", err)
		os.Exit(1)
	}

	backfillJob, err := cron.NewSchedulingBackfillJob(cron.SchedulingBackfillJobParams{
		Logger:   logg,
		Orders:   ordersRepo,
		Drafts:   schedulingService,
		Lookback: cfg.Scheduling.BackfillLookback,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create backfill job", err)
		os.Exit(1)
	}

	retentionJob, err := cron.NewOutboxRetentionJob(cron.OutboxRetentionJobParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: outboxRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create outbox retention job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, cfg.Cron.LockKey, cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(backfillJob, retentionJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting scheduler worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "scheduler worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "scheduler worker shutting down gracefully")
}
