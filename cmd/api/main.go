package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ovenlane/bakeops-backend/api/routes"
	"github.com/ovenlane/bakeops-backend/internal/auth"
	"github.com/ovenlane/bakeops-backend/internal/distributors"
	"github.com/ovenlane/bakeops-backend/internal/orders"
	"github.com/ovenlane/bakeops-backend/internal/scheduling"
	"github.com/ovenlane/bakeops-backend/internal/stores"
	"github.com/ovenlane/bakeops-backend/internal/trips"
	"github.com/ovenlane/bakeops-backend/internal/users"
	"github.com/ovenlane/bakeops-backend/pkg/config"
	"github.com/ovenlane/bakeops-backend/pkg/db"
	"github.com/ovenlane/bakeops-backend/pkg/logger"
	"github.com/ovenlane/bakeops-backend/pkg/migrate"
	"github.com/ovenlane/bakeops-backend/pkg/outbox"
	"github.com/ovenlane/bakeops-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  users.NewRepository(dbClient.DB()),
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	schedulingService, err := scheduling.NewService(scheduling.ServiceParams{
		TxRunner:     dbClient,
		Drafts:       scheduling.NewRepository(dbClient.DB()),
		Orders:       orders.NewRepository(dbClient.DB()),
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

	metricsRegistry := prometheus.NewRegistry()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, metricsRegistry, authService, schedulingService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
