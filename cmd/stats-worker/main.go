package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bakecake/bakecake-backend/internal/jobs"
	"github.com/bakecake/bakecake-backend/internal/statistics"
	"github.com/bakecake/bakecake-backend/pkg/config"
	"github.com/bakecake/bakecake-backend/pkg/db"
	"github.com/bakecake/bakecake-backend/pkg/logger"
	"github.com/bakecake/bakecake-backend/pkg/metrics"
	"github.com/bakecake/bakecake-backend/pkg/migrate"
	"github.com/bakecake/bakecake-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "stats-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "stats-worker"

	logg = logger.New(logger.Options{
		ServiceName: "stats-worker",
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

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	statsService, err := statistics.NewService(statistics.ServiceParams{
		Repo:    statistics.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Cache:   redisClient,
		Config:  cfg.Statistics,
		Logger:  logg,
		Metrics: orderMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create statistics service", err)
		os.Exit(1)
	}

	statsJob, err := jobs.NewStatisticsJob(statsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create statistics job", err)
		os.Exit(1)
	}

	lock, err := jobs.NewRedisLock(redisClient, lockKey(redisClient, cfg.App.Env), cfg.Statistics.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create worker lock", err)
		os.Exit(1)
	}

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)
	service, err := jobs.NewService(jobs.ServiceParams{
		Logger:   logg,
		Registry: jobs.NewRegistry(statsJob),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Statistics.RefreshInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create worker service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting stats worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "stats worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "stats worker shutting down gracefully")
}

func lockKey(client *redis.Client, env string) string {
	if env == "" {
		env = "local"
	}
	return client.LockKey(fmt.Sprintf("stats-worker:%s", env))
}
