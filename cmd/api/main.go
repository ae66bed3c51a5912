package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bakecake/bakecake-backend/api/routes"
	"github.com/bakecake/bakecake-backend/internal/cakes"
	"github.com/bakecake/bakecake-backend/internal/catalog"
	"github.com/bakecake/bakecake-backend/internal/orders"
	"github.com/bakecake/bakecake-backend/internal/statistics"
	"github.com/bakecake/bakecake-backend/internal/users"
	"github.com/bakecake/bakecake-backend/pkg/config"
	"github.com/bakecake/bakecake-backend/pkg/db"
	"github.com/bakecake/bakecake-backend/pkg/logger"
	"github.com/bakecake/bakecake-backend/pkg/metrics"
	"github.com/bakecake/bakecake-backend/pkg/migrate"
	"github.com/bakecake/bakecake-backend/pkg/redis"
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

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	if cfg.FeatureFlags.SeedCatalog {
		if err := catalogService.Seed(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	usersService, err := users.NewService(users.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	cakesService, err := cakes.NewService(cakes.ServiceParams{
		Repo:    cakes.NewRepository(dbClient.DB()),
		Catalog: catalogService,
		Tx:      dbClient,
		Logger:  logg,
		Metrics: orderMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cakes service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:    orders.NewRepository(dbClient.DB()),
		Users:   usersService,
		Cakes:   cakesService,
		Tx:      dbClient,
		Logger:  logg,
		Metrics: orderMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

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

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Cache:      redisClient,
			Users:      usersService,
			Catalog:    catalogService,
			Cakes:      cakesService,
			Orders:     ordersService,
			Statistics: statsService,
			Metrics:    prometheus.DefaultGatherer,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
