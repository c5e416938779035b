package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/ssamu04/groceria/api/routes"
	"github.com/ssamu04/groceria/internal/catalog"
	"github.com/ssamu04/groceria/internal/groceries"
	"github.com/ssamu04/groceria/pkg/config"
	"github.com/ssamu04/groceria/pkg/logger"
	"github.com/ssamu04/groceria/pkg/metrics"
	"github.com/ssamu04/groceria/pkg/mongodb"
	"github.com/ssamu04/groceria/pkg/openfoodfacts"
	"github.com/ssamu04/groceria/pkg/redis"
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

	mongoClient, err := mongodb.New(context.Background(), cfg.Mongo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap mongo", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	defer func() {
		closeErr := multierr.Combine(
			mongoClient.Close(context.Background()),
			redisClient.Close(),
		)
		if closeErr != nil {
			logg.Error(context.Background(), "error closing clients", closeErr)
		}
	}()

	groceryService, err := groceries.NewService(groceries.ServiceParams{
		Repo: groceries.NewRepository(mongoClient.Collection(groceries.CollectionName)),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create grocery service", err)
		os.Exit(1)
	}

	catalogClient := openfoodfacts.NewClient(
		openfoodfacts.WithBaseURL(cfg.Catalog.BaseURL),
		openfoodfacts.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
	)
	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Client:          catalogClient,
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		UpstreamFetch:   cfg.Catalog.UpstreamFetch,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, mongoClient, redisClient, httpMetrics, groceryService, catalogService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
