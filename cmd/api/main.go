package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/api/routes"
	"github.com/palengkeph/palengke-backend/internal/address"
	cartsvc "github.com/palengkeph/palengke-backend/internal/cart"
	checkoutsvc "github.com/palengkeph/palengke-backend/internal/checkout"
	"github.com/palengkeph/palengke-backend/internal/merchants"
	orderstore "github.com/palengkeph/palengke-backend/internal/orders"
	paymentsvc "github.com/palengkeph/palengke-backend/internal/payments"
	quotesvc "github.com/palengkeph/palengke-backend/internal/quote"
	"github.com/palengkeph/palengke-backend/pkg/config"
	"github.com/palengkeph/palengke-backend/pkg/db"
	"github.com/palengkeph/palengke-backend/pkg/logger"
	"github.com/palengkeph/palengke-backend/pkg/maps"
	"github.com/palengkeph/palengke-backend/pkg/metrics"
	"github.com/palengkeph/palengke-backend/pkg/migrate"
	"github.com/palengkeph/palengke-backend/pkg/outbox"
	"github.com/palengkeph/palengke-backend/pkg/pubsub"
	"github.com/palengkeph/palengke-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	var mapsClient *maps.Client
	if cfg.GoogleMaps.APIKey != "" {
		mapsClient, err = maps.NewClient(cfg.GoogleMaps.APIKey)
		if err != nil {
			logg.Error(context.Background(), "failed to create maps client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "google maps api key missing, address resolution disabled")
	}

	defaultPerKmRate, err := decimal.NewFromString(cfg.Pricing.DefaultPerKmRate)
	if err != nil {
		logg.Error(context.Background(), "invalid default per-km rate", err)
		os.Exit(1)
	}

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)

	merchantService, err := merchants.NewService(merchants.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create merchant service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo:      cartsvc.NewRepository(dbClient.DB()),
		Merchants: merchantService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var quoteCache *quotesvc.Cache
	if cfg.FeatureFlags.QuoteCache {
		quoteCache = quotesvc.NewCache(redisClient, redis.IsMiss, cfg.Checkout.QuoteCacheTTL)
	}

	quoteService, err := quotesvc.NewService(quotesvc.ServiceParams{
		Engine:    quotesvc.NewEngine(defaultPerKmRate),
		Merchants: merchantService,
		Cache:     quoteCache,
		Metrics:   pipelineMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	paymentService, err := paymentsvc.NewService(paymentsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Carts:             cartService,
		CartStatus:        cartsvc.NewRepository(dbClient.DB()),
		Quotes:            quoteService,
		Payments:          paymentService,
		Orders:            orderstore.NewRepository(dbClient.DB()),
		Outbox:            outbox.NewService(outbox.NewRepository(dbClient.DB()), logg),
		TransactionRunner: dbClient,
		Aggregator:        checkoutsvc.NewAggregator(cfg.Pricing.CurrencySymbol),
		Metrics:           pipelineMetrics,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	addressService := address.NewService(mapsClient)

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			pubsubClient,
			addressService,
			cartService,
			quoteService,
			paymentService,
			checkoutService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
