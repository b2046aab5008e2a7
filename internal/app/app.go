package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/health"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httpclient"
	pkgkafka "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/kafka"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/tracing"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/auth"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/cart"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/checkout"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/client"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/config"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/event"
	handler "github.com/gabrieldeoliveira04/STORE-e-commerce/internal/handler/http"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/nav"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/notify"
	sessionredis "github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session/redis"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/shipping"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server

	uninstallGuard  func()
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Initialize tracing.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: cfg.AppVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Build the dependency graph.
	events := event.NewProducer(producer, logger)
	store := sessionredis.NewStore(rdb, logger)
	navigator := nav.NewTracker(logger)
	notifier := notify.NewLogNotifier(logger)

	// The session guard observes every upstream, so an expired token is
	// caught no matter which call surfaces the 401. The catalog, CEP, and
	// checkout upstreams each get their own client; the external two are
	// additionally breaker-wrapped so an outage in one cannot trip traffic
	// to the others.
	guard := client.NewSessionGuard(store, navigator, notifier, events, logger)

	apiClient := httpclient.New(httpclient.DefaultConfig())
	cepInner := httpclient.New(httpclient.DefaultConfig())
	checkoutInner := httpclient.New(httpclient.DefaultConfig())

	uninstalls := []func(){
		apiClient.Use(guard.Middleware()),
		cepInner.Use(guard.Middleware()),
		checkoutInner.Use(guard.Middleware()),
	}
	uninstallGuard := func() {
		for _, uninstall := range uninstalls {
			uninstall()
		}
	}

	cepClient := httpclient.NewCircuitBreakerClient(
		cepInner,
		httpclient.DefaultCircuitBreakerConfig("cep"),
		logger,
	)
	checkoutClient := httpclient.NewCircuitBreakerClient(
		checkoutInner,
		httpclient.DefaultCircuitBreakerConfig("checkout"),
		logger,
	)

	remote := client.New(apiClient, cepClient, checkoutClient, client.Config{
		APIBaseURL:  cfg.APIBaseURL,
		CheckoutURL: cfg.CheckoutURL,
		CEPBaseURL:  cfg.CEPBaseURL,
	}, store, logger)

	synchronizer := cart.NewSynchronizer(remote, events, logger)
	resolver := shipping.NewResolver(remote, cfg.ShippingOriginCEP, logger)
	authService := auth.NewService(remote, store, notifier, navigator, events, synchronizer, logger)
	checkoutService := checkout.NewService(remote, synchronizer, events, navigator, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(authService, store, logger),
		Cart:     handler.NewCartHandler(synchronizer, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
		Shipping: handler.NewShippingHandler(resolver, logger),
		Prefs:    handler.NewPrefsHandler(store, logger),
		Health:   healthHandler,
		Page:     handler.TrackPage(navigator),
	}, handler.RouterConfig{
		AppVersion:     cfg.AppVersion,
		RequestTimeout: cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		uninstallGuard:  uninstallGuard,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Stop observing upstream responses before tearing dependencies down.
	a.uninstallGuard()

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
