package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/FItraRizky/fro/internal/catalog"
	"github.com/FItraRizky/fro/internal/checkout"
	"github.com/FItraRizky/fro/internal/config"
	"github.com/FItraRizky/fro/internal/event"
	"github.com/FItraRizky/fro/internal/fixture"
	handler "github.com/FItraRizky/fro/internal/handler/http"
	"github.com/FItraRizky/fro/internal/storage"
	"github.com/FItraRizky/fro/internal/storage/memory"
	redisstore "github.com/FItraRizky/fro/internal/storage/redis"
	"github.com/FItraRizky/fro/internal/store"
	"github.com/FItraRizky/fro/pkg/breaker"
	"github.com/FItraRizky/fro/pkg/health"
	pkgkafka "github.com/FItraRizky/fro/pkg/kafka"
	"github.com/FItraRizky/fro/pkg/middleware"
	"github.com/FItraRizky/fro/pkg/tracing"
)

// Version is reported in traces.
const Version = "0.1.0"

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *goredis.Client
	producer       *pkgkafka.Producer
	sessions       *store.Registry
	checkout       *checkout.Service
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "fro",
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampling,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{cfg: cfg, logger: logger, tracerShutdown: tracerShutdown}
	healthHandler := health.NewHandler()

	kv, err := a.openStorage(ctx, healthHandler)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, err
	}

	var publisher event.Publisher = event.Noop{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	engine := catalog.NewEngine(fixture.Products(), logger,
		catalog.WithCategories(fixture.Categories()),
		catalog.WithReviews(fixture.Reviews()),
		catalog.WithLocale(language.Make(cfg.Locale)),
	)

	a.sessions = store.NewRegistry(kv, store.RegistryConfig{
		NotificationTTL: cfg.NotificationTTL,
		Publisher:       publisher,
	}, logger)

	pricer := checkout.NewPricer(fixture.PromoCodes(), fixture.ShippingMethods(), nil)
	a.checkout = checkout.NewService(pricer, checkout.Config{
		SubmitDelay:     cfg.SubmitDelay,
		NewsletterDelay: cfg.NewsletterDelay,
		FailureRate:     cfg.CheckoutFailRate,
	}, logger, checkout.WithPublisher(publisher))

	router := handler.NewRouter(handler.Deps{
		Catalog:     engine,
		Sessions:    a.sessions,
		Checkout:    a.checkout,
		Health:      healthHandler,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		PprofCIDRs:  cfg.PprofCIDRs,
		RateLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	})

	a.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Checkout requests wait for the simulated payment.
		WriteTimeout: 15*time.Second + cfg.SubmitDelay,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

func (a *App) openStorage(ctx context.Context, h *health.Handler) (storage.KeyValue, error) {
	if a.cfg.StorageBackend != config.StorageRedis {
		a.logger.Info("using in-memory session storage")
		return memory.New(), nil
	}

	rdb, err := redisstore.NewClient(ctx, redisstore.Config{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPass,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	a.logger.Info("connected to Redis",
		slog.String("addr", a.cfg.RedisAddr),
		slog.Int("db", a.cfg.RedisDB),
	)

	kv := redisstore.New(rdb, a.cfg.StateTTL, breaker.DefaultConfig("redis"), a.logger)
	h.Register("redis", kv.Ping)
	return kv, nil
}

// Run starts the HTTP server and the idle-session sweeper and blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sweep(sweepCtx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	stopSweep()
	wg.Wait()

	if err := a.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// sweep closes idle sessions every SweepInterval until ctx ends.
func (a *App) sweep(ctx context.Context) {
	if a.cfg.SweepInterval <= 0 {
		return
	}
	ticker := time.NewTicker(a.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.sessions.Sweep(a.cfg.SessionIdle); n > 0 {
				a.logger.Debug("closed idle sessions",
					slog.Int("closed", n),
					slog.Int("open", a.sessions.Len()),
				)
			}
		}
	}
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.checkout.Close()
	a.sessions.Close()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
