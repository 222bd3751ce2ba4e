package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-tracker/flightboard/internal/api"
	"flight-tracker/flightboard/internal/common"
	"flight-tracker/flightboard/internal/config"
	"flight-tracker/flightboard/internal/db"
	"flight-tracker/flightboard/internal/db/repositories"
	"flight-tracker/flightboard/internal/events"
	"flight-tracker/flightboard/internal/logging"
	"flight-tracker/flightboard/internal/metrics"
	"flight-tracker/flightboard/internal/middleware"
	"flight-tracker/flightboard/internal/routes"
	"flight-tracker/flightboard/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	if err := run(cfg); err != nil {
		logging.Fatal("Server exited with error", "error", err)
	}
}

func run(cfg *config.Config) error {
	logging.Info("Flightboard starting up",
		"environment", cfg.Server.Environment,
		"store_backend", cfg.Database.Backend,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()
	logging.Info("Connected to database", "driver", conn.DriverName())

	orm, err := db.InitORM(conn.DB, conn.DriverName())
	if err != nil {
		return err
	}
	if err := db.Migrate(orm); err != nil {
		return err
	}

	var store repositories.FlightStore
	switch cfg.Database.Backend {
	case config.StoreBackendGORM:
		store = repositories.NewFlightRepositoryGORM(orm)
	default:
		store = repositories.NewFlightRepository(conn)
	}

	var (
		cache     common.CacheInterface
		cachePing api.Pinger
	)
	if cfg.Cache.RedisAddr != "" {
		redisCache := common.NewRedisCacheService(common.NewRedisClient(cfg.Cache))
		cache, cachePing = redisCache, redisCache
	} else {
		cache = common.NewCacheService(cfg.Cache.TTL, 2*cfg.Cache.TTL+time.Minute)
	}
	defer cache.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.FlightTopic)
		logging.Info("Publishing flight events to Kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.FlightTopic)
	}
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewDBStatsCollector(conn.DB, "flightboard"))
	metricsReg := metrics.NewMetricsRegistry(reg)

	limiter := middleware.NewRateLimiter(cfg.Limits.RateLimitRPS, cfg.Limits.RateLimitBurst)

	handler := routes.RegisterRoutes(routes.RouterOptions{
		Config: cfg,
		Deps: &api.Dependencies{
			Flights:     services.NewFlightsService(store, cache, cfg.Cache.TTL, publisher, metricsReg),
			DB:          conn,
			Cache:       cachePing,
			Environment: cfg.Server.Environment,
			Production:  cfg.IsProduction(),
			UpSince:     time.Now(),
			PingTimeout: cfg.Database.ConnectTimeout,
		},
		Metrics:     metricsReg,
		Gatherer:    reg,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server starting", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				limiter.Sweep()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
