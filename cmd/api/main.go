package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/cartview/api/controllers"
	"github.com/angelmondragon/cartview/api/routes"
	"github.com/angelmondragon/cartview/internal/cart"
	"github.com/angelmondragon/cartview/internal/cartview"
	"github.com/angelmondragon/cartview/pkg/config"
	"github.com/angelmondragon/cartview/pkg/db"
	"github.com/angelmondragon/cartview/pkg/enums"
	"github.com/angelmondragon/cartview/pkg/env"
	"github.com/angelmondragon/cartview/pkg/instance"
	"github.com/angelmondragon/cartview/pkg/logger"
	"github.com/angelmondragon/cartview/pkg/metrics"
	"github.com/angelmondragon/cartview/pkg/migrate"
	"github.com/angelmondragon/cartview/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

// resources collects everything main must close on the way out.
type resources struct {
	closers []func() error
}

func (r *resources) add(fn func() error) {
	r.closers = append(r.closers, fn)
}

func (r *resources) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, r.closers[i]())
	}
	return err
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "cartview-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cartview-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := &resources{}
	defer func() {
		if err := res.Close(); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pingers := map[string]controllers.Pinger{}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		res.add(redisClient.Close)
		pingers["redis"] = redisClient
	}

	store, err := buildStore(ctx, cfg, logg, redisClient, res, pingers)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap cart store", err)
		os.Exit(1)
	}

	if cfg.Store.SeedFile != "" {
		entries, err := cart.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			logg.Error(ctx, "failed to read seed file", err)
			os.Exit(1)
		}
		seeded, err := cart.Seed(ctx, store, entries)
		if err != nil {
			logg.Error(ctx, "failed to seed cart", err)
			os.Exit(1)
		}
		logg.Info(logg.WithField(ctx, "entries", seeded), "cart seeded")
	}

	instrumented := cart.Instrument(store, metrics.NewCartMetrics(reg), logg)

	continueURL := cfg.Cart.ContinueShoppingURL
	view, err := cartview.New(instrumented, cartview.Options{
		PlaceholderImageURL: cfg.Cart.PlaceholderImageURL,
		CheckoutNotice:      cfg.Cart.CheckoutNotice,
		ContinueShopping: func(ctx context.Context) string {
			logg.Info(ctx, "cart.continue_shopping")
			return continueURL
		},
	})
	if err != nil {
		logg.Error(ctx, "failed to build cart view", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		View:        view,
		Pingers:     pingers,
		Gatherer:    reg,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
	}
	if redisClient != nil {
		deps.Idempotency = redisClient
	}

	addr := ":" + env.FirstOf(cfg.App.Port, "PORT")
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"driver":   cfg.Store.Driver.String(),
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

func buildStore(
	ctx context.Context,
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	res *resources,
	pingers map[string]controllers.Pinger,
) (cart.Store, error) {
	switch cfg.Store.Driver {
	case enums.StoreDriverSQLite, enums.StoreDriverPostgres:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		res.add(dbClient.Close)
		pingers["database"] = dbClient

		if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
			return nil, err
		}
		return cart.NewRepository(dbClient.DB(), dbClient)

	case enums.StoreDriverRedis:
		if redisClient == nil {
			return nil, errors.New("redis store selected without a redis endpoint")
		}
		return cart.NewRedisStore(redisClient, cfg.Redis.CartKey, cfg.Redis.LockTTL)

	default:
		return cart.NewMemoryStore(), nil
	}
}
