// Package server initializes and runs the backend application. It opens the
// database, runs migrations, seeds the demo account, connects the optional
// Redis cache, and serves the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelieperto/atelieperto/internal/logging"
	"github.com/atelieperto/atelieperto/internal/server/config"
	"github.com/atelieperto/atelieperto/internal/server/db"
	"github.com/atelieperto/atelieperto/internal/server/rest"
	"github.com/atelieperto/atelieperto/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	userService     *services.UserService
	providerService *services.ProviderService
	handler         http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	cache, err := newRedisClient(ctx, c.RedisURL)
	if err != nil {
		// the featured cache is an optimization, not a requirement
		logger.Warn(ctx, "redis unavailable, featured cache disabled", "err", err)
		cache = nil
	}

	us := services.NewUserService(rm.Users(), c)
	if err := us.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap error: %w", err)
	}

	ps := services.NewProviderService(rm.Providers(), cache, c, logger)

	handler := rest.NewRouter(us, ps, []byte(c.SecretKey), logger)

	return &App{
		config:          c,
		logger:          logger,
		userService:     us,
		providerService: ps,
		handler:         handler,
	}, nil
}

// newRedisClient connects the cache backend. An empty URL disables caching.
func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "err", err)
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	go app.providerService.WarmFeaturedCache(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
