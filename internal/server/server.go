// Package server boots the Vastra HTTP service: configuration,
// storage backends, background workers and the route table.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/reqid"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

const (
	queueWorkers    = 4
	shutdownTimeout = 15 * time.Second
)

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if config.AppEnv() == "production" {
		if mh, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDB(), "logs"); err != nil {
			logger.Warn("server: mongo log sink disabled", "error", err)
		} else {
			logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
			defer mh.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		database.Disconnect(ctx) //nolint:errcheck
	}()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx); err != nil {
		cancelIndexes()
		return err
	}
	cancelIndexes()

	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	// Background queue: Redis-backed when the cache connection is up,
	// in-memory otherwise.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseCollection(database.Collection("failed_jobs"))
	jobs.Register()
	queue.StartWorkers(workerCtx, queueWorkers)

	orderFeed := ws.NewHub()
	go orderFeed.Run()

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz)

	routes.RegisterAPI(r, database.DB(), orderFeed)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// healthz reports process liveness and database connectivity.
func healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	response.Message(w, "ok", nil)
}
