package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"ProbabilityPit/internal/service/ratelimit"
	"ProbabilityPit/pkg/cache"
	"ProbabilityPit/pkg/config"
	xhttp "ProbabilityPit/pkg/http"
	pkgkafka "ProbabilityPit/pkg/kafka"
	applogger "ProbabilityPit/pkg/logger"
)

const limiterSweepInterval = time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	cache      cache.Service
	producer   *pkgkafka.Producer
	limiter    *ratelimit.Limiter
	stop       chan struct{}

	shutdownOnce sync.Once
}

// New creates a new App instance with all dependencies. producer and limiter may be nil.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	renderer echo.Renderer,
	c cache.Service,
	producer *pkgkafka.Producer,
	limiter *ratelimit.Limiter,
) *App {
	srv := xhttp.NewServer(handler, log,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORSOrigins),
		xhttp.WithRenderer(renderer),
	)
	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: srv,
		cache:      c,
		producer:   producer,
		limiter:    limiter,
		stop:       make(chan struct{}),
	}
}

// HTTPServer exposes the server, e.g. for in-process tests.
func (a *App) HTTPServer() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	if a.limiter != nil {
		go a.limiter.Run(limiterSweepInterval, a.stop)
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("probability pit started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("content_source", a.cfg.Curriculum.Source),
		applogger.String("cache", a.cfg.Cache.Backend),
		applogger.Bool("log_shipping", a.producer != nil),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Shutdown stops the HTTP server first, then releases the cache, the log collector and the producer.
// Calls after the first are no-ops.
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownOnce.Do(func() { a.shutdown(ctx) })
	return nil
}

func (a *App) shutdown(ctx context.Context) {
	a.log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	close(a.stop)

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	// flush shipped logs before the producer goes away
	a.log.RemoveCollector()
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
}
