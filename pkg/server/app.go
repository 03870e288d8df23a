package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "FinWeave/internal/domain/repository"
	"FinWeave/internal/usecase"
	"FinWeave/pkg/config"
	xhttp "FinWeave/pkg/http"
	"FinWeave/pkg/logger"
)

// App encapsulates the application lifecycle. In "once" mode it runs the
// pipeline a single time and exits; in "serve" mode it re-runs the pipeline
// on a schedule and serves the latest result over HTTP until interrupted.
type App struct {
	cfg      *config.Config
	pipeline *usecase.Pipeline
	exporter drepo.Exporter
	handler  xhttp.Handler
	log      *logger.Logger

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	pipeline *usecase.Pipeline,
	exporter drepo.Exporter,
	handler xhttp.Handler,
	log *logger.Logger,
) *App {
	return &App{
		cfg:      cfg,
		pipeline: pipeline,
		exporter: exporter,
		handler:  handler,
		log:      log,
	}
}

// Run starts the application and blocks until done or interrupted.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer func() {
		if err := a.exporter.Close(); err != nil {
			a.log.Warn("exporter close error", logger.Error(err))
		}
	}()

	if a.cfg.Pipeline.Mode != "serve" {
		return a.pipeline.Run(ctx)
	}
	return a.serve(ctx)
}

func (a *App) serve(ctx context.Context) error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		return err
	}

	// A failed run keeps serving the previous result.
	if err := a.pipeline.Run(ctx); err != nil {
		a.log.Error("pipeline run failed", logger.Error(err))
	}

	interval := a.cfg.Pipeline.RefreshInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.log.Info("serving",
		logger.Int("port", a.cfg.Server.Port),
		logger.Duration("refresh_interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			return a.shutdown()
		case <-ticker.C:
			if err := a.pipeline.Run(ctx); err != nil {
				a.log.Error("pipeline run failed", logger.Error(err))
			}
		}
	}
}

func (a *App) shutdown() error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
