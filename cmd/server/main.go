package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"

	"github.com/openclintech/go-triage-server/internal/app"
	"github.com/openclintech/go-triage-server/internal/config"
	"github.com/openclintech/go-triage-server/internal/logging"
	"github.com/openclintech/go-triage-server/internal/metrics"
	"github.com/openclintech/go-triage-server/internal/storage"
	"github.com/openclintech/go-triage-server/internal/storage/memory"
	"github.com/openclintech/go-triage-server/internal/tracing"
)

const (
	serviceName = "go-triage-server"
	version     = "dev"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}

	shutdownTracing, err := tracing.Init(serviceName, version, cfg.TraceOutput)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error(err, "tracing shutdown")
		}
	}()

	store := memory.NewTriageStore()
	var queue storage.TriageQueue = store
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(store)
		queue = metrics.Instrument(store, m)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: app.New(app.Deps{
			Queue:          queue,
			Logger:         logger,
			Metrics:        m,
			StaticDir:      cfg.StaticDir,
			HandlerTimeout: cfg.HandlerTimeout,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, srv, cfg.ShutdownTimeout, logger)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger logr.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("triage backend listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
