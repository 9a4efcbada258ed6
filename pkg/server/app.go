package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "OddsPull/internal/domain/repository"
	"OddsPull/internal/service/stream"
	"OddsPull/internal/usecase"
	pkgch "OddsPull/pkg/clickhouse"
	"OddsPull/pkg/config"
	xhttp "OddsPull/pkg/http"
	applogger "OddsPull/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	collector  *usecase.Collector
	chClient   *pkgch.Client
	publisher  domrepo.Publisher
	hub        *stream.Hub
	httpServer *xhttp.Server
	handler    xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.Collector,
	chClient *pkgch.Client,
	publisher domrepo.Publisher,
	hub *stream.Hub,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		logger:    log,
		collector: collector,
		chClient:  chClient,
		publisher: publisher,
		hub:       hub,
		handler:   handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	)

	if err := a.collector.Start(ctx); err != nil {
		a.logger.Error("collector start error", applogger.Error(err))
		return err
	}
	a.logger.Info("collector started",
		applogger.Strings("sports", a.cfg.Scan.Sports),
		applogger.Duration("scan_interval", a.cfg.Scan.ScanInterval))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.collector.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("collector stop error", applogger.Error(err))
	}

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.hub != nil {
		a.hub.Close()
	}

	a.logger.RemoveCollector()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
