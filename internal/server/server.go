package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wakehub/wakehub/internal/config"
	"github.com/wakehub/wakehub/internal/logging"
	"github.com/wakehub/wakehub/internal/probe"
	"github.com/wakehub/wakehub/internal/registry"
	"github.com/wakehub/wakehub/internal/wol"
)

const shutdownTimeout = 10 * time.Second

// Server is the wakehub HTTP server. It owns the device registry, the WOL
// sender, and the probe pool, and exposes them over a JSON API plus a
// websocket status stream.
type Server struct {
	cfg    *config.Config
	store  *registry.Store
	sender *wol.Sender
	pool   *probe.Pool
	prober *probe.Prober

	httpServer *http.Server
}

// New creates a server around an already-opened device store. The registry is
// injected rather than reached through any global so tests can run against a
// temporary store.
func New(cfg *config.Config, store *registry.Store) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		sender: wol.NewSender(),
		pool:   probe.NewPool(cfg.Probe.Port, cfg.Probe.Timeout(), cfg.Probe.Concurrency),
		prober: probe.NewProber(cfg.Probe.Timeout()),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start runs the server and blocks until a shutdown signal arrives or the
// listener fails.
func (s *Server) Start() error {
	logging.Info("Starting wakehub server",
		zap.String("addr", s.cfg.Listen),
		zap.String("store", s.store.Path()),
		zap.Int("probe_port", s.cfg.Probe.Port),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
			return
		}
		errChan <- nil
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully stops the server, waiting up to shutdownTimeout for
// in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}

	logging.Info("Server stopped")
	return nil
}
