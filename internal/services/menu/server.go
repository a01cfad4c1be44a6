package menu

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"restaurant-menu/internal/config"
	"restaurant-menu/internal/logger"
)

// Server runs the HTTP handler until its context is cancelled
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer binds h to the configured port
func NewServer(cfg config.HTTPConfig, h *Handler, log *logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           h.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          log,
	}
}

// Run listens and serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	requestID := logger.GenerateRequestID()
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("service_started", fmt.Sprintf("Menu service listening on %s", ln.Addr()), requestID, map[string]interface{}{
			"addr": ln.Addr().String(),
		})
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("graceful_shutdown", "Shutting down HTTP server", requestID, map[string]interface{}{
		"timeout": s.shutdownTimeout.String(),
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
