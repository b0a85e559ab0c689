package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"article_board/internal/config"
)

// Server runs the public and diagnostics listeners side by side.
type Server struct {
	app             *http.Server
	diag            *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func New(cfg config.HTTPConfig, app, diag http.Handler, logger *slog.Logger) *Server {
	return &Server{
		app: &http.Server{
			Addr:         cfg.Addr,
			Handler:      app,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		diag: &http.Server{
			Addr:        cfg.DiagAddr,
			Handler:     diag,
			ReadTimeout: cfg.ReadTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger.With("component", "server"),
	}
}

// Run blocks until ctx is cancelled or a listener fails, then shuts both
// servers down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	for _, srv := range []*http.Server{s.app, s.diag} {
		go func(srv *http.Server) {
			s.logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
	case runErr = <-errCh:
		s.logger.Error("server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.app.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown app server: %w", err))
	}
	if err := s.diag.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown diag server: %w", err))
	}

	return runErr
}
