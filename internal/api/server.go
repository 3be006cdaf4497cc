package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wonny/gdpdash/pkg/config"
	"github.com/wonny/gdpdash/pkg/logger"
)

// Server serves the GDP dashboard API
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
}

// New creates a new API server
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// a cold GDP request may wait on the first dataset load
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: log.Component("api"),
		config: cfg,
	}
}

// Start serves the GDP API and blocks until it is shut down
func (s *Server) Start() error {
	fields := map[string]interface{}{
		"port":   s.config.Port,
		"env":    s.config.Env,
		"source": s.config.Data.Source,
		"years":  fmt.Sprintf("%d-%d", s.config.Data.MinYear, s.config.Data.MaxYear),
	}
	if s.config.UsesDatabase() {
		fields["table"] = s.config.Data.Table
	} else {
		fields["file"] = s.config.Data.File
	}
	s.logger.WithFields(fields).Info("Starting GDP API server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
