// Package http exposes the reform guide API over HTTP with chi. Tokens travel
// in the "access" and "refresh" headers in both directions.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/reformguide/internal/logging"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, loginID, password, name string, disabilities []string) (*models.User, error)
	Login(ctx context.Context, loginID, password string) (*auth.TokenPair, error)
	IsLoginIDAvailable(ctx context.Context, loginID string) (bool, error)
	UpdateName(ctx context.Context, userID int64, name string) error
	UpdateDisabilities(ctx context.Context, userID int64, disabilities []string) error
	ListLogs(ctx context.Context, userID int64) ([]*models.LogEntry, error)
}

type ReformService interface {
	CreateGuide(ctx context.Context, userID int64, upload *models.Upload) (*models.Reform, error)
}

// SessionAuthenticator resolves request tokens into a session. Every
// protected route goes through Authenticate.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, access, refresh string) (*auth.Session, error)
	Refresh(ctx context.Context, refresh string) (*auth.Session, error)
	Validate(access string) error
}

type HTTPServer struct {
	address       string
	logger        logging.Logger
	users         UserService
	reforms       ReformService
	sessions      SessionAuthenticator
	metrics       *metrics
	registry      *prometheus.Registry
	maxUploadSize int64
	handler       http.Handler
}

func NewHTTPServer(a string, l logging.Logger, us UserService, rs ReformService, sa SessionAuthenticator,
	registry *prometheus.Registry, maxUploadSize int64) *HTTPServer {
	s := &HTTPServer{
		address:       a,
		logger:        l.With("module", "http_server"),
		users:         us,
		reforms:       rs,
		sessions:      sa,
		metrics:       newMetrics(registry),
		registry:      registry,
		maxUploadSize: maxUploadSize,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the routed API, including /metrics and /health.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
