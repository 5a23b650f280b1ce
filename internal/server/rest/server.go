// Package rest exposes the account API over HTTP using gin.
//
// Routes:
//
//	POST /api/auth/register
//	POST /api/auth/login
//	POST /api/auth/logout
//	GET  /api/auth/profile   (Bearer token required)
//	GET  /health
//	GET  /metrics
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserService is the business logic the handlers call into.
// *services.UserService implements it.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Profile(ctx context.Context, subject string) (*models.User, error)
	Health(ctx context.Context) error
}

// TokenVerifier checks bearer tokens. *auth.Codec implements it.
type TokenVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

type Server struct {
	address           string
	users             UserService
	tokens            TokenVerifier
	logger            logging.Logger
	metrics           *Metrics
	engine            *gin.Engine
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

type Option func(*Server)

func WithTimeouts(readHeader, shutdown time.Duration) Option {
	return func(s *Server) {
		s.readHeaderTimeout = readHeader
		s.shutdownTimeout = shutdown
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

func NewServer(address string, l logging.Logger, us UserService, tv TokenVerifier, opts ...Option) *Server {
	s := &Server{
		address:           address,
		users:             us,
		tokens:            tv,
		logger:            l.With("module", "http_server"),
		readHeaderTimeout: 5 * time.Second,
		shutdownTimeout:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.requestID(), s.requestLogger(), s.recovery())

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api/auth")
	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.POST("/logout", s.logout)
	api.GET("/profile", s.authGate(), s.profile)

	return r
}

// Handler returns the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
