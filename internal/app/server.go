package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/ninolex-gh/internal/config"
	"github.com/heartmarshall/ninolex-gh/internal/transport/middleware"
	"github.com/heartmarshall/ninolex-gh/internal/transport/rest"
)

const rateLimitSweep = time.Minute

// Dictionary is what the HTTP server needs from the lookup service.
type Dictionary interface {
	rest.Dictionary
	rest.Pinger
}

// Server is the HTTP lookup API.
type Server struct {
	httpServer      *http.Server
	limiter         *middleware.RateLimiter
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// NewServer wires the middleware chain and routes. The dictionary is always
// probed by /ready; extra checks (the database, when configured) are
// appended after it.
func NewServer(cfg *config.Config, logger *slog.Logger, dict Dictionary, extra ...rest.Check) *Server {
	checks := append([]rest.Check{{Name: "dictionary", Pinger: dict}}, extra...)

	router := rest.NewRouter(
		rest.NewLookupHandler(dict),
		rest.NewHealthHandler(BuildVersion(), checks...),
	)

	limiter := middleware.NewRateLimiter(rateLimitSweep)
	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMinute),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:      chain(router),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
			ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		limiter:         limiter,
		logger:          logger,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens until ctx is canceled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
