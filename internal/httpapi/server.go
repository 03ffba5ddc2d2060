package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	logx "github.com/studio101-core/server/pkg/logger"
)

type ServerConfig struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	CookieSecure    bool          `envconfig:"HTTP_COOKIE_SECURE" default:"false"`
}

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg ServerConfig, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		// completions can take a while
		WriteTimeout: cfg.WriteTimeout,
	}}
}

// Run serves until the server is closed and then calls stop.
func (s *Server) Run(stop context.CancelFunc) {
	defer stop()
	logx.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logx.Error().Err(err).Msg("unexpected http server shutdown")
	}
}

func (s *Server) Close(ctx context.Context) {
	logx.Info().Msg("closing http server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logx.Error().Err(err).Msg("failed to shutdown gracefully")
		return
	}
	logx.Info().Msg("http server is closed")
}
