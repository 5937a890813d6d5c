package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"VaderBoot/pkg/http/middleware"
	applogger "VaderBoot/pkg/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerOption configures Server.
type ServerOption func(*ServerConfig)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	BodyLimit       string
	Metrics         bool
	Logger          *applogger.Logger
}

// Server wraps Echo HTTP server.
type Server struct {
	echo   *echo.Echo
	config *ServerConfig
	l      *applogger.Logger
}

// NewServer creates a new HTTP server with Echo.
func NewServer(handler Handler, opts ...ServerOption) *Server {
	cfg := &ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		BodyLimit:       "1M",
		Metrics:         true,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	l := cfg.Logger
	if l == nil {
		l = applogger.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(middleware.Recover(l))
	e.Use(middleware.RequestLogging(l))
	if cfg.BodyLimit != "" {
		e.Use(echomw.BodyLimit(cfg.BodyLimit))
	}
	if cfg.Metrics {
		e.Use(middleware.Metrics(prometheus.DefaultRegisterer))
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	if handler != nil {
		handler.RegisterRoutes(e)
	}

	return &Server{
		echo:   e,
		config: cfg,
		l:      l,
	}
}

// Start starts the HTTP server in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	go func() {
		s.l.Info("http server listening", applogger.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.l.Error("http server error", applogger.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	s.l.Info("http server stopped gracefully")
	return nil
}

// ShutdownTimeout is the configured grace period for Stop.
func (s *Server) ShutdownTimeout() time.Duration {
	return s.config.ShutdownTimeout
}

// WithHost sets server host.
func WithHost(host string) ServerOption {
	return func(c *ServerConfig) {
		c.Host = host
	}
}

// WithPort sets server port.
func WithPort(port int) ServerOption {
	return func(c *ServerConfig) {
		c.Port = port
	}
}

// WithTimeouts sets read/write timeouts.
func WithTimeouts(read, write, shutdown time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.ReadTimeout = read
		c.WriteTimeout = write
		c.ShutdownTimeout = shutdown
	}
}

// WithBodyLimit caps request bodies, e.g. "1M".
func WithBodyLimit(limit string) ServerOption {
	return func(c *ServerConfig) {
		c.BodyLimit = limit
	}
}

// WithMetrics enables the request metrics middleware and the /metrics endpoint.
func WithMetrics(enabled bool) ServerOption {
	return func(c *ServerConfig) {
		c.Metrics = enabled
	}
}

// WithLogger sets the logger used by the server and its middleware.
func WithLogger(l *applogger.Logger) ServerOption {
	return func(c *ServerConfig) {
		c.Logger = l
	}
}
