// Package server provides the HTTP API for running simulations.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/gnzgo/MartianRobots/internal/config"
)

// Server provides HTTP endpoints for the simulator.
type Server struct {
	echo   *echo.Echo
	config config.ServerConfig
}

// NewServer creates a new HTTP server. A nil cfg uses the built-in defaults.
func NewServer(cfg *config.ServerConfig) (*Server, error) {
	if cfg == nil {
		cfg = &config.Default().Server
	}
	if cfg.BodyLimit == "" {
		return nil, errors.New("body limit cannot be empty")
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit cannot be negative, got %g", cfg.RateLimit)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(instrument())

	s := &Server{echo: e, config: *cfg}
	s.registerRoutes()
	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limits := []echo.MiddlewareFunc{middleware.BodyLimit(s.config.BodyLimit)}
	if s.config.RateLimit > 0 {
		limits = append(limits, middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: newClientLimiters(s.config.RateLimit, s.config.Burst),
		}))
	}

	v1 := s.echo.Group("/api/v1", limits...)
	v1.POST("/simulations", s.handleSimulate)
	v1.POST("/simulations/report", s.handleReport)

	// Request and response bodies of the first public release.
	s.echo.POST("/MartianSimulation", s.handleLegacySimulate, limits...)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logrus.Infof("starting http server on %s", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
