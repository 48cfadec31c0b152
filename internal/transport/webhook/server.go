// Package webhook exposes the HTTP endpoint the messaging gateway calls for
// every inbound chat message.
package webhook

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/assistant"
)

// MessageHandler processes one inbound message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg assistant.Message) error
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config controls the webhook server.
type Config struct {
	Secret             string
	RateLimitPerSecond int
	RateLimitBurst     int
	AllowedOrigins     []string
	MetricsEnabled     bool
}

// Server is the echo application serving the webhook.
type Server struct {
	echo   *echo.Echo
	logger *slog.Logger
}

// NewServer builds the routes. pinger may be nil.
func NewServer(cfg Config, handler MessageHandler, pinger Pinger, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	}

	h := &messageHandler{
		handler: handler,
		limiter: newSenderLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		logger:  logger,
	}
	e.POST("/webhook/messages", h.receive, RequireGatewayToken(cfg.Secret))
	e.GET("/healthz", healthCheck(pinger))
	if cfg.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	return &Server{echo: e, logger: logger}
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("webhook server listening", slog.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(pinger Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if pinger != nil {
			if err := pinger.Ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  "database unreachable",
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}
}
