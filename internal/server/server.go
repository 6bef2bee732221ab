package server

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tdnguyen2412/media-scribe/internal/config"
	"github.com/tdnguyen2412/media-scribe/internal/ledger"
	"github.com/tdnguyen2412/media-scribe/internal/logger"
	"github.com/tdnguyen2412/media-scribe/internal/monitor"
)

//go:embed panel.html
var panelHTML []byte

// Server exposes the control panel and its JSON API over localhost.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	monitor monitor.Monitor
	ledger  ledger.Ledger
	hub     *Hub
	logger  logger.Logger
}

type startRequest struct {
	Directory string `json:"directory"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// New wires the echo instance with all routes.
func New(cfg *config.Config, mon monitor.Monitor, led ledger.Ledger, hub *Hub, log logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:    e,
		cfg:     cfg,
		monitor: mon,
		ledger:  led,
		hub:     hub,
		logger:  log,
	}

	e.GET("/", s.panel)
	e.GET("/health", s.health)

	v1 := e.Group("/api/v1")
	v1.POST("/monitor/start", s.startMonitor)
	v1.POST("/monitor/stop", s.stopMonitor)
	v1.GET("/monitor/status", s.status)
	v1.GET("/ledger", s.ledgerPaths)

	e.GET("/ws", func(c echo.Context) error {
		return handleWebSocket(hub, c)
	})

	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	return s.echo.Start(addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) panel(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, panelHTML)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "media-scribe",
	})
}

func (s *Server) startMonitor(c echo.Context) error {
	var req startRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Directory == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "missing_directory",
			Message: "A directory to monitor is required",
		})
	}

	if err := s.monitor.Start(c.Request().Context(), req.Directory); err != nil {
		return c.JSON(http.StatusConflict, errorResponse{
			Error:   "start_failed",
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, s.monitor.Status())
}

func (s *Server) stopMonitor(c echo.Context) error {
	if err := s.monitor.Stop(); err != nil {
		return c.JSON(http.StatusConflict, errorResponse{
			Error:   "stop_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, s.monitor.Status())
}

func (s *Server) status(c echo.Context) error {
	return c.JSON(http.StatusOK, s.monitor.Status())
}

func (s *Server) ledgerPaths(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": s.ledger.Len(),
		"paths": s.ledger.Paths(),
	})
}
