// Package server wires the demo host: a gin router exposing the engine
// WebSocket endpoint, an embedded-engine search demo, Prometheus metrics,
// and a health probe.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/logging"
	"github.com/foliohq/folio/internal/monitoring"
	"github.com/foliohq/folio/internal/reader"
	"github.com/foliohq/folio/internal/state"
	"github.com/foliohq/folio/internal/ws"
)

// Server hosts one reader per connected engine.
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	presets map[string]state.Theme
}

// NewServer creates a server from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	s := &Server{
		logger:  logger,
		config:  cfg,
		metrics: monitoring.NewMetrics(nil),
	}

	if cfg.Reader.ThemeFile != "" {
		f, err := os.Open(cfg.Reader.ThemeFile)
		if err != nil {
			return nil, fmt.Errorf("theme file: %w", err)
		}
		defer f.Close()
		presets, err := state.LoadThemes(f)
		if err != nil {
			return nil, err
		}
		s.presets = presets
		logger.Info("theme presets loaded",
			zap.String("file", cfg.Reader.ThemeFile),
			zap.Int("themes", len(presets)))
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	if err := s.setupDemo(); err != nil {
		return nil, fmt.Errorf("demo engine: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() {
	handler := ws.NewHandler(s.newReader, s.logger)
	if s.presets != nil {
		handler.OnAttach = func(r *reader.Reader) {
			r.RegisterThemes(s.presets)
		}
	}

	s.router.GET("/ws", handler.HandleConnection)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) newReader() *reader.Reader {
	return reader.New(reader.Options{
		Logger:  s.logger,
		Metrics: s.metrics,
	})
}

// Run serves until the listener fails or Close is called.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("folio host listening", zap.String("addr", addr))

	s.http = &http.Server{Addr: addr, Handler: s.router}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
