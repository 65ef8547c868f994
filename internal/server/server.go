// Package server exposes the lookup pipeline over HTTP: a small web UI, a
// JSON API, PDF export, and the recent query log.
package server

import (
	_ "embed"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uxguard/internal/compose"
	"uxguard/internal/config"
	"uxguard/internal/knowledge"
	"uxguard/internal/retrieval"
	"uxguard/internal/telemetry"
)

//go:embed index.html
var indexHTML string

// Server wires the pipeline behind a Fiber app.
type Server struct {
	app       *fiber.App
	cfg       *config.Config
	store     *knowledge.Store
	retriever *retrieval.Retriever
	composer  *compose.Composer
	telemetry *telemetry.Store
	logger    *zap.SugaredLogger
}

// New builds the app and registers all routes. telemetry may be nil when
// disabled; composer with no client serves curated fallbacks.
func New(cfg *config.Config, store *knowledge.Store, retriever *retrieval.Retriever, composer *compose.Composer, tel *telemetry.Store, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	s := &Server{
		app:       app,
		cfg:       cfg,
		store:     store,
		retriever: retriever,
		composer:  composer,
		telemetry: tel,
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Infof("serving on %s (knowledge entries: %d, composer: %v)", addr, s.store.Len(), s.composer.Enabled())
	return s.app.Listen(addr)
}

// Shutdown drains connections and stops the app.
func (s *Server) Shutdown() error {
	s.logger.Info("shutting down server")
	return s.app.Shutdown()
}
