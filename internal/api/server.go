// Package api assembles the storefront's HTTP surface.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/manacart/manacart/internal/api/handlers"
	"github.com/manacart/manacart/internal/checkout"
	"github.com/manacart/manacart/internal/storage"
	"github.com/manacart/manacart/internal/storage/repository"
)

// Config holds configuration for the API server.
type Config struct {
	Port           int
	AllowedOrigins []string
	AdminKeyHash   string
	RequestTimeout time.Duration
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000"},
		RequestTimeout: 30 * time.Second,
	}
}

// Services holds the collaborators the handlers need.
type Services struct {
	Decks     repository.DeckRepository
	Discounts repository.DiscountRepository
	Cards     handlers.CardLookup
	Checkout  *checkout.Service

	// Backups is optional; without it the admin backup endpoint reports
	// 503.
	Backups *storage.BackupManager
}

// Server represents the REST API server.
type Server struct {
	router       *chi.Mux
	httpServer   *http.Server
	port         int
	adminKeyHash string
	logger       *slog.Logger
	services     *Services
}

// NewServer creates a new API server.
func NewServer(cfg *Config, services *Services, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:       chi.NewRouter(),
		port:         cfg.Port,
		adminKeyHash: cfg.AdminKeyHash,
		logger:       logger,
		services:     services,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()
	return s
}

// Handler returns the server's root handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg *Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.router.Use(middleware.Timeout(timeout))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-User-ID", "X-Admin-Key"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(jsonContentType)
}

// Start starts the API server in a goroutine.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "port", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server error", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Port returns the port the server is configured to listen on.
func (s *Server) Port() int {
	return s.port
}
