// Package server provides the HTTP API for BookWise.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/action"
	"github.com/bookwise/bookwise/internal/assistant"
	"github.com/bookwise/bookwise/internal/cart"
	"github.com/bookwise/bookwise/internal/catalog"
	"github.com/bookwise/bookwise/internal/config"
	"github.com/bookwise/bookwise/internal/seed"
)

// Server is the HTTP server for the BookWise API.
type Server struct {
	assistant *assistant.Assistant
	catalog   *catalog.Catalog
	cart      *cart.Cart
	seeder    *seed.Seeder
	grammar   action.Grammar
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. seeder may be nil
// when seeding is not configured.
func NewServer(
	asst *assistant.Assistant,
	cat *catalog.Catalog,
	crt *cart.Cart,
	seeder *seed.Seeder,
	grammar action.Grammar,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		assistant: asst,
		catalog:   cat,
		cart:      crt,
		seeder:    seeder,
		grammar:   grammar,
		config:    cfg,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/chat", s.handleChat)
	r.Get("/api/v1/catalog", s.handleCatalogList)
	r.Post("/api/v1/catalog/search", s.handleCatalogSearch)
	r.Post("/api/v1/catalog/books", s.handleCatalogIndex)
	r.Post("/api/v1/catalog/recommend", s.handleCatalogRecommend)
	r.Post("/api/v1/catalog/seed", s.handleCatalogSeed)
	r.Get("/api/v1/cart", s.handleCartList)
	r.Post("/api/v1/cart", s.handleCartAdd)
	r.Delete("/api/v1/cart", s.handleCartRemove)
	r.Post("/api/v1/cart/clear", s.handleCartClear)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
