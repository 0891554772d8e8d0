// Package server provides the pure JSON API server
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/infrastructure/config"
	"github.com/hungryjack/backend/internal/infrastructure/http/handlers"
	"github.com/hungryjack/backend/internal/infrastructure/http/middleware"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	handlers *handlers.Handlers
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, h *handlers.Handlers, logger *zap.Logger) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		handlers: h,
	}

	s.router = s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))

	r.Get("/health", s.handlers.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/dietary-profiles", func(r chi.Router) {
			r.Post("/", s.handlers.CreateProfile)
			r.Get("/", s.handlers.ListProfiles)
			r.Get("/{id}", s.handlers.GetProfile)
		})

		r.Route("/meal-plans", func(r chi.Router) {
			r.Post("/generate", s.handlers.GeneratePlan)
			r.Get("/", s.handlers.ListMealPlans)
			r.Get("/{id}", s.handlers.GetMealPlan)
			r.Get("/{id}/ingredients", s.handlers.GetMealPlanIngredients)
		})

		r.Route("/shopping-lists", func(r chi.Router) {
			r.Post("/generate", s.handlers.BuildShoppingList)
			r.Get("/{id}", s.handlers.GetShoppingList)
			r.Put("/{id}/items/{item_id}", s.handlers.MarkItemPurchased)
		})

		r.Route("/nutrition", func(r chi.Router) {
			r.Post("/calculate", s.handlers.CalculateNutrition)
			r.Get("/{food_name}", s.handlers.EstimateFood)
		})
	})

	return r
}

// Router exposes the handler tree, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
