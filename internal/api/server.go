// Package api provides the HTTP API server and handlers for the FitBot
// wardrobe server.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/mdns"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/sse"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	services   *Services
	sseHandler *sse.Handler
	sseManager *sse.Manager
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger

	// authRateLimiter throttles credential endpoints by client IP.
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *store.Store, services *Services, sseManager *sse.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("FitBot API", mdns.ServerVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           store,
		services:        services,
		sseManager:      sseManager,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	if sseManager != nil {
		s.sseHandler = sse.NewHandler(sseManager, UserIDFromContext, logger)
	}

	s.registerHealthRoutes()
	s.registerInstanceRoutes()
	s.registerAuthRoutes()
	s.registerClosetRoutes()
	s.registerSearchRoutes()
	s.registerOutfitRoutes()
	s.registerWeatherRoutes()
	s.registerRawRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// registerRawRoutes wires the endpoints that bypass huma: streaming SSE
// and binary image responses don't fit the JSON envelope.
func (s *Server) registerRawRoutes() {
	if s.sseHandler != nil {
		s.router.Get("/api/v1/sync/stream", s.sseHandler.ServeHTTP)
	}

	s.router.Get("/api/v1/closet/items/{id}/image", s.handleItemImage)
	s.router.Get("/api/v1/closet/items/{id}/thumbnail", s.handleItemThumbnail)
}

// Stop releases server-held resources.
func (s *Server) Stop() {
	if s.authRateLimiter != nil {
		s.authRateLimiter.Stop()
	}
}
