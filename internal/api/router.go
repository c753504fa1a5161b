package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kaganatalay/ciz.im/internal/api/handler"
	"github.com/kaganatalay/ciz.im/internal/api/middleware"
	"github.com/kaganatalay/ciz.im/internal/gateway"
	"github.com/kaganatalay/ciz.im/internal/services/registry"
	"github.com/kaganatalay/ciz.im/internal/services/words"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	RegistryController registry.ControllerInterface
	WordsService       *words.Service
	Gateway            *gateway.Gateway
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	roomHandler := handler.NewRoomHandler(cfg.RegistryController, cfg.Gateway)
	healthHandler := handler.NewHealthHandler(cfg.WordsService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Room routes
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/ws", roomHandler.Connect).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	return r
}
