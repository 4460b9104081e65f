package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordsiege/wordsiege-go/internal/api/handler"
	"github.com/wordsiege/wordsiege-go/internal/engine"
	"github.com/wordsiege/wordsiege-go/internal/middleware"
	"github.com/wordsiege/wordsiege-go/internal/services/dictionary"
	"github.com/wordsiege/wordsiege-go/internal/storage"
	"github.com/wordsiege/wordsiege-go/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Engine     *engine.Engine
	Dictionary *dictionary.Service
	Storage    storage.Storage
	Hub        *ws.Hub
}

// NewRouter creates a new router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))

	healthHandler := handler.NewHealthHandler(cfg.Engine, cfg.Dictionary)
	matchesHandler := handler.NewMatchesHandler(cfg.Storage, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/matches/recent", matchesHandler.Recent).Methods(http.MethodGet)

	// The game connection itself. No logging middleware: a single log line
	// at close time would just report the connection's lifetime.
	r.HandleFunc("/ws", cfg.Hub.HandleWS).Methods(http.MethodGet)

	return r
}
