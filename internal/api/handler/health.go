package handler

import (
	"net/http"

	"github.com/wordsiege/wordsiege-go/internal/api/response"
	"github.com/wordsiege/wordsiege-go/internal/engine"
	"github.com/wordsiege/wordsiege-go/internal/services/dictionary"
)

// HealthHandler reports server liveness and game registry stats
type HealthHandler struct {
	engine     *engine.Engine
	dictionary *dictionary.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(eng *engine.Engine, dict *dictionary.Service) *HealthHandler {
	return &HealthHandler{engine: eng, dictionary: dict}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()

	response.JSON(w, http.StatusOK, response.Health{
		Status:           "ok",
		DictionaryWords:  h.dictionary.WordCount(),
		ConnectedPlayers: stats.ConnectedPlayers,
		LiveMatches:      stats.LiveMatches,
		PlayerWaiting:    stats.PlayerWaiting,
	})
}
