package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wordsiege/wordsiege-go/internal/api/response"
	"github.com/wordsiege/wordsiege-go/internal/storage"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// MatchesHandler serves the finished-match archive
type MatchesHandler struct {
	store  storage.Storage
	logger *slog.Logger
}

// NewMatchesHandler creates a new matches handler
func NewMatchesHandler(store storage.Storage, logger *slog.Logger) *MatchesHandler {
	return &MatchesHandler{store: store, logger: logger}
}

// Recent handles GET /api/v1/matches/recent
func (h *MatchesHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRecentLimit)
	}

	summaries, err := h.store.ListMatchSummaries(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list match summaries", slog.String("error", err.Error()))
		response.WriteError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListFromModel(summaries))
}
