package handler

import (
	"net/http"

	"github.com/kaganatalay/ciz.im/internal/api/response"
	"github.com/kaganatalay/ciz.im/internal/services/words"
)

// HealthHandler reports liveness and word bank readiness
type HealthHandler struct {
	words *words.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(words *words.Service) *HealthHandler {
	return &HealthHandler{words: words}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !h.words.IsLoaded() {
		status = "degraded"
	}

	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:    status,
		WordCount: h.words.WordCount(),
	})
}
