package handler

import (
	"context"
	"net/http"
	"time"

	"trivia-api/internal/middleware"
)

// Pinger reports whether the backing store is reachable. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *HealthHandler) healthz(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return &middleware.AppError{Error: err, Message: "database unavailable", Code: http.StatusServiceUnavailable}
	}
	return writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
