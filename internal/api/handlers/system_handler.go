package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/models"
)

// StatusSource provides the latest host sample.
type StatusSource interface {
	Status() models.SystemStatus
}

// SystemHandler serves health and host status.
type SystemHandler struct {
	db      *sql.DB
	sampler StatusSource
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *sql.DB, sampler StatusSource) *SystemHandler {
	return &SystemHandler{db: db, sampler: sampler}
}

// Health reports whether the database answers.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status returns the last host sample.
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sampler.Status())
}
