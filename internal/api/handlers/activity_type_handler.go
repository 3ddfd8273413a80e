package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/sabadesa/sabadesa-be/internal/validation"
)

// ActivityTypeHandler handles HTTP requests for activity type master data.
type ActivityTypeHandler struct {
	service services.ActivityTypeServiceProvider
}

// NewActivityTypeHandler creates a new ActivityTypeHandler.
func NewActivityTypeHandler(service services.ActivityTypeServiceProvider) *ActivityTypeHandler {
	return &ActivityTypeHandler{service: service}
}

// GetAll lists every activity type.
func (h *ActivityTypeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.List()
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to retrieve activity types")
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// Create adds an activity type.
func (h *ActivityTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload validation.ActivityTypeInput
	if !decodeJSON(w, r, &payload) {
		return
	}
	at, err := h.service.Create(payload, actorID(r))
	if err != nil {
		writeServiceError(w, log.Error().Str("name", payload.Name), err, "Failed to create activity type")
		return
	}
	writeJSON(w, http.StatusCreated, at)
}

// Delete removes an activity type.
func (h *ActivityTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id, actorID(r)); err != nil {
		writeServiceError(w, log.Error().Str("activity_type_id", id), err, "Failed to delete activity type")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
