package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/services"
)

// ActivityLogHandler handles HTTP requests related to the activity log.
type ActivityLogHandler struct {
	service services.ActivityLogServiceProvider
}

// NewActivityLogHandler creates a new ActivityLogHandler.
func NewActivityLogHandler(service services.ActivityLogServiceProvider) *ActivityLogHandler {
	return &ActivityLogHandler{service: service}
}

// GetRecent handles the request to get recent activity.
func (h *ActivityLogHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Recent(queryInt(r, "limit", 20))
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to retrieve activity log")
		return
	}
	if entries == nil {
		entries = []models.ActivityLog{}
	}
	writeJSON(w, http.StatusOK, entries)
}
