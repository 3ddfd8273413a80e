package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/prioritization"
	"github.com/sabadesa/sabadesa-be/internal/services"
)

// AnalyticsHandler serves the dashboard, heatmap and prioritization views.
type AnalyticsHandler struct {
	analytics services.AnalyticsServiceProvider
	priority  services.PrioritizationServiceProvider
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics services.AnalyticsServiceProvider, priority services.PrioritizationServiceProvider) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, priority: priority}
}

// Heatmap returns per-kecamatan intensity points.
func (h *AnalyticsHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	points, err := h.analytics.Heatmap(r.Context())
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to build heatmap")
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// Dashboard returns the KPI totals and chart series.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// Suggest returns the prioritization snapshot, optionally filtered by status.
func (h *AnalyticsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	status, err := prioritization.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	suggestions, err := h.priority.Suggest(r.Context(), status)
	if err != nil {
		writeServiceError(w, log.Error().Str("status", string(status)), err, "Failed to compute suggestions")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// RefreshSuggestions recomputes the snapshot immediately.
func (h *AnalyticsHandler) RefreshSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.priority.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to refresh suggestions")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}
