package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/services"
)

// VoteHandler serves imported vote results.
type VoteHandler struct {
	service services.VoteServiceProvider
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(service services.VoteServiceProvider) *VoteHandler {
	return &VoteHandler{service: service}
}

// GetAll lists vote rows matching search, dapil and kecamatan.
func (h *VoteHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	votes, err := h.service.List(services.VoteFilter{
		Search:    q.Get("search"),
		Dapil:     q.Get("dapil"),
		Kecamatan: q.Get("kecamatan"),
	})
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to retrieve votes")
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// Summary returns vote totals.
func (h *VoteHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary()
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to summarize votes")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
