package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/services"
)

// ImportHandler handles historical vote uploads.
type ImportHandler struct {
	service  services.ImportServiceProvider
	maxBytes int64
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(service services.ImportServiceProvider, maxBytes int64) *ImportHandler {
	return &ImportHandler{service: service, maxBytes: maxBytes}
}

// Upload imports the multipart "file" field.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Leave room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, services.ErrFileTooLarge.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	importLog, err := h.service.Import(r.Context(), header.Filename, file, actorID(r))
	if err != nil {
		writeServiceError(w, log.Error().Str("filename", header.Filename), err, "Failed to import votes")
		return
	}
	writeJSON(w, http.StatusCreated, importLog)
}

// History lists recent imports.
func (h *ImportHandler) History(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.History(queryInt(r, "limit", 20))
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to retrieve import history")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
