package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/auth"
	"github.com/sabadesa/sabadesa-be/internal/export"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/sabadesa/sabadesa-be/internal/validation"
)

// Error codes let clients branch on a conflict without parsing messages.
const (
	CodeDuplicateNIK   = "duplicate_nik"
	CodeAlreadyInEvent = "already_in_event"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeServiceError maps a service error to a status code and JSON body.
// Unexpected errors are logged on ev and reported as 500.
func writeServiceError(w http.ResponseWriter, ev *zerolog.Event, err error, msg string) {
	var verrs validation.Errors
	var dup *services.DuplicateNIKError
	switch {
	case errors.As(err, &verrs):
		ev.Discard()
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": verrs})
	case errors.As(err, &dup):
		ev.Discard()
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":      "NIK sudah terdaftar di kegiatan lain",
			"code":       CodeDuplicateNIK,
			"nik":        dup.NIK,
			"activities": dup.Activities,
		})
	case errors.Is(err, services.ErrAlreadyInEvent):
		ev.Discard()
		writeJSON(w, http.StatusConflict, map[string]any{"error": "NIK sudah terdaftar di kegiatan ini", "code": CodeAlreadyInEvent})
	case errors.Is(err, services.ErrNotFound):
		ev.Discard()
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, export.ErrNoRows):
		ev.Discard()
		writeError(w, http.StatusNotFound, export.ErrNoRows.Error())
	case errors.Is(err, services.ErrConflict):
		ev.Discard()
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrRefreshTokenInvalid):
		ev.Discard()
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrWrongPassword):
		ev.Discard()
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrUnsupportedFile):
		ev.Discard()
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrFileTooLarge):
		ev.Discard()
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		ev.Err(err).Msg(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// actorID returns the authenticated user id, if any.
func actorID(r *http.Request) *string {
	if claims, ok := auth.ClaimsFrom(r.Context()); ok && claims.UserID != "" {
		id := claims.UserID
		return &id
	}
	return nil
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
