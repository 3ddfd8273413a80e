package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/auth"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/sabadesa/sabadesa-be/internal/validation"
)

// AuthHandler handles login, token refresh and the current user.
type AuthHandler struct {
	sessions     services.SessionServiceProvider
	users        services.UserServiceProvider
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie sets the Secure
// flag on the token cookie.
func NewAuthHandler(sessions services.SessionServiceProvider, users services.UserServiceProvider, secureCookie bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users, secureCookie: secureCookie}
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, pair services.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(time.Duration(pair.ExpiresIn) * time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload validation.LoginInput
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := validation.Login(payload); err != nil {
		writeServiceError(w, log.Error(), err, "Failed to log in")
		return
	}

	pair, err := h.sessions.Login(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		writeServiceError(w, log.Error(), err, "Failed to log in")
		return
	}

	h.setTokenCookie(w, pair)
	writeJSON(w, http.StatusOK, pair)
}

// Refresh rotates a refresh token into a new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	pair, err := h.sessions.Refresh(payload.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected refresh token")
		writeServiceError(w, log.Error(), err, "Failed to refresh session")
		return
	}

	h.setTokenCookie(w, pair)
	writeJSON(w, http.StatusOK, pair)
}

// Logout revokes the presented refresh token and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.RefreshToken != "" {
		if err := h.sessions.Logout(payload.RefreshToken); err != nil {
			writeServiceError(w, log.Error(), err, "Failed to log out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		writeServiceError(w, log.Error().Str("user_id", claims.UserID), err, "Failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword changes the password of the authenticated user.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}
	var payload struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := validation.Password("new_password", payload.NewPassword); err != nil {
		writeServiceError(w, log.Error(), err, "Failed to change password")
		return
	}

	if err := h.users.UpdatePassword(claims.UserID, payload.CurrentPassword, payload.NewPassword); err != nil {
		writeServiceError(w, log.Error().Str("user_id", claims.UserID), err, "Failed to change password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
