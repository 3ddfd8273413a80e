package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sabadesa/sabadesa-be/internal/auth"
	"github.com/sabadesa/sabadesa-be/internal/models"
)

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"` // seconds
	User         models.User `json:"user"`
}

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	Login(username, password string) (TokenPair, error)
	Refresh(refreshToken string) (TokenPair, error)
	Logout(refreshToken string) error
	PurgeExpired() (int64, error)
}

// SessionService issues and rotates access and refresh tokens.
type SessionService struct {
	db     *sql.DB
	users  UserServiceProvider
	issuer *auth.TokenIssuer
	logs   ActivityLogServiceProvider
	now    func() time.Time
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB, users UserServiceProvider, issuer *auth.TokenIssuer, logs ActivityLogServiceProvider) *SessionService {
	return &SessionService{db: db, users: users, issuer: issuer, logs: logs, now: time.Now}
}

// Login authenticates a user and issues a fresh token pair.
func (s *SessionService) Login(username, password string) (TokenPair, error) {
	user, err := s.users.AuthenticateUser(username, password)
	if err != nil {
		return TokenPair{}, err
	}
	pair, err := s.issue(s.db, user)
	if err != nil {
		return TokenPair{}, err
	}
	record(s.logs, "auth.login", LevelInfo, fmt.Sprintf("User %s logged in", user.Username), &user.ID)
	return pair, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked, so each refresh token works once.
func (s *SessionService) Refresh(refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrRefreshTokenInvalid
	}
	hash := auth.HashRefreshToken(refreshToken)

	tx, err := s.db.Begin()
	if err != nil {
		return TokenPair{}, err
	}
	defer tx.Rollback()

	var stored models.RefreshToken
	err = tx.QueryRow("SELECT id, user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash = ?", hash).
		Scan(&stored.ID, &stored.UserID, &stored.ExpiresAt, &stored.RevokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TokenPair{}, ErrRefreshTokenInvalid
		}
		return TokenPair{}, err
	}
	now := s.now().UTC()
	if stored.RevokedAt != nil || !now.Before(stored.ExpiresAt) {
		return TokenPair{}, ErrRefreshTokenInvalid
	}

	res, err := tx.Exec("UPDATE refresh_tokens SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL", now, stored.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return TokenPair{}, ErrRefreshTokenInvalid
	}

	var user models.User
	err = tx.QueryRow("SELECT id, username, name, role, created_at FROM users WHERE id = ?", stored.UserID).
		Scan(&user.ID, &user.Username, &user.Name, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TokenPair{}, ErrRefreshTokenInvalid
		}
		return TokenPair{}, err
	}

	pair, err := s.issue(tx, user)
	if err != nil {
		return TokenPair{}, err
	}
	if err := tx.Commit(); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *SessionService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	_, err := s.db.Exec("UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL",
		s.now().UTC(), auth.HashRefreshToken(refreshToken))
	return err
}

// PurgeExpired deletes refresh tokens that expired or were revoked more
// than a day ago.
func (s *SessionService) PurgeExpired() (int64, error) {
	now := s.now().UTC()
	res, err := s.db.Exec("DELETE FROM refresh_tokens WHERE expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)",
		now, now.Add(-24*time.Hour))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *SessionService) issue(db execer, user models.User) (TokenPair, error) {
	access, err := s.issuer.IssueAccess(user)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.issuer.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}
	_, err = db.Exec("INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at) VALUES (?, ?, ?, ?, ?)",
		refresh.ID, user.ID, refresh.Hash, refresh.ExpiresAt.UTC(), s.now().UTC())
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.issuer.AccessTTL().Seconds()),
		User:         user,
	}, nil
}
