package services

import (
	"errors"
	"testing"
	"time"
)

func TestSessionService_LoginRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	if err := env.users.EnsureAdmin("admin", "rahasia123"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	if _, err := env.sessions.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := env.sessions.Login("nobody", "rahasia123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	pair, err := env.sessions.Login("admin", "rahasia123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.User.Username != "admin" {
		t.Fatalf("unexpected token pair %+v", pair)
	}

	rotated, err := env.sessions.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("expected a rotated refresh token")
	}

	// The old token was revoked by the rotation.
	if _, err := env.sessions.Refresh(pair.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("expected old refresh token to be rejected, got %v", err)
	}
	if _, err := env.sessions.Refresh(rotated.RefreshToken); err != nil {
		t.Errorf("expected rotated token to work, got %v", err)
	}
}

func TestSessionService_LogoutAndExpiry(t *testing.T) {
	env := newTestEnv(t)
	env.users.EnsureAdmin("admin", "rahasia123")

	pair, _ := env.sessions.Login("admin", "rahasia123")
	if err := env.sessions.Logout(pair.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := env.sessions.Refresh(pair.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}

	pair, _ = env.sessions.Login("admin", "rahasia123")
	env.sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := env.sessions.Refresh(pair.RefreshToken); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}

	purged, err := env.sessions.PurgeExpired()
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if purged != 2 {
		t.Errorf("expected 2 purged tokens, got %d", purged)
	}

	if _, err := env.sessions.Refresh(""); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("expected empty token to be rejected, got %v", err)
	}
}

func TestUserService_EnsureAdminIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	if err := env.users.EnsureAdmin("admin", "rahasia123"); err != nil {
		t.Fatalf("first EnsureAdmin failed: %v", err)
	}
	if err := env.users.EnsureAdmin("admin", "other-password"); err != nil {
		t.Fatalf("second EnsureAdmin failed: %v", err)
	}
	if _, err := env.users.AuthenticateUser("admin", "rahasia123"); err != nil {
		t.Errorf("expected original password to remain, got %v", err)
	}
	if _, err := env.users.CreateUser("admin", "", "", "x"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate username, got %v", err)
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	u, err := env.users.CreateUser("staf", "Staf Lapangan", "", "lama123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.Role != "staff" {
		t.Errorf("expected default role staff, got %s", u.Role)
	}
	if err := env.users.UpdatePassword(u.ID, "salah", "baru123"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
	if err := env.users.UpdatePassword(u.ID, "lama123", "baru123"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if _, err := env.users.AuthenticateUser("staf", "baru123"); err != nil {
		t.Errorf("expected new password to work, got %v", err)
	}
}
