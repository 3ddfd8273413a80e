package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/validation"
)

type recorder struct {
	mu        sync.Mutex
	notices   []string
	redirects int
}

func (r *recorder) Notify(key, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, key)
}

func (r *recorder) ToLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects++
}

func (r *recorder) snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...), r.redirects
}

// newTestClient runs scheduled redirects synchronously and records the delay.
func newTestClient(t *testing.T, url string, sess Session) (*Client, *MemoryStore, *recorder, *[]time.Duration) {
	t.Helper()
	store := NewMemoryStore(sess)
	rec := &recorder{}
	c := New(url, store, WithNotifier(rec), WithNavigator(rec))
	var delays []time.Duration
	c.afterFunc = func(d time.Duration, f func()) {
		delays = append(delays, d)
		f()
	}
	return c, store, rec, &delays
}

type fakeAPI struct {
	refreshCalls  atomic.Int32
	protectedHits atomic.Int32
	validToken    string
	refreshStatus int
	refreshDelay  time.Duration
	abortRefresh  bool
	rotate        bool
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		if f.abortRefresh {
			panic(http.ErrAbortHandler)
		}
		time.Sleep(f.refreshDelay)
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.RefreshToken != "refresh-1" {
			t.Errorf("unexpected refresh token %q", body.RefreshToken)
		}
		if r.Header.Get(BypassHeader) != "true" {
			t.Error("refresh request missing bypass header")
		}
		if f.refreshStatus != 0 && f.refreshStatus != http.StatusOK {
			w.WriteHeader(f.refreshStatus)
			w.Write([]byte(`{"error":"invalid refresh token"}`))
			return
		}
		resp := map[string]string{"access_token": "access-2"}
		if f.rotate {
			resp["refresh_token"] = "refresh-2"
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		f.protectedHits.Add(1)
		if r.Header.Get(BypassHeader) != "true" {
			t.Error("request missing bypass header")
		}
		if f.validToken == "" || r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"token expired"}`))
			return
		}
		w.Write([]byte(`{"ok":true}`))
	})
	return mux
}

func TestFetch_PassesThroughNon401(t *testing.T) {
	api := &fakeAPI{validToken: "access-1"}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c, _, rec, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	resp, err := c.Fetch(context.Background(), "/protected", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if api.refreshCalls.Load() != 0 {
		t.Error("refresh should not be called on success")
	}
	if notices, _ := rec.snapshot(); len(notices) != 0 {
		t.Errorf("unexpected notices %v", notices)
	}
}

func TestFetch_RefreshesAndRetriesOnce(t *testing.T) {
	api := &fakeAPI{validToken: "access-2", rotate: true}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c, store, rec, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	resp, err := c.Fetch(context.Background(), "/protected", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected retried request to succeed, got %d", resp.StatusCode)
	}
	if got := api.protectedHits.Load(); got != 2 {
		t.Errorf("expected original + one retry, got %d requests", got)
	}
	sess, _ := store.Load()
	if sess != (Session{AccessToken: "access-2", RefreshToken: "refresh-2"}) {
		t.Errorf("unexpected stored session %+v", sess)
	}
	if notices, redirects := rec.snapshot(); len(notices) != 0 || redirects != 0 {
		t.Errorf("silent refresh should not notify, got %v / %d", notices, redirects)
	}
}

func TestFetch_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	api := &fakeAPI{validToken: "access-2"}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c, store, _, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	resp, err := c.Fetch(context.Background(), "/protected", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	resp.Body.Close()

	sess, _ := store.Load()
	if sess.RefreshToken != "refresh-1" || sess.AccessToken != "access-2" {
		t.Errorf("unexpected stored session %+v", sess)
	}
}

func TestFetch_SecondUnauthorizedIsReturned(t *testing.T) {
	api := &fakeAPI{} // no token is ever accepted
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c, _, _, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	resp, err := c.Fetch(context.Background(), "/protected", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the retry's 401, got %d", resp.StatusCode)
	}
	if got := api.protectedHits.Load(); got != 2 {
		t.Errorf("expected exactly one retry, got %d requests", got)
	}
	if got := api.refreshCalls.Load(); got != 1 {
		t.Errorf("expected one refresh, got %d", got)
	}
}

func TestFetch_NoRefreshTokenRedirects(t *testing.T) {
	api := &fakeAPI{validToken: "other"}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c, _, rec, delays := newTestClient(t, srv.URL, Session{AccessToken: "access-1"})
	resp, err := c.Fetch(context.Background(), "/protected", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected original 401, got %d", resp.StatusCode)
	}
	if api.refreshCalls.Load() != 0 {
		t.Error("refresh endpoint must not be called without a refresh token")
	}
	notices, redirects := rec.snapshot()
	if len(notices) != 1 || notices[0] != NoticeSessionExpired {
		t.Errorf("unexpected notices %v", notices)
	}
	if redirects != 1 || len(*delays) != 1 || (*delays)[0] != RedirectDelay {
		t.Errorf("expected one redirect after %s, got %d %v", RedirectDelay, redirects, *delays)
	}
}

func TestFetch_RefreshFailureClearsSession(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeAPI
	}{
		{"rejected", &fakeAPI{validToken: "access-2", refreshStatus: http.StatusUnauthorized}},
		{"server error", &fakeAPI{validToken: "access-2", refreshStatus: http.StatusInternalServerError}},
		{"network error", &fakeAPI{validToken: "access-2", abortRefresh: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.api.handler(t))
			defer srv.Close()

			c, store, rec, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
			resp, err := c.Fetch(context.Background(), "/protected", nil)
			if err != nil {
				t.Fatalf("auth failure must not be an error, got %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected original 401, got %d", resp.StatusCode)
			}
			if got := tt.api.protectedHits.Load(); got != 1 {
				t.Errorf("no retry expected after a failed refresh, got %d requests", got)
			}
			if sess, _ := store.Load(); !sess.Empty() {
				t.Errorf("expected cleared session, got %+v", sess)
			}
			notices, redirects := rec.snapshot()
			if len(notices) != 1 || notices[0] != NoticeRefreshFailed || redirects != 1 {
				t.Errorf("expected refresh-failed notice and redirect, got %v / %d", notices, redirects)
			}
		})
	}
}

func TestFetch_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	api := &fakeAPI{validToken: "access-2", rotate: true, refreshDelay: 50 * time.Millisecond}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c, _, _, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})

	const n = 8
	var wg sync.WaitGroup
	statuses := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := c.Fetch(context.Background(), "/protected", nil)
			if err != nil {
				t.Errorf("fetch %d: %v", i, err)
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	if got := api.refreshCalls.Load(); got != 1 {
		t.Errorf("expected a single refresh call, got %d", got)
	}
	for i, s := range statuses {
		if s != http.StatusOK {
			t.Errorf("request %d: status %d", i, s)
		}
	}
}

func TestTransportErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _, _, _ := newTestClient(t, url, Session{AccessToken: "access-1"})
	if _, err := c.Fetch(context.Background(), "/protected", nil); err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestAddAttendee_DuplicateNIK(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events/ev-1/attendees", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("force") == "true" {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Attendee{ID: "at-1", EventID: "ev-1", NIK: "3204123456780001"})
			return
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error": "NIK sudah terdaftar di kegiatan lain",
			"code":  "duplicate_nik",
			"nik":   "3204123456780001",
			"activities": []models.ParticipationRecord{
				{EventID: "ev-0", ActivityName: "Reses Masa Sidang I", Date: "2025-10-01", Location: "Soreang, SOREANG"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _, _, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	in := validation.AttendeeInput{Name: "Siti Aminah", NIK: "3204123456780001"}

	_, err := c.AddAttendee(context.Background(), "ev-1", in, false)
	var dup *DuplicateNIKError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateNIKError, got %v", err)
	}
	if len(dup.Activities) != 1 || dup.Activities[0].ActivityName != "Reses Masa Sidang I" {
		t.Errorf("unexpected activities %+v", dup.Activities)
	}

	at, err := c.AddAttendee(context.Background(), "ev-1", in, true)
	if err != nil {
		t.Fatalf("forced add: %v", err)
	}
	if at.ID != "at-1" {
		t.Errorf("unexpected attendee %+v", at)
	}

	if _, err := c.AddAttendee(context.Background(), "ev-1", validation.AttendeeInput{Name: "X"}, false); err == nil {
		t.Error("expected local validation error")
	}
}

func TestLogin_StoresSessionAndBadCredentialsDoNotRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in validation.LoginInput
		json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "benar" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"access_token":"a","refresh_token":"r","user":{"id":"u1","username":"admin"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store, rec, _ := newTestClient(t, srv.URL, Session{})

	_, err := c.Login(context.Background(), "admin", "salah")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if notices, redirects := rec.snapshot(); len(notices) != 0 || redirects != 0 {
		t.Errorf("bad credentials should not redirect, got %v / %d", notices, redirects)
	}

	user, err := c.Login(context.Background(), "admin", "benar")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("unexpected user %+v", user)
	}
	if sess, _ := store.Load(); sess != (Session{AccessToken: "a", RefreshToken: "r"}) {
		t.Errorf("unexpected session %+v", sess)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	sess, err := store.Load()
	if err != nil || !sess.Empty() {
		t.Fatalf("expected empty session for missing file, got %+v %v", sess, err)
	}

	want := Session{AccessToken: "a", RefreshToken: "r"}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
	if got, _ := store.Load(); got != want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("second clear should be a no-op, got %v", err)
	}
}

func TestLogout_RevokesStoredTokenWithoutRefreshing(t *testing.T) {
	var refreshCalls atomic.Int32
	var revoked string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"access_token": "access-2", "refresh_token": "refresh-2"})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		revoked = body.RefreshToken
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store, rec, _ := newTestClient(t, srv.URL, Session{AccessToken: "expired", RefreshToken: "refresh-1"})
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if revoked != "refresh-1" {
		t.Errorf("expected refresh-1 to be revoked, got %q", revoked)
	}
	if n := refreshCalls.Load(); n != 0 {
		t.Errorf("expected no refresh during logout, got %d", n)
	}
	if sess, _ := store.Load(); !sess.Empty() {
		t.Errorf("expected session to be cleared, got %+v", sess)
	}
	if store.Saves() != 0 {
		t.Errorf("expected no session saves, got %d", store.Saves())
	}
	if notices, redirects := rec.snapshot(); len(notices) != 0 || redirects != 0 {
		t.Errorf("expected no notices or redirects, got %v / %d", notices, redirects)
	}
}

func TestLogout_ClearsSessionWhenServerFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to log out"}`))
	}))
	defer srv.Close()

	c, store, _, _ := newTestClient(t, srv.URL, Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	err := c.Logout(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
	if sess, _ := store.Load(); !sess.Empty() {
		t.Errorf("expected session to be cleared, got %+v", sess)
	}
}
