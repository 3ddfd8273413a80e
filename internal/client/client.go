// Package client is an HTTP client for the sabadesa API. Fetch attaches the
// stored access token and, on a 401, refreshes the session once and retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/i18n"
	"golang.org/x/sync/singleflight"
)

// BypassHeader is sent on every request so tunnelling proxies skip their
// interstitial page.
const BypassHeader = "ngrok-skip-browser-warning"

// RedirectDelay is how long a notice stays visible before the login redirect.
const RedirectDelay = 2 * time.Second

// Notice message keys.
const (
	NoticeSessionExpired = "session_expired"
	NoticeRefreshFailed  = "session_refresh_failed"
)

// Notifier shows a user-facing notice.
type Notifier interface {
	Notify(key, message string)
}

// Navigator sends the user to the login screen.
type Navigator interface {
	ToLogin()
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

type nopNavigator struct{}

func (nopNavigator) ToLogin() {}

var errRefreshFailed = errors.New("refresh failed")

// Client talks to the API on behalf of one session.
type Client struct {
	baseURL       string
	http          *http.Client
	store         SessionStore
	notifier      Notifier
	navigator     Navigator
	tr            *i18n.Translator
	locale        string
	redirectDelay time.Duration
	afterFunc     func(time.Duration, func())
	refreshes     singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithNotifier sets the notice sink.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithNavigator sets the login redirect.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithLocale sets the language of notices.
func WithLocale(locale string) Option {
	return func(c *Client) { c.locale = locale }
}

// WithRedirectDelay overrides RedirectDelay.
func WithRedirectDelay(d time.Duration) Option {
	return func(c *Client) { c.redirectDelay = d }
}

// New creates a Client for the API rooted at baseURL, e.g. http://host/api.
func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          http.DefaultClient,
		store:         store,
		notifier:      nopNotifier{},
		navigator:     nopNavigator{},
		tr:            i18n.Default(),
		locale:        "id",
		redirectDelay: RedirectDelay,
		afterFunc:     func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// RequestOptions describes the request Fetch sends. Body is a byte slice so
// the request can be replayed after a refresh.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   []byte
}

// Fetch sends a request with the stored bearer token. On a 401 it refreshes
// the session and retries once, returning the retry's response whatever its
// status. When no refresh is possible the original 401 is returned, the
// session is cleared on a failed refresh, and a login redirect is scheduled.
// Only transport failures are returned as errors.
func (c *Client) Fetch(ctx context.Context, target string, opts *RequestOptions) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	sess, err := c.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load session")
	}

	resp, err := c.send(ctx, target, opts, sess.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	if sess.RefreshToken == "" {
		c.expire(NoticeSessionExpired)
		return resp, nil
	}

	next, err := c.refresh(ctx, sess)
	if err != nil {
		log.Warn().Err(err).Msg("Session refresh failed")
		if err := c.store.Clear(); err != nil {
			log.Error().Err(err).Msg("Failed to clear session")
		}
		c.expire(NoticeRefreshFailed)
		return resp, nil
	}

	drain(resp)
	return c.send(ctx, target, opts, next.AccessToken)
}

func (c *Client) send(ctx context.Context, target string, opts *RequestOptions, token string) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(target), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(BypassHeader, "true")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

// refresh exchanges the session's refresh token for a new session.
// Concurrent callers holding the same stale token share one request.
func (c *Client) refresh(ctx context.Context, stale Session) (Session, error) {
	v, err, _ := c.refreshes.Do(stale.RefreshToken, func() (any, error) {
		// Another caller may already have rotated the token.
		if current, err := c.store.Load(); err == nil &&
			current.AccessToken != "" && current.RefreshToken != stale.RefreshToken {
			return current, nil
		}

		payload, _ := json.Marshal(map[string]string{"refresh_token": stale.RefreshToken})
		resp, err := c.send(ctx, "/auth/refresh", &RequestOptions{
			Method: http.MethodPost,
			Header: http.Header{"Content-Type": {"application/json"}},
			Body:   payload,
		}, "")
		if err != nil {
			return nil, err
		}
		defer drain(resp)
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", errRefreshFailed, resp.StatusCode)
		}

		var tokens Session
		if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
			return nil, fmt.Errorf("%w: %v", errRefreshFailed, err)
		}
		if tokens.AccessToken == "" {
			return nil, fmt.Errorf("%w: no access token in response", errRefreshFailed)
		}
		next := Session{AccessToken: tokens.AccessToken, RefreshToken: stale.RefreshToken}
		if tokens.RefreshToken != "" {
			next.RefreshToken = tokens.RefreshToken
		}
		if err := c.store.Save(next); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		return next, nil
	})
	if err != nil {
		return Session{}, err
	}
	return v.(Session), nil
}

func (c *Client) expire(key string) {
	c.notifier.Notify(key, c.tr.T(c.locale, key, nil))
	c.afterFunc(c.redirectDelay, c.navigator.ToLogin)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
