package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/sabadesa/sabadesa-be/internal/export"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/prioritization"
	"github.com/sabadesa/sabadesa-be/internal/validation"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Message, validation.Errors(e.Fields).Error())
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// DuplicateNIKError is the forceable conflict returned when an identity
// number already attended other events.
type DuplicateNIKError struct {
	NIK        string
	Activities []models.ParticipationRecord
}

func (e *DuplicateNIKError) Error() string {
	return fmt.Sprintf("NIK %s already registered at %d other event(s)", e.NIK, len(e.Activities))
}

// ErrInvalidResponse is returned when a success body fails boundary checks.
var ErrInvalidResponse = errors.New("invalid response")

type errorBody struct {
	Error      string                       `json:"error"`
	Code       string                       `json:"code"`
	Fields     map[string]string            `json:"fields"`
	NIK        string                       `json:"nik"`
	Activities []models.ParticipationRecord `json:"activities"`
}

func responseError(resp *http.Response) error {
	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	if resp.StatusCode == http.StatusConflict && body.Code == "duplicate_nik" {
		return &DuplicateNIKError{NIK: body.NIK, Activities: body.Activities}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error, Code: body.Code, Fields: body.Fields}
}

// do sends JSON through Fetch and decodes a 2xx body into dest.
func (c *Client) do(ctx context.Context, method, path string, in, dest any) error {
	opts := &RequestOptions{Method: method}
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		opts.Body = data
		opts.Header = http.Header{"Content-Type": {"application/json"}}
	}
	resp, err := c.Fetch(ctx, path, opts)
	if err != nil {
		return err
	}
	return decodeResponse(resp, dest)
}

func decodeResponse(resp *http.Response, dest any) error {
	defer drain(resp)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

type loginResponse struct {
	Session
	User models.User `json:"user"`
}

// Login authenticates and stores the new session. It does not go through
// Fetch: a 401 here means bad credentials, not an expired session.
func (c *Client) Login(ctx context.Context, username, password string) (models.User, error) {
	if err := validation.Login(validation.LoginInput{Username: username, Password: password}); err != nil {
		return models.User{}, err
	}
	payload, _ := json.Marshal(validation.LoginInput{Username: username, Password: password})
	resp, err := c.send(ctx, "/auth/login", &RequestOptions{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   payload,
	}, "")
	if err != nil {
		return models.User{}, err
	}
	var out loginResponse
	if err := decodeResponse(resp, &out); err != nil {
		return models.User{}, err
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return models.User{}, fmt.Errorf("%w: login returned no tokens", ErrInvalidResponse)
	}
	if err := c.store.Save(out.Session); err != nil {
		return models.User{}, err
	}
	return out.User, nil
}

// Logout revokes the refresh token and clears the local session. The refresh
// token is the credential, so the call skips Fetch: a refresh there would
// rotate the token being revoked. The local session is cleared even when the
// server call fails.
func (c *Client) Logout(ctx context.Context) error {
	sess, _ := c.store.Load()
	var err error
	if sess.RefreshToken != "" {
		payload, _ := json.Marshal(map[string]string{"refresh_token": sess.RefreshToken})
		var resp *http.Response
		resp, err = c.send(ctx, "/auth/logout", &RequestOptions{
			Method: http.MethodPost,
			Header: http.Header{"Content-Type": {"application/json"}},
			Body:   payload,
		}, sess.AccessToken)
		if err == nil {
			err = decodeResponse(resp, nil)
		}
	}
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return models.User{}, err
	}
	if user.ID == "" {
		return models.User{}, fmt.Errorf("%w: user without id", ErrInvalidResponse)
	}
	return user, nil
}

// ActivityTypes lists activity types.
func (c *Client) ActivityTypes(ctx context.Context) ([]models.ActivityType, error) {
	var out []models.ActivityType
	err := c.do(ctx, http.MethodGet, "/activity-types/", nil, &out)
	return out, err
}

// CreateActivityType adds an activity type after validating it locally.
func (c *Client) CreateActivityType(ctx context.Context, in validation.ActivityTypeInput) (models.ActivityType, error) {
	if err := validation.ActivityType(in); err != nil {
		return models.ActivityType{}, err
	}
	var out models.ActivityType
	err := c.do(ctx, http.MethodPost, "/activity-types/", in, &out)
	return out, err
}

// DeleteActivityType removes an activity type.
func (c *Client) DeleteActivityType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/activity-types/"+url.PathEscape(id), nil, nil)
}

// Events lists events, optionally filtered.
func (c *Client) Events(ctx context.Context, kecamatan, dapil string) ([]models.Event, error) {
	q := url.Values{}
	if kecamatan != "" {
		q.Set("kecamatan", kecamatan)
	}
	if dapil != "" {
		q.Set("dapil", dapil)
	}
	var out []models.Event
	err := c.do(ctx, http.MethodGet, withQuery("/events/", q), nil, &out)
	return out, err
}

// CreateEvent adds an event with optional nested attendees.
func (c *Client) CreateEvent(ctx context.Context, in validation.EventInput, force bool) (models.Event, error) {
	if err := validation.Event(in); err != nil {
		return models.Event{}, err
	}
	path := "/events/"
	if force {
		path += "?force=true"
	}
	var out models.Event
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return models.Event{}, err
	}
	if out.ID == "" {
		return models.Event{}, fmt.Errorf("%w: event without id", ErrInvalidResponse)
	}
	return out, nil
}

// AddAttendee registers a participant. Without force, an identity number
// seen at other events yields *DuplicateNIKError; retry with force to
// confirm.
func (c *Client) AddAttendee(ctx context.Context, eventID string, in validation.AttendeeInput, force bool) (models.Attendee, error) {
	if err := validation.Attendee(in); err != nil {
		return models.Attendee{}, err
	}
	path := "/events/" + url.PathEscape(eventID) + "/attendees"
	if force {
		path += "?force=true"
	}
	var out models.Attendee
	err := c.do(ctx, http.MethodPost, path, in, &out)
	return out, err
}

// Attendees lists the roster of one event.
func (c *Client) Attendees(ctx context.Context, eventID string) ([]models.Attendee, error) {
	var out []models.Attendee
	err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID)+"/attendees", nil, &out)
	return out, err
}

// AttendeeQuery filters the cross-event attendee list.
type AttendeeQuery struct {
	Kecamatan []string
	Desa      string
	Dapil     string
}

func (q AttendeeQuery) values() url.Values {
	v := url.Values{}
	for _, k := range q.Kecamatan {
		v.Add("kecamatan", k)
	}
	if q.Desa != "" {
		v.Set("desa", q.Desa)
	}
	if q.Dapil != "" {
		v.Set("dapil", q.Dapil)
	}
	return v
}

// AllAttendees lists attendees across events.
func (c *Client) AllAttendees(ctx context.Context, q AttendeeQuery) ([]models.Attendee, error) {
	var out []models.Attendee
	err := c.do(ctx, http.MethodGet, withQuery("/events/attendees/all", q.values()), nil, &out)
	return out, err
}

// ImportVotes uploads a vote spreadsheet.
func (c *Client) ImportVotes(ctx context.Context, filename string, r io.Reader) (models.ImportLog, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return models.ImportLog{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.ImportLog{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return models.ImportLog{}, err
	}

	resp, err := c.Fetch(ctx, "/imports/votes", &RequestOptions{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {mw.FormDataContentType()}},
		Body:   buf.Bytes(),
	})
	if err != nil {
		return models.ImportLog{}, err
	}
	var out models.ImportLog
	err = decodeResponse(resp, &out)
	return out, err
}

// Imports lists recent imports.
func (c *Client) Imports(ctx context.Context, limit int) ([]models.ImportLog, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	var out []models.ImportLog
	err := c.do(ctx, http.MethodGet, withQuery("/imports/", q), nil, &out)
	return out, err
}

// Heatmap returns per-kecamatan intensity points.
func (c *Client) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	var out []models.HeatmapPoint
	err := c.do(ctx, http.MethodGet, "/analytics/heatmap", nil, &out)
	return out, err
}

// Suggestions returns the prioritization list. Each entry's status is
// recomputed from its score, so the buckets always follow the local
// thresholds.
func (c *Client) Suggestions(ctx context.Context, status prioritization.Status) ([]prioritization.Suggestion, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []prioritization.Suggestion
	if err := c.do(ctx, http.MethodGet, withQuery("/prioritization/suggest", q), nil, &out); err != nil {
		return nil, err
	}
	prioritization.Classify(out)
	return prioritization.Filter(out, status), nil
}

// RefreshSuggestions asks the server to recompute the snapshot.
func (c *Client) RefreshSuggestions(ctx context.Context) ([]prioritization.Suggestion, error) {
	var out []prioritization.Suggestion
	if err := c.do(ctx, http.MethodPost, "/prioritization/refresh", nil, &out); err != nil {
		return nil, err
	}
	prioritization.Classify(out)
	return out, nil
}

// ExportAttendees downloads an attendee export into w and returns the
// server-suggested filename.
func (c *Client) ExportAttendees(ctx context.Context, format export.Format, filter export.Filter, w io.Writer) (string, error) {
	q := url.Values{"format": {string(format)}}
	if filter.Dapil != "" {
		q.Set("dapil", filter.Dapil)
	}
	if filter.Kecamatan != "" {
		q.Set("kecamatan", filter.Kecamatan)
	}
	if filter.Desa != "" {
		q.Set("desa", filter.Desa)
	}
	resp, err := c.Fetch(ctx, withQuery("/exports/attendees", q), nil)
	if err != nil {
		return "", err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return "", responseError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", err
	}
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", nil
	}
	return params["filename"], nil
}

// Resolve runs the region cascade on the server.
func (c *Client) Resolve(ctx context.Context, sel wilayah.Selection) (wilayah.Options, error) {
	var out wilayah.Options
	err := c.do(ctx, http.MethodPost, "/wilayah/resolve", map[string]any{"selection": sel}, &out)
	return out, err
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
