package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/sabadesa/sabadesa-be/internal/validation"
)

// EventHandler handles HTTP requests for campaign events and their attendees.
type EventHandler struct {
	events    services.EventServiceProvider
	attendees services.AttendeeServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events services.EventServiceProvider, attendees services.AttendeeServiceProvider) *EventHandler {
	return &EventHandler{events: events, attendees: attendees}
}

type createEventPayload struct {
	validation.EventInput
	Force bool `json:"force"`
}

type addAttendeePayload struct {
	validation.AttendeeInput
	Force bool `json:"force"`
}

// forced reports whether the caller confirmed a duplicate NIK, through the
// query string or the body.
func forced(r *http.Request, body bool) bool {
	if body {
		return true
	}
	v, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	return v
}

// GetAll lists events, optionally filtered by kecamatan and dapil.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := h.events.List(services.EventFilter{Kecamatan: q.Get("kecamatan"), Dapil: q.Get("dapil")})
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to retrieve events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Get returns one event with its attendee count.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, err := h.events.Get(id)
	if err != nil {
		writeServiceError(w, log.Error().Str("event_id", id), err, "Failed to retrieve event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create adds an event together with any nested attendees.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createEventPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	event, err := h.events.Create(payload.EventInput, forced(r, payload.Force), actorID(r))
	if err != nil {
		writeServiceError(w, log.Error().Str("title", payload.Title), err, "Failed to create event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// Delete removes an event and its attendees.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.events.Delete(id, actorID(r)); err != nil {
		writeServiceError(w, log.Error().Str("event_id", id), err, "Failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAttendees lists the roster of one event.
func (h *EventHandler) GetAttendees(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	attendees, err := h.attendees.ListByEvent(id)
	if err != nil {
		writeServiceError(w, log.Error().Str("event_id", id), err, "Failed to retrieve attendees")
		return
	}
	writeJSON(w, http.StatusOK, attendees)
}

// AddAttendee registers a participant. A NIK seen at other events is a 409
// unless the request is forced.
func (h *EventHandler) AddAttendee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload addAttendeePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	attendee, err := h.attendees.Add(id, payload.AttendeeInput, forced(r, payload.Force), actorID(r))
	if err != nil {
		writeServiceError(w, log.Error().Str("event_id", id), err, "Failed to add attendee")
		return
	}
	writeJSON(w, http.StatusCreated, attendee)
}

// DeleteAttendee removes a participant from an event.
func (h *EventHandler) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	attendeeID := chi.URLParam(r, "attendeeId")
	if err := h.attendees.Delete(id, attendeeID, actorID(r)); err != nil {
		writeServiceError(w, log.Error().Str("event_id", id).Str("attendee_id", attendeeID), err, "Failed to delete attendee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAllAttendees lists attendees across events. kecamatan may repeat.
func (h *EventHandler) GetAllAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.attendees.ListAll(attendeeFilter(r))
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to retrieve attendees")
		return
	}
	writeJSON(w, http.StatusOK, attendees)
}

func attendeeFilter(r *http.Request) services.AttendeeFilter {
	q := r.URL.Query()
	var kecamatan []string
	for _, k := range q["kecamatan"] {
		if k != "" {
			kecamatan = append(kecamatan, k)
		}
	}
	return services.AttendeeFilter{Kecamatan: kecamatan, Desa: q.Get("desa"), Dapil: q.Get("dapil")}
}
