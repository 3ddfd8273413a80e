package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/cache"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/validation"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// EventFilter narrows List. Empty fields match everything.
type EventFilter struct {
	Kecamatan string
	Dapil     string
}

// EventServiceProvider defines the interface for campaign event services.
type EventServiceProvider interface {
	List(filter EventFilter) ([]models.Event, error)
	Get(id string) (models.Event, error)
	Create(in validation.EventInput, force bool, actorID *string) (models.Event, error)
	Delete(id string, actorID *string) error
}

// EventService provides business logic for campaign events.
type EventService struct {
	db    *sql.DB
	table *wilayah.Table
	types ActivityTypeServiceProvider
	cache cache.Cache
	logs  ActivityLogServiceProvider
}

// NewEventService creates a new EventService. cache may be nil.
func NewEventService(db *sql.DB, table *wilayah.Table, types ActivityTypeServiceProvider, c cache.Cache, logs ActivityLogServiceProvider) *EventService {
	if table == nil {
		table = wilayah.Default()
	}
	return &EventService{db: db, table: table, types: types, cache: c, logs: logs}
}

const eventColumns = `e.id, e.title, e.activity_type_id, COALESCE(t.name, ''), e.date, e.dapil,
	e.location_kecamatan, e.location_kelurahan, e.description, e.target_participants,
	(SELECT COUNT(1) FROM attendees a WHERE a.event_id = e.id), e.created_by, e.created_at`

func scanEvent(row interface{ Scan(...any) error }) (models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.ActivityTypeID, &e.ActivityTypeName, &e.Date, &e.Dapil,
		&e.LocationKecamatan, &e.LocationKelurahan, &e.Description, &e.TargetParticipants,
		&e.AttendeeCount, &e.CreatedBy, &e.CreatedAt)
	return e, err
}

// List returns events, newest date first.
func (s *EventService) List(filter EventFilter) ([]models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events e LEFT JOIN activity_types t ON t.id = e.activity_type_id WHERE 1=1"
	var args []any
	if filter.Kecamatan != "" {
		query += " AND e.location_kecamatan = ?"
		args = append(args, wilayah.NormalizeKecamatan(filter.Kecamatan))
	}
	if filter.Dapil != "" {
		query += " AND e.dapil = ?"
		args = append(args, filter.Dapil)
	}
	query += " ORDER BY e.date DESC, e.created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Get returns one event with its attendee count.
func (s *EventService) Get(id string) (models.Event, error) {
	row := s.db.QueryRow("SELECT "+eventColumns+" FROM events e LEFT JOIN activity_types t ON t.id = e.activity_type_id WHERE e.id = ?", id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
		}
		return models.Event{}, err
	}
	return e, nil
}

// Create stores an event and any attendees submitted with it. The dapil is
// derived from the kecamatan. When TargetParticipants is zero the activity
// type's capacity is used.
func (s *EventService) Create(in validation.EventInput, force bool, actorID *string) (models.Event, error) {
	if err := validation.Event(in); err != nil {
		return models.Event{}, err
	}

	date, _ := validation.ParseDate(in.Date)
	district, _ := s.table.Lookup(in.LocationKecamatan)
	kelurahan, _ := s.table.CanonicalVillage(district.Name, in.LocationKelurahan)

	e := models.Event{
		ID:                 uuid.New().String(),
		Title:              strings.TrimSpace(in.Title),
		Date:               date.Format("2006-01-02"),
		Dapil:              district.Dapil,
		LocationKecamatan:  district.Name,
		LocationKelurahan:  kelurahan,
		Description:        strings.TrimSpace(in.Description),
		TargetParticipants: in.TargetParticipants,
		CreatedBy:          actorID,
		CreatedAt:          time.Now().UTC(),
	}
	if id := strings.TrimSpace(in.ActivityTypeID); id != "" {
		at, err := s.types.Get(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return models.Event{}, validation.Errors{"activity_type_id": "Jenis kegiatan tidak ditemukan"}
			}
			return models.Event{}, err
		}
		e.ActivityTypeID = &at.ID
		e.ActivityTypeName = at.Name
		if e.TargetParticipants <= 0 {
			e.TargetParticipants = at.MaxParticipants
		}
	}

	seen := make(map[string]int, len(in.Attendees))
	for i, a := range in.Attendees {
		nik := strings.TrimSpace(a.NIK)
		if j, dup := seen[nik]; dup {
			return models.Event{}, validation.Errors{
				fmt.Sprintf("attendees[%d].nik", i): fmt.Sprintf("NIK sama dengan peserta ke-%d", j+1),
			}
		}
		seen[nik] = i
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Event{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO events (id, title, activity_type_id, date, dapil, location_kecamatan, location_kelurahan,
		description, target_participants, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.ActivityTypeID, e.Date, e.Dapil, e.LocationKecamatan, e.LocationKelurahan,
		e.Description, e.TargetParticipants, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return models.Event{}, err
	}

	for _, a := range in.Attendees {
		attendee := newAttendee(s.table, e, a)
		if !force {
			if err := checkDuplicateNIK(tx, attendee.NIK, e.ID); err != nil {
				return models.Event{}, err
			}
		}
		if err := insertAttendee(tx, attendee); err != nil {
			return models.Event{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Event{}, err
	}
	e.AttendeeCount = len(in.Attendees)

	invalidateAnalytics(s.cache)
	record(s.logs, "event.created", LevelInfo, fmt.Sprintf("Event %q created in %s", e.Title, e.LocationKecamatan), actorID)
	return e, nil
}

// Delete removes an event and its attendees.
func (s *EventService) Delete(id string, actorID *string) error {
	res, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	invalidateAnalytics(s.cache)
	record(s.logs, "event.deleted", LevelInfo, fmt.Sprintf("Event %s deleted", id), actorID)
	return nil
}

func invalidateAnalytics(c cache.Cache) {
	if c == nil {
		return
	}
	if err := c.Delete(context.Background(), cache.AnalyticsKeys...); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate analytics cache")
	}
}
