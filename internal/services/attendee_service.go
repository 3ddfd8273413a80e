package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sabadesa/sabadesa-be/internal/cache"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/validation"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// AttendeeFilter narrows ListAll. Kecamatan values are OR-ed. A Dapil with
// no Kecamatan expands to every kecamatan of that dapil.
type AttendeeFilter struct {
	Kecamatan []string
	Desa      string
	Dapil     string
}

// AttendeeServiceProvider defines the interface for attendee services.
type AttendeeServiceProvider interface {
	Add(eventID string, in validation.AttendeeInput, force bool, actorID *string) (models.Attendee, error)
	ListByEvent(eventID string) ([]models.Attendee, error)
	ListAll(filter AttendeeFilter) ([]models.Attendee, error)
	Delete(eventID, attendeeID string, actorID *string) error
}

// AttendeeService records event participation.
type AttendeeService struct {
	db    *sql.DB
	table *wilayah.Table
	cache cache.Cache
	logs  ActivityLogServiceProvider
}

// NewAttendeeService creates a new AttendeeService. cache may be nil.
func NewAttendeeService(db *sql.DB, table *wilayah.Table, c cache.Cache, logs ActivityLogServiceProvider) *AttendeeService {
	if table == nil {
		table = wilayah.Default()
	}
	return &AttendeeService{db: db, table: table, cache: c, logs: logs}
}

// Add registers a participant on an event.
//
// An identity number already on this event fails with ErrAlreadyInEvent
// regardless of force. One registered on other events fails with a
// *DuplicateNIKError unless force is set.
func (s *AttendeeService) Add(eventID string, in validation.AttendeeInput, force bool, actorID *string) (models.Attendee, error) {
	if err := validation.Attendee(in); err != nil {
		return models.Attendee{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Attendee{}, err
	}
	defer tx.Rollback()

	var event models.Event
	err = tx.QueryRow("SELECT id, title, date, location_kecamatan, location_kelurahan FROM events WHERE id = ?", eventID).
		Scan(&event.ID, &event.Title, &event.Date, &event.LocationKecamatan, &event.LocationKelurahan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Attendee{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return models.Attendee{}, err
	}

	attendee := newAttendee(s.table, event, in)

	var inEvent int
	if err := tx.QueryRow("SELECT COUNT(1) FROM attendees WHERE event_id = ? AND nik = ?", eventID, attendee.NIK).Scan(&inEvent); err != nil {
		return models.Attendee{}, err
	}
	if inEvent > 0 {
		return models.Attendee{}, ErrAlreadyInEvent
	}
	if !force {
		if err := checkDuplicateNIK(tx, attendee.NIK, eventID); err != nil {
			return models.Attendee{}, err
		}
	}

	if err := insertAttendee(tx, attendee); err != nil {
		return models.Attendee{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Attendee{}, err
	}

	invalidateAnalytics(s.cache)
	msg := fmt.Sprintf("%s added to %q", attendee.Name, event.Title)
	if force {
		msg += " (duplicate NIK confirmed)"
	}
	record(s.logs, "attendee.added", LevelInfo, msg, actorID)
	return attendee, nil
}

const attendeeColumns = `a.id, a.event_id, a.nik, a.identifier_type, a.name, a.kecamatan, a.desa, a.alamat,
	a.jenis_kelamin, a.pekerjaan, a.usia, a.created_at, e.title, e.date`

func scanAttendees(rows *sql.Rows) ([]models.Attendee, error) {
	defer rows.Close()
	attendees := []models.Attendee{}
	for rows.Next() {
		var a models.Attendee
		if err := rows.Scan(&a.ID, &a.EventID, &a.NIK, &a.IdentifierType, &a.Name, &a.Kecamatan, &a.Desa, &a.Alamat,
			&a.JenisKelamin, &a.Pekerjaan, &a.Usia, &a.CreatedAt, &a.EventTitle, &a.EventDate); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

// ListByEvent returns the roster of an event in registration order.
func (s *AttendeeService) ListByEvent(eventID string) ([]models.Attendee, error) {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM events WHERE id = ?", eventID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	rows, err := s.db.Query("SELECT "+attendeeColumns+" FROM attendees a JOIN events e ON e.id = a.event_id WHERE a.event_id = ? ORDER BY a.created_at, a.name", eventID)
	if err != nil {
		return nil, err
	}
	return scanAttendees(rows)
}

// ListAll returns attendees across every event, filtered by region.
func (s *AttendeeService) ListAll(filter AttendeeFilter) ([]models.Attendee, error) {
	kecamatan := make([]string, 0, len(filter.Kecamatan))
	for _, k := range filter.Kecamatan {
		if k = strings.TrimSpace(k); k != "" {
			kecamatan = append(kecamatan, wilayah.NormalizeKecamatan(k))
		}
	}
	if len(kecamatan) == 0 && filter.Dapil != "" {
		for _, d := range s.table.KecamatanByDapil(filter.Dapil) {
			kecamatan = append(kecamatan, d.Name)
		}
		if len(kecamatan) == 0 {
			return []models.Attendee{}, nil
		}
	}

	query := "SELECT " + attendeeColumns + " FROM attendees a JOIN events e ON e.id = a.event_id WHERE 1=1"
	var args []any
	if len(kecamatan) > 0 {
		query += " AND UPPER(a.kecamatan) IN (?" + strings.Repeat(", ?", len(kecamatan)-1) + ")"
		for _, k := range kecamatan {
			args = append(args, k)
		}
	}
	if desa := strings.TrimSpace(filter.Desa); desa != "" {
		query += " AND a.desa = ? COLLATE NOCASE"
		args = append(args, desa)
	}
	query += " ORDER BY e.date DESC, a.name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return scanAttendees(rows)
}

// Delete removes an attendee from an event.
func (s *AttendeeService) Delete(eventID, attendeeID string, actorID *string) error {
	res, err := s.db.Exec("DELETE FROM attendees WHERE id = ? AND event_id = ?", attendeeID, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("attendee %s: %w", attendeeID, ErrNotFound)
	}
	invalidateAnalytics(s.cache)
	record(s.logs, "attendee.deleted", LevelInfo, fmt.Sprintf("Attendee %s removed from event %s", attendeeID, eventID), actorID)
	return nil
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// checkDuplicateNIK returns a *DuplicateNIKError when nik attended any event
// other than eventID.
func checkDuplicateNIK(q querier, nik, eventID string) error {
	rows, err := q.Query(`SELECT e.id, e.title, e.date, e.location_kelurahan, e.location_kecamatan
		FROM attendees a JOIN events e ON e.id = a.event_id
		WHERE a.nik = ? AND a.event_id != ? ORDER BY e.date DESC`, nik, eventID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var records []models.ParticipationRecord
	for rows.Next() {
		var rec models.ParticipationRecord
		var kelurahan, kecamatan string
		if err := rows.Scan(&rec.EventID, &rec.ActivityName, &rec.Date, &kelurahan, &kecamatan); err != nil {
			return err
		}
		rec.Location = kelurahan + ", " + kecamatan
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(records) > 0 {
		return &DuplicateNIKError{NIK: nik, Activities: records}
	}
	return nil
}

// newAttendee builds the stored record. Region fields default to the event
// location and are stored in the table's spelling.
func newAttendee(table *wilayah.Table, event models.Event, in validation.AttendeeInput) models.Attendee {
	idType := strings.ToUpper(strings.TrimSpace(in.IdentifierType))
	if idType == "" {
		idType = validation.IdentifierNIK
	}
	a := models.Attendee{
		ID:             uuid.New().String(),
		EventID:        event.ID,
		NIK:            strings.TrimSpace(in.NIK),
		IdentifierType: idType,
		Name:           strings.TrimSpace(in.Name),
		Kecamatan:      strings.TrimSpace(in.Kecamatan),
		Desa:           strings.TrimSpace(in.Desa),
		Alamat:         strings.TrimSpace(in.Alamat),
		JenisKelamin:   strings.ToUpper(strings.TrimSpace(in.JenisKelamin)),
		Pekerjaan:      strings.TrimSpace(in.Pekerjaan),
		Usia:           in.Usia,
		CreatedAt:      time.Now().UTC(),
		EventTitle:     event.Title,
		EventDate:      event.Date,
	}
	if a.Kecamatan == "" {
		a.Kecamatan = event.LocationKecamatan
		if a.Desa == "" {
			a.Desa = event.LocationKelurahan
		}
	}
	if d, ok := table.Lookup(a.Kecamatan); ok {
		a.Kecamatan = d.Name
		if v, ok := table.CanonicalVillage(d.Name, a.Desa); ok {
			a.Desa = v
		}
	}
	return a
}

func insertAttendee(db execer, a models.Attendee) error {
	_, err := db.Exec(`INSERT INTO attendees (id, event_id, nik, identifier_type, name, kecamatan, desa, alamat,
		jenis_kelamin, pekerjaan, usia, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EventID, a.NIK, a.IdentifierType, a.Name, a.Kecamatan, a.Desa, a.Alamat,
		a.JenisKelamin, a.Pekerjaan, a.Usia, a.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyInEvent
		}
		return err
	}
	return nil
}
