package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/validation"
)

// ActivityTypeServiceProvider defines the interface for activity type services.
type ActivityTypeServiceProvider interface {
	List() ([]models.ActivityType, error)
	Get(id string) (models.ActivityType, error)
	Create(in validation.ActivityTypeInput, actorID *string) (models.ActivityType, error)
	Delete(id string, actorID *string) error
}

// ActivityTypeService manages the activity type master data.
type ActivityTypeService struct {
	db   *sql.DB
	logs ActivityLogServiceProvider
}

// NewActivityTypeService creates a new ActivityTypeService.
func NewActivityTypeService(db *sql.DB, logs ActivityLogServiceProvider) *ActivityTypeService {
	return &ActivityTypeService{db: db, logs: logs}
}

// List returns every activity type ordered by name.
func (s *ActivityTypeService) List() ([]models.ActivityType, error) {
	rows, err := s.db.Query("SELECT id, name, max_participants, created_at FROM activity_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []models.ActivityType{}
	for rows.Next() {
		var at models.ActivityType
		if err := rows.Scan(&at.ID, &at.Name, &at.MaxParticipants, &at.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, at)
	}
	return types, rows.Err()
}

// Get returns one activity type.
func (s *ActivityTypeService) Get(id string) (models.ActivityType, error) {
	var at models.ActivityType
	err := s.db.QueryRow("SELECT id, name, max_participants, created_at FROM activity_types WHERE id = ?", id).
		Scan(&at.ID, &at.Name, &at.MaxParticipants, &at.CreatedAt)
	if err == sql.ErrNoRows {
		return models.ActivityType{}, fmt.Errorf("activity type %s: %w", id, ErrNotFound)
	}
	return at, err
}

// Create adds an activity type. Names are unique, ignoring case.
func (s *ActivityTypeService) Create(in validation.ActivityTypeInput, actorID *string) (models.ActivityType, error) {
	if err := validation.ActivityType(in); err != nil {
		return models.ActivityType{}, err
	}
	at := models.ActivityType{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(in.Name),
		MaxParticipants: in.MaxParticipants,
		CreatedAt:       time.Now().UTC(),
	}

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM activity_types WHERE name = ? COLLATE NOCASE", at.Name).Scan(&exists); err != nil {
		return models.ActivityType{}, err
	}
	if exists > 0 {
		return models.ActivityType{}, fmt.Errorf("activity type %q: %w", at.Name, ErrConflict)
	}

	_, err := s.db.Exec("INSERT INTO activity_types (id, name, max_participants, created_at) VALUES (?, ?, ?, ?)",
		at.ID, at.Name, at.MaxParticipants, at.CreatedAt)
	if err != nil {
		return models.ActivityType{}, err
	}
	record(s.logs, "activity_type.created", LevelInfo, fmt.Sprintf("Activity type %s created", at.Name), actorID)
	return at, nil
}

// Delete removes an activity type. Events keep their data with no type.
func (s *ActivityTypeService) Delete(id string, actorID *string) error {
	res, err := s.db.Exec("DELETE FROM activity_types WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activity type %s: %w", id, ErrNotFound)
	}
	record(s.logs, "activity_type.deleted", LevelInfo, fmt.Sprintf("Activity type %s deleted", id), actorID)
	return nil
}
