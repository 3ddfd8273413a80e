package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/websocket"
)

// Activity log levels.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Publisher fans a message out to live subscribers.
type Publisher interface {
	Publish(msg websocket.Message)
}

// ActivityLogServiceProvider defines the interface for activity log services.
type ActivityLogServiceProvider interface {
	Record(logType, level, message string, actorID *string) error
	Recent(limit int) ([]models.ActivityLog, error)
}

// ActivityLogService records what happened in the system and pushes each
// record to the live feed.
type ActivityLogService struct {
	db        *sql.DB
	publisher Publisher
}

// NewActivityLogService creates a new ActivityLogService. publisher may be nil.
func NewActivityLogService(db *sql.DB, publisher Publisher) *ActivityLogService {
	return &ActivityLogService{db: db, publisher: publisher}
}

// Record logs a new activity to the database and broadcasts it.
func (s *ActivityLogService) Record(logType, level, message string, actorID *string) error {
	entry := models.ActivityLog{
		ID:        uuid.New().String(),
		Type:      logType,
		Level:     level,
		Message:   message,
		ActorID:   actorID,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO activity_log (id, type, level, message, actor_id, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(entry.ID, entry.Type, entry.Level, entry.Message, entry.ActorID, entry.CreatedAt); err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.Publish(websocket.Message{Action: entry.Type, Payload: entry})
	}
	return nil
}

// Recent retrieves the most recent activity records.
func (s *ActivityLogService) Recent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.Query("SELECT id, type, level, message, actor_id, created_at FROM activity_log ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ActivityLog{}
	for rows.Next() {
		var entry models.ActivityLog
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Level, &entry.Message, &entry.ActorID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// record is a best-effort Record used by the other services.
func record(logs ActivityLogServiceProvider, logType, level, message string, actorID *string) {
	if logs == nil {
		return
	}
	if err := logs.Record(logType, level, message, actorID); err != nil {
		log.Error().Err(err).Str("type", logType).Msg("Failed to record activity")
	}
}
