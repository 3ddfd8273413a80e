package models

import "time"

// ActivityLog represents a loggable action or alert in the system.
type ActivityLog struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "event.created", "import.completed"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	ActorID   *string   `json:"actor_id,omitempty"` // Nullable for system jobs
	CreatedAt time.Time `json:"created_at"`
}
