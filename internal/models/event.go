package models

import "time"

// Event is a campaign activity held at a location on a date.
type Event struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	ActivityTypeID     *string   `json:"activity_type_id,omitempty"`
	ActivityTypeName   string    `json:"activity_type_name,omitempty"`
	Date               string    `json:"date"` // YYYY-MM-DD
	Dapil              string    `json:"dapil"`
	LocationKecamatan  string    `json:"location_kecamatan"`
	LocationKelurahan  string    `json:"location_kelurahan"`
	Description        string    `json:"description"`
	TargetParticipants int       `json:"target_participants"`
	AttendeeCount      int       `json:"attendee_count"`
	CreatedBy          *string   `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// ActivityType is a category of events with a participant capacity.
type ActivityType struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	MaxParticipants int       `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
}
