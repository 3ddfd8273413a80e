package models

import "time"

// Attendee is a participant record attached to an event.
type Attendee struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	NIK            string    `json:"nik"`
	IdentifierType string    `json:"identifier_type"` // NIK or NIS
	Name           string    `json:"name"`
	Kecamatan      string    `json:"kecamatan"`
	Desa           string    `json:"desa"`
	Alamat         string    `json:"alamat"`
	JenisKelamin   string    `json:"jenis_kelamin"`
	Pekerjaan      string    `json:"pekerjaan"`
	Usia           *int      `json:"usia,omitempty"`
	CreatedAt      time.Time `json:"created_at"`

	// Set on cross-event listings.
	EventTitle string `json:"event_title,omitempty"`
	EventDate  string `json:"event_date,omitempty"`
}

// ParticipationRecord describes an earlier event an identity number attended.
type ParticipationRecord struct {
	EventID      string `json:"event_id"`
	ActivityName string `json:"activity_name"`
	Date         string `json:"date"`
	Location     string `json:"location"`
}
