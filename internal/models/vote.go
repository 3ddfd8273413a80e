package models

import "time"

// Import statuses.
const (
	ImportSuccess = "success"
	ImportPartial = "partial"
	ImportFailed  = "failed"
)

// VoteResult is one imported row of historical vote data.
type VoteResult struct {
	ID        string    `json:"id"`
	ImportID  string    `json:"import_id"`
	Dapil     string    `json:"dapil"`
	Kecamatan string    `json:"kecamatan"`
	Desa      string    `json:"desa"`
	Dusun     string    `json:"dusun,omitempty"`
	RTRW      string    `json:"rt_rw,omitempty"`
	Votes     int       `json:"votes"`
	Potential int       `json:"potential"`
	CreatedAt time.Time `json:"created_at"`
}

// RowError records why one spreadsheet row was skipped. Row is 1-based and
// counts the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportLog summarizes one vote import.
type ImportLog struct {
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	Status      string     `json:"status"`
	RecordCount int        `json:"record_count"`
	ErrorCount  int        `json:"error_count"`
	Errors      []RowError `json:"errors,omitempty"`
	UploadedBy  *string    `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// VoteSummary aggregates every imported row.
type VoteSummary struct {
	TotalVotes     int `json:"total_votes"`
	TotalPotential int `json:"total_potential"`
	Kecamatan      int `json:"kecamatan"`
	Desa           int `json:"desa"`
}
