package models

// HeatmapPoint is the vote intensity of one kecamatan.
type HeatmapPoint struct {
	Kecamatan    string  `json:"kecamatan"`
	Dapil        string  `json:"dapil"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Votes        int     `json:"votes"`
	Potential    int     `json:"potential"`
	Participants int     `json:"participants"`
	Intensity    float64 `json:"intensity"` // votes relative to the busiest kecamatan, 0..1
}

// LabelValue is one bar or slice of a chart.
type LabelValue struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Dashboard holds the KPI totals and chart series.
type Dashboard struct {
	TotalEvents         int          `json:"total_events"`
	TotalParticipants   int          `json:"total_participants"`
	TotalVotes          int          `json:"total_votes"`
	TotalPotential      int          `json:"total_potential"`
	VotesByDapil        []LabelValue `json:"votes_by_dapil"`
	MonthlyParticipants []LabelValue `json:"monthly_participants"`
	ParticipantsByType  []LabelValue `json:"participants_by_type"`
	Generations         []LabelValue `json:"generations"`
}

// SystemStatus is the last host sample.
type SystemStatus struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
	DatabaseBytes int64   `json:"database_bytes"`
	Goroutines    int     `json:"goroutines"`
	SampledAt     string  `json:"sampled_at"`
}
