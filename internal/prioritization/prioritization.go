// Package prioritization scores regions by engagement need and buckets the
// scores into display statuses.
package prioritization

import (
	"fmt"
	"math"
	"strings"
)

// Status is the display bucket of a prioritization score.
type Status string

const (
	StatusFrequentlyVisited Status = "frequently_visited"
	StatusNeedsAttention    Status = "needs_attention"
	StatusNeedsReview       Status = "needs_review"
	StatusStable            Status = "stable"
)

// Score thresholds, inclusive.
const (
	FrequentlyVisitedThreshold = 90
	NeedsAttentionThreshold    = 80
	NeedsReviewThreshold       = 70
)

var labels = map[Status]string{
	StatusFrequentlyVisited: "Sering dikunjungi",
	StatusNeedsAttention:    "Perlu perhatian",
	StatusNeedsReview:       "Perlu ditinjau",
	StatusStable:            "Stabil",
}

// Label returns the Indonesian display label of s.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStatus accepts a status value or its label. Empty and "all" yield "".
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return "", nil
	}
	for s, l := range labels {
		if strings.EqualFold(raw, string(s)) || strings.EqualFold(raw, l) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown prioritization status %q", raw)
}

// Bucket maps a score to its status.
func Bucket(score float64) Status {
	switch {
	case score >= FrequentlyVisitedThreshold:
		return StatusFrequentlyVisited
	case score >= NeedsAttentionThreshold:
		return StatusNeedsAttention
	case score >= NeedsReviewThreshold:
		return StatusNeedsReview
	default:
		return StatusStable
	}
}

// Suggestion is one prioritized region.
type Suggestion struct {
	Kecamatan        string  `json:"kecamatan"`
	Dapil            string  `json:"dapil,omitempty"`
	Score            float64 `json:"score"`
	ActualVotes      int     `json:"actual_votes"`
	TargetVotes      int     `json:"target_votes"`
	ParticipantCount int     `json:"participant_count"`
	EventCount       int     `json:"event_count"`
	Reason           string  `json:"reason"`
	Status           Status  `json:"status"`
	StatusLabel      string  `json:"status_label"`
}

// Classify sets Status and StatusLabel on every suggestion in place.
func Classify(list []Suggestion) {
	for i := range list {
		list[i].Status = Bucket(list[i].Score)
		list[i].StatusLabel = list[i].Status.Label()
	}
}

// Filter returns the suggestions whose bucket is status. An empty status keeps everything.
func Filter(list []Suggestion, status Status) []Suggestion {
	out := make([]Suggestion, 0, len(list))
	for _, s := range list {
		if status == "" || Bucket(s.Score) == status {
			out = append(out, s)
		}
	}
	return out
}

// Weights of the score components.
const (
	gapWeight        = 0.7
	engagementWeight = 0.3
	// saturationEvents is the event count at which engagement stops lowering the score.
	saturationEvents = 10
)

// Score rates how urgently a region needs engagement, in [0, 100]. A wider
// gap between target and actual votes and fewer events push the score up.
func Score(actual, target, events int) float64 {
	gap := 0.0
	if target > 0 {
		gap = float64(target-actual) / float64(target)
		gap = math.Max(0, math.Min(1, gap))
	}
	if events < 0 {
		events = 0
	}
	engagement := math.Min(float64(events), saturationEvents) / saturationEvents
	score := 100 * (gapWeight*gap + engagementWeight*(1-engagement))
	return math.Round(score*10) / 10
}

// Reason explains a score in Indonesian.
func Reason(actual, target, events int) string {
	var parts []string
	switch {
	case target <= 0:
		parts = append(parts, "Belum ada target suara")
	case actual >= target:
		parts = append(parts, "Target suara tercapai")
	default:
		pct := float64(target-actual) / float64(target) * 100
		parts = append(parts, fmt.Sprintf("Suara %.0f%% di bawah target", pct))
	}
	if events == 0 {
		parts = append(parts, "belum ada kegiatan")
	} else {
		parts = append(parts, fmt.Sprintf("%d kegiatan tercatat", events))
	}
	return strings.Join(parts, ", ")
}
