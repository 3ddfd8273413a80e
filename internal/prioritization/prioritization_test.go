package prioritization

import "testing"

func TestBucket_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Status
	}{
		{100, StatusFrequentlyVisited},
		{90, StatusFrequentlyVisited},
		{89.9, StatusNeedsAttention},
		{89, StatusNeedsAttention},
		{80, StatusNeedsAttention},
		{79, StatusNeedsReview},
		{70, StatusNeedsReview},
		{69.9, StatusStable},
		{69, StatusStable},
		{0, StatusStable},
	}
	for _, tt := range tests {
		if got := Bucket(tt.score); got != tt.want {
			t.Errorf("Bucket(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := StatusFrequentlyVisited.Label(); got != "Sering dikunjungi" {
		t.Errorf("unexpected label %q", got)
	}
	if got := StatusStable.Label(); got != "Stabil" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"", "", false},
		{"all", "", false},
		{"needs_review", StatusNeedsReview, false},
		{"Perlu perhatian", StatusNeedsAttention, false},
		{"urgent", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestClassifyAndFilter(t *testing.T) {
	list := []Suggestion{
		{Kecamatan: "CILEUNYI", Score: 85},
		{Kecamatan: "CICALENGKA", Score: 95},
		{Kecamatan: "BALEENDAH", Score: 60},
	}
	Classify(list)

	if list[0].Status != StatusNeedsAttention || list[0].StatusLabel != "Perlu perhatian" {
		t.Errorf("unexpected classification %+v", list[0])
	}

	got := Filter(list, StatusFrequentlyVisited)
	if len(got) != 1 || got[0].Kecamatan != "CICALENGKA" {
		t.Errorf("unexpected filter result %+v", got)
	}

	if got := Filter(list, ""); len(got) != 3 {
		t.Errorf("empty status should keep all, got %d", len(got))
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name                   string
		actual, target, events int
		want                   float64
	}{
		{"no votes no events", 0, 1000, 0, 100},
		{"target met saturated", 1000, 1000, 10, 0},
		{"target met no events", 1200, 1000, 0, 30},
		{"half gap five events", 500, 1000, 5, 50},
		{"no target", 300, 0, 20, 0},
		{"negative events", 0, 100, -3, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.actual, tt.target, tt.events); got != tt.want {
				t.Errorf("Score(%d, %d, %d) = %v, want %v", tt.actual, tt.target, tt.events, got, tt.want)
			}
		})
	}
}

func TestReason(t *testing.T) {
	if got := Reason(250, 1000, 0); got != "Suara 75% di bawah target, belum ada kegiatan" {
		t.Errorf("unexpected reason %q", got)
	}
	if got := Reason(1000, 1000, 3); got != "Target suara tercapai, 3 kegiatan tercatat" {
		t.Errorf("unexpected reason %q", got)
	}
}
