package services

import (
	"context"
	"strings"
	"testing"

	"github.com/sabadesa/sabadesa-be/internal/prioritization"
)

func seedVotes(t *testing.T, env *testEnv) {
	t.Helper()
	csv := strings.Join([]string{
		"Kecamatan,Desa,Jumlah Suara,Potensi Suara",
		"SOREANG,Soreang,100,1000",
		"CILEUNYI,Cinunuk,900,1000",
	}, "\n")
	if _, err := env.imports.Import(context.Background(), "seed.csv", strings.NewReader(csv), nil); err != nil {
		t.Fatalf("seed votes: %v", err)
	}
}

func TestPrioritizationService_ComputeSortedAndBucketed(t *testing.T) {
	env := newTestEnv(t)
	seedVotes(t, env)
	eventID := env.createEvent(t, "Reses Cileunyi", "CILEUNYI", "Cinunuk", "2025-10-01")
	env.attendees.Add(eventID, attendeeInput("Ani", "3204000000000001"), false, nil)

	list, err := env.priority.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(list) != 31 {
		t.Fatalf("expected every kecamatan, got %d", len(list))
	}
	for i, s := range list {
		if s.Status != prioritization.Bucket(s.Score) {
			t.Errorf("%s: status %s does not match score %.1f", s.Kecamatan, s.Status, s.Score)
		}
		if i > 0 && list[i-1].Score < s.Score {
			t.Errorf("list not sorted at %d: %.1f < %.1f", i, list[i-1].Score, s.Score)
		}
	}

	top := list[0]
	// 90% gap with no events: 100*(0.7*0.9 + 0.3) = 93.
	if top.Kecamatan != "SOREANG" || top.Score != 93 || top.Status != prioritization.StatusFrequentlyVisited {
		t.Errorf("unexpected top suggestion %+v", top)
	}

	var cileunyi prioritization.Suggestion
	for _, s := range list {
		if s.Kecamatan == "CILEUNYI" {
			cileunyi = s
		}
	}
	if cileunyi.EventCount != 1 || cileunyi.ParticipantCount != 1 || cileunyi.ActualVotes != 900 {
		t.Errorf("unexpected CILEUNYI totals %+v", cileunyi)
	}
}

func TestPrioritizationService_SuggestUsesSnapshot(t *testing.T) {
	env := newTestEnv(t)
	seedVotes(t, env)
	ctx := context.Background()

	top, err := env.priority.Suggest(ctx, prioritization.StatusFrequentlyVisited)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(top) != 1 || top[0].Kecamatan != "SOREANG" {
		t.Fatalf("unexpected filtered suggestions %+v", top)
	}

	// Writes behind the service's back are invisible until Refresh.
	env.db.Exec("DELETE FROM vote_results")
	cached, _ := env.priority.Suggest(ctx, prioritization.StatusFrequentlyVisited)
	if len(cached) != 1 {
		t.Errorf("expected cached snapshot, got %d entries", len(cached))
	}
	if _, err := env.priority.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	fresh, _ := env.priority.Suggest(ctx, prioritization.StatusFrequentlyVisited)
	if len(fresh) != 0 {
		t.Errorf("expected refreshed snapshot to be empty, got %+v", fresh)
	}
}

func TestAnalyticsService(t *testing.T) {
	env := newTestEnv(t)
	seedVotes(t, env)
	eventID := env.createEvent(t, "Reses Soreang", "SOREANG", "Soreang", "2025-10-01")
	env.attendees.Add(eventID, attendeeInput("Ani", "3204000000000001"), false, nil)
	ctx := context.Background()

	points, err := env.analytics.Heatmap(ctx)
	if err != nil {
		t.Fatalf("Heatmap failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %+v", points)
	}
	for _, p := range points {
		if p.Lat == 0 || p.Lng == 0 {
			t.Errorf("%s: missing coordinates", p.Kecamatan)
		}
		if p.Kecamatan == "CILEUNYI" && p.Intensity != 1 {
			t.Errorf("expected CILEUNYI to be the busiest, got %.2f", p.Intensity)
		}
		if p.Kecamatan == "SOREANG" && p.Participants != 1 {
			t.Errorf("expected 1 participant in SOREANG, got %d", p.Participants)
		}
	}

	d, err := env.analytics.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if d.TotalEvents != 1 || d.TotalParticipants != 1 || d.TotalVotes != 1000 || d.TotalPotential != 2000 {
		t.Errorf("unexpected totals %+v", d)
	}
	if len(d.MonthlyParticipants) != 1 || d.MonthlyParticipants[0].Label != "2025-10" || d.MonthlyParticipants[0].Value != 1 {
		t.Errorf("unexpected monthly series %+v", d.MonthlyParticipants)
	}
	if len(d.Generations) != 5 || d.Generations[1].Label != "Millennial" || d.Generations[1].Value != 1 {
		t.Errorf("unexpected generations %+v", d.Generations)
	}
}
