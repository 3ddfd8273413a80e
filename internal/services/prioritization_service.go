package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/cache"
	"github.com/sabadesa/sabadesa-be/internal/prioritization"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// PrioritizationServiceProvider defines the interface for prioritization services.
type PrioritizationServiceProvider interface {
	Compute(ctx context.Context) ([]prioritization.Suggestion, error)
	Suggest(ctx context.Context, status prioritization.Status) ([]prioritization.Suggestion, error)
	Refresh(ctx context.Context) ([]prioritization.Suggestion, error)
}

// PrioritizationService ranks kecamatan by engagement need.
type PrioritizationService struct {
	db    *sql.DB
	table *wilayah.Table
	cache cache.Cache
	ttl   time.Duration
}

// NewPrioritizationService creates a new PrioritizationService.
func NewPrioritizationService(db *sql.DB, table *wilayah.Table, c cache.Cache, ttl time.Duration) *PrioritizationService {
	if table == nil {
		table = wilayah.Default()
	}
	return &PrioritizationService{db: db, table: table, cache: c, ttl: ttl}
}

type regionTotals struct {
	votes, potential, participants, events int
}

// Compute scores every kecamatan of the table from the stored votes, events
// and attendees. The result is sorted by score, highest first.
func (s *PrioritizationService) Compute(ctx context.Context) ([]prioritization.Suggestion, error) {
	totals := make(map[string]*regionTotals)
	get := func(kec string) *regionTotals {
		t, ok := totals[kec]
		if !ok {
			t = &regionTotals{}
			totals[kec] = t
		}
		return t
	}

	err := scanGrouped(ctx, s.db, "SELECT kecamatan, COALESCE(SUM(votes), 0), COALESCE(SUM(potential), 0) FROM vote_results GROUP BY kecamatan",
		func(kec string, a, b int) { t := get(kec); t.votes, t.potential = a, b })
	if err != nil {
		return nil, err
	}
	err = scanGrouped(ctx, s.db, `SELECT e.location_kecamatan, COUNT(DISTINCT e.id), COUNT(a.id)
		FROM events e LEFT JOIN attendees a ON a.event_id = e.id GROUP BY e.location_kecamatan`,
		func(kec string, a, b int) { t := get(kec); t.events, t.participants = a, b })
	if err != nil {
		return nil, err
	}

	list := make([]prioritization.Suggestion, 0, len(s.table.Districts()))
	for _, d := range s.table.Districts() {
		t := get(d.Name)
		list = append(list, prioritization.Suggestion{
			Kecamatan:        d.Name,
			Dapil:            d.Dapil,
			Score:            prioritization.Score(t.votes, t.potential, t.events),
			ActualVotes:      t.votes,
			TargetVotes:      t.potential,
			ParticipantCount: t.participants,
			EventCount:       t.events,
			Reason:           prioritization.Reason(t.votes, t.potential, t.events),
		})
	}
	prioritization.Classify(list)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Kecamatan < list[j].Kecamatan
	})
	return list, nil
}

func scanGrouped(ctx context.Context, db *sql.DB, query string, fn func(key string, a, b int)) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var a, b int
		if err := rows.Scan(&key, &a, &b); err != nil {
			return err
		}
		fn(key, a, b)
	}
	return rows.Err()
}

// Suggest returns the cached snapshot filtered by status, computing it on a miss.
func (s *PrioritizationService) Suggest(ctx context.Context, status prioritization.Status) ([]prioritization.Suggestion, error) {
	var list []prioritization.Suggestion
	if s.cache != nil {
		err := s.cache.Get(ctx, cache.KeyPrioritization, &list)
		if err == nil {
			return prioritization.Filter(list, status), nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Msg("Prioritization cache read failed")
		}
	}
	list, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return prioritization.Filter(list, status), nil
}

// Refresh recomputes the snapshot and stores it in the cache.
func (s *PrioritizationService) Refresh(ctx context.Context) ([]prioritization.Suggestion, error) {
	list, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.KeyPrioritization, list, s.ttl); err != nil {
			log.Warn().Err(err).Msg("Prioritization cache write failed")
		}
	}
	return list, nil
}
