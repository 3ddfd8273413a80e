package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/cache"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// AnalyticsServiceProvider defines the interface for analytics services.
type AnalyticsServiceProvider interface {
	Heatmap(ctx context.Context) ([]models.HeatmapPoint, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

// AnalyticsService aggregates votes and participation for the dashboard.
type AnalyticsService struct {
	db    *sql.DB
	table *wilayah.Table
	cache cache.Cache
	ttl   time.Duration
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(db *sql.DB, table *wilayah.Table, c cache.Cache, ttl time.Duration) *AnalyticsService {
	if table == nil {
		table = wilayah.Default()
	}
	return &AnalyticsService{db: db, table: table, cache: c, ttl: ttl}
}

// cached loads key into dest, or fills it with compute and stores it.
func (s *AnalyticsService) cached(ctx context.Context, key string, dest any, compute func() error) error {
	if s.cache != nil {
		err := s.cache.Get(ctx, key, dest)
		if err == nil {
			return nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("key", key).Msg("Analytics cache read failed")
		}
	}
	if err := compute(); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dest, s.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Analytics cache write failed")
		}
	}
	return nil
}

// Heatmap returns one point per kecamatan with data. Intensity is the vote
// count relative to the busiest kecamatan.
func (s *AnalyticsService) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	var points []models.HeatmapPoint
	err := s.cached(ctx, cache.KeyHeatmap, &points, func() error {
		byKec := make(map[string]*models.HeatmapPoint)
		point := func(kec string) *models.HeatmapPoint {
			p, ok := byKec[kec]
			if !ok {
				p = &models.HeatmapPoint{Kecamatan: kec}
				byKec[kec] = p
			}
			return p
		}
		if err := scanGrouped(ctx, s.db, "SELECT kecamatan, COALESCE(SUM(votes), 0), COALESCE(SUM(potential), 0) FROM vote_results GROUP BY kecamatan",
			func(kec string, v, p int) { pt := point(kec); pt.Votes, pt.Potential = v, p }); err != nil {
			return err
		}
		if err := scanGrouped(ctx, s.db, "SELECT kecamatan, COUNT(1), 0 FROM attendees WHERE kecamatan != '' GROUP BY kecamatan",
			func(kec string, n, _ int) { point(wilayah.NormalizeKecamatan(kec)).Participants += n }); err != nil {
			return err
		}

		maxVotes := 0
		for _, p := range byKec {
			if p.Votes > maxVotes {
				maxVotes = p.Votes
			}
		}
		points = make([]models.HeatmapPoint, 0, len(byKec))
		// Table order keeps the output stable.
		for _, d := range s.table.Districts() {
			p, ok := byKec[d.Name]
			if !ok {
				continue
			}
			p.Dapil, p.Lat, p.Lng = d.Dapil, d.Lat, d.Lng
			if maxVotes > 0 {
				p.Intensity = float64(p.Votes) / float64(maxVotes)
			}
			points = append(points, *p)
		}
		return nil
	})
	return points, err
}

// Dashboard returns KPI totals and chart series.
func (s *AnalyticsService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var d models.Dashboard
	err := s.cached(ctx, cache.KeyDashboard, &d, func() error {
		d = models.Dashboard{}
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM events").Scan(&d.TotalEvents); err != nil {
			return err
		}
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM attendees").Scan(&d.TotalParticipants); err != nil {
			return err
		}
		if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(votes), 0), COALESCE(SUM(potential), 0) FROM vote_results").
			Scan(&d.TotalVotes, &d.TotalPotential); err != nil {
			return err
		}

		var err error
		if d.VotesByDapil, err = labelValues(ctx, s.db, "SELECT dapil, SUM(votes) FROM vote_results GROUP BY dapil ORDER BY dapil"); err != nil {
			return err
		}
		if d.MonthlyParticipants, err = labelValues(ctx, s.db, `SELECT substr(e.date, 1, 7), COUNT(a.id)
			FROM events e LEFT JOIN attendees a ON a.event_id = e.id GROUP BY substr(e.date, 1, 7) ORDER BY 1`); err != nil {
			return err
		}
		if d.ParticipantsByType, err = labelValues(ctx, s.db, `SELECT COALESCE(t.name, 'Lainnya'), COUNT(a.id)
			FROM attendees a JOIN events e ON e.id = a.event_id LEFT JOIN activity_types t ON t.id = e.activity_type_id
			GROUP BY 1 ORDER BY 2 DESC`); err != nil {
			return err
		}
		d.Generations, err = s.generations(ctx)
		return err
	})
	return d, err
}

func (s *AnalyticsService) generations(ctx context.Context) ([]models.LabelValue, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT usia, COUNT(1) FROM attendees WHERE usia IS NOT NULL GROUP BY usia")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order := []string{"Gen Z", "Millennial", "Gen X", "Boomer", "Silent"}
	counts := make(map[string]int)
	for rows.Next() {
		var age, n int
		if err := rows.Scan(&age, &n); err != nil {
			return nil, err
		}
		counts[wilayah.GenerationCategory(age)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]models.LabelValue, 0, len(order))
	for _, g := range order {
		out = append(out, models.LabelValue{Label: g, Value: counts[g]})
	}
	return out, nil
}

func labelValues(ctx context.Context, db *sql.DB, query string) ([]models.LabelValue, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.LabelValue{}
	for rows.Next() {
		var lv models.LabelValue
		if err := rows.Scan(&lv.Label, &lv.Value); err != nil {
			return nil, err
		}
		out = append(out, lv)
	}
	return out, rows.Err()
}
