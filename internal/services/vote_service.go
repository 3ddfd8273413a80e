package services

import (
	"database/sql"
	"strings"

	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// VoteFilter narrows List. Search matches kecamatan, desa or dusun.
type VoteFilter struct {
	Search    string
	Dapil     string
	Kecamatan string
}

// VoteServiceProvider defines the interface for vote result services.
type VoteServiceProvider interface {
	List(filter VoteFilter) ([]models.VoteResult, error)
	Summary() (models.VoteSummary, error)
}

// VoteService reads imported vote results.
type VoteService struct {
	db *sql.DB
}

// NewVoteService creates a new VoteService.
func NewVoteService(db *sql.DB) *VoteService {
	return &VoteService{db: db}
}

// List returns vote rows ordered by region.
func (s *VoteService) List(filter VoteFilter) ([]models.VoteResult, error) {
	query := "SELECT id, import_id, dapil, kecamatan, desa, dusun, rt_rw, votes, potential, created_at FROM vote_results WHERE 1=1"
	var args []any
	if filter.Dapil != "" {
		query += " AND dapil = ?"
		args = append(args, filter.Dapil)
	}
	if filter.Kecamatan != "" {
		query += " AND kecamatan = ?"
		args = append(args, wilayah.NormalizeKecamatan(filter.Kecamatan))
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query += " AND (LOWER(kecamatan) LIKE ? OR LOWER(desa) LIKE ? OR LOWER(dusun) LIKE ?)"
		args = append(args, like, like, like)
	}
	query += " ORDER BY dapil, kecamatan, desa, dusun"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.VoteResult{}
	for rows.Next() {
		var v models.VoteResult
		if err := rows.Scan(&v.ID, &v.ImportID, &v.Dapil, &v.Kecamatan, &v.Desa, &v.Dusun, &v.RTRW, &v.Votes, &v.Potential, &v.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

// Summary totals every vote row.
func (s *VoteService) Summary() (models.VoteSummary, error) {
	var sum models.VoteSummary
	err := s.db.QueryRow(`SELECT COALESCE(SUM(votes), 0), COALESCE(SUM(potential), 0),
		COUNT(DISTINCT kecamatan), COUNT(DISTINCT kecamatan || '/' || desa) FROM vote_results`).
		Scan(&sum.TotalVotes, &sum.TotalPotential, &sum.Kecamatan, &sum.Desa)
	return sum, err
}
