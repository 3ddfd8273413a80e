package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/cache"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet column headers, matched case-insensitively.
const (
	colDapil     = "dapil"
	colKecamatan = "kecamatan"
	colDesa      = "desa"
	colDusun     = "dusun"
	colRTRW      = "rt/rw"
	colVotes     = "jumlah suara"
	colPotential = "potensi suara"
)

var requiredColumns = []string{colKecamatan, colDesa, colVotes}

// ImportServiceProvider defines the interface for vote import services.
type ImportServiceProvider interface {
	Import(ctx context.Context, filename string, r io.Reader, actorID *string) (models.ImportLog, error)
	History(limit int) ([]models.ImportLog, error)
}

// ImportService loads historical vote results from spreadsheets.
type ImportService struct {
	db       *sql.DB
	table    *wilayah.Table
	cache    cache.Cache
	logs     ActivityLogServiceProvider
	maxBytes int64
}

// NewImportService creates a new ImportService. Files larger than maxBytes are rejected.
func NewImportService(db *sql.DB, table *wilayah.Table, c cache.Cache, logs ActivityLogServiceProvider, maxBytes int64) *ImportService {
	if table == nil {
		table = wilayah.Default()
	}
	return &ImportService{db: db, table: table, cache: c, logs: logs, maxBytes: maxBytes}
}

// Import parses an .xlsx or .csv file and stores every valid row. Invalid
// rows are reported in the returned log and do not abort the import.
func (s *ImportService) Import(ctx context.Context, filename string, r io.Reader, actorID *string) (models.ImportLog, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".csv" {
		return models.ImportLog{}, fmt.Errorf("%s: %w", ext, ErrUnsupportedFile)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return models.ImportLog{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return models.ImportLog{}, ErrFileTooLarge
	}

	importLog := models.ImportLog{
		ID:         uuid.New().String(),
		Filename:   filepath.Base(filename),
		UploadedBy: actorID,
		CreatedAt:  time.Now().UTC(),
	}

	var rows [][]string
	if ext == ".xlsx" {
		rows, err = readXLSX(data)
	} else {
		rows, err = readCSV(data)
	}

	var results []models.VoteResult
	if err != nil {
		importLog.Errors = []models.RowError{{Row: 0, Message: err.Error()}}
	} else {
		results, importLog.Errors = s.parseRows(importLog.ID, rows)
	}
	if err := ctx.Err(); err != nil {
		return models.ImportLog{}, err
	}

	importLog.RecordCount = len(results)
	importLog.ErrorCount = len(importLog.Errors)
	switch {
	case importLog.RecordCount == 0:
		importLog.Status = models.ImportFailed
	case importLog.ErrorCount > 0:
		importLog.Status = models.ImportPartial
	default:
		importLog.Status = models.ImportSuccess
	}
	completed := time.Now().UTC()
	importLog.CompletedAt = &completed

	if err := s.store(importLog, results); err != nil {
		return models.ImportLog{}, err
	}

	if importLog.RecordCount > 0 {
		invalidateAnalytics(s.cache)
	}
	level := LevelInfo
	if importLog.Status != models.ImportSuccess {
		level = LevelWarn
	}
	record(s.logs, "import.completed", level, fmt.Sprintf("Import %s: %s, %d rows, %d errors",
		importLog.Filename, importLog.Status, importLog.RecordCount, importLog.ErrorCount), actorID)
	log.Info().Str("import_id", importLog.ID).Str("status", importLog.Status).Int("records", importLog.RecordCount).Msg("Vote import finished")
	return importLog, nil
}

func (s *ImportService) store(importLog models.ImportLog, results []models.VoteResult) error {
	var errorsJSON []byte
	if len(importLog.Errors) > 0 {
		var err error
		if errorsJSON, err = json.Marshal(importLog.Errors); err != nil {
			return err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO import_logs (id, filename, status, record_count, error_count, errors_json, uploaded_by, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		importLog.ID, importLog.Filename, importLog.Status, importLog.RecordCount, importLog.ErrorCount,
		nullableString(errorsJSON), importLog.UploadedBy, importLog.CreatedAt, importLog.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to write import log: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO vote_results (id, import_id, dapil, kecamatan, desa, dusun, rt_rw, votes, potential, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, v := range results {
		if _, err := stmt.Exec(v.ID, v.ImportID, v.Dapil, v.Kecamatan, v.Desa, v.Dusun, v.RTRW, v.Votes, v.Potential, v.CreatedAt); err != nil {
			return fmt.Errorf("failed to write vote result: %w", err)
		}
	}
	return tx.Commit()
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func (s *ImportService) parseRows(importID string, rows [][]string) ([]models.VoteResult, []models.RowError) {
	if len(rows) == 0 {
		return nil, []models.RowError{{Row: 0, Message: "file is empty"}}
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, []models.RowError{{Row: 1, Message: "missing required columns: " + strings.Join(missing, ", ")}}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	now := time.Now().UTC()
	var results []models.VoteResult
	var rowErrors []models.RowError
	for n, row := range rows[1:] {
		rowNum := n + 2
		if isBlank(row) {
			continue
		}

		district, ok := s.table.Lookup(cell(row, colKecamatan))
		if !ok {
			rowErrors = append(rowErrors, models.RowError{Row: rowNum, Message: fmt.Sprintf("unknown kecamatan %q", cell(row, colKecamatan))})
			continue
		}
		desa, ok := s.table.CanonicalVillage(district.Name, cell(row, colDesa))
		if !ok {
			rowErrors = append(rowErrors, models.RowError{Row: rowNum, Message: fmt.Sprintf("desa %q is not in %s", cell(row, colDesa), district.Name)})
			continue
		}
		if dapil := cell(row, colDapil); dapil != "" && !strings.EqualFold(dapil, district.Dapil) {
			rowErrors = append(rowErrors, models.RowError{Row: rowNum, Message: fmt.Sprintf("%s belongs to %s, not %s", district.Name, district.Dapil, dapil)})
			continue
		}
		votes, err := parseCount(cell(row, colVotes))
		if err != nil {
			rowErrors = append(rowErrors, models.RowError{Row: rowNum, Message: "invalid Jumlah Suara: " + err.Error()})
			continue
		}
		var potential int
		if raw := cell(row, colPotential); raw != "" {
			if potential, err = parseCount(raw); err != nil {
				rowErrors = append(rowErrors, models.RowError{Row: rowNum, Message: "invalid Potensi Suara: " + err.Error()})
				continue
			}
		}

		results = append(results, models.VoteResult{
			ID:        uuid.New().String(),
			ImportID:  importID,
			Dapil:     district.Dapil,
			Kecamatan: district.Name,
			Desa:      desa,
			Dusun:     cell(row, colDusun),
			RTRW:      cell(row, colRTRW),
			Votes:     votes,
			Potential: potential,
			CreatedAt: now,
		})
	}
	return results, rowErrors
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseCount accepts non-negative integers with "." or "," thousands separators.
func parseCount(raw string) (int, error) {
	cleaned := strings.NewReplacer(".", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%q is negative", raw)
	}
	return n, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if first, _, _ := bytes.Cut(data, []byte("\n")); bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		r.Comma = ';'
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse csv: %w", err)
	}
	return rows, nil
}

// History returns the most recent imports.
func (s *ImportService) History(limit int) ([]models.ImportLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, filename, status, record_count, error_count, errors_json, uploaded_by, created_at, completed_at
		FROM import_logs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.ImportLog{}
	for rows.Next() {
		var l models.ImportLog
		var errorsJSON sql.NullString
		if err := rows.Scan(&l.ID, &l.Filename, &l.Status, &l.RecordCount, &l.ErrorCount, &errorsJSON, &l.UploadedBy, &l.CreatedAt, &l.CompletedAt); err != nil {
			return nil, err
		}
		if errorsJSON.Valid {
			if err := json.Unmarshal([]byte(errorsJSON.String), &l.Errors); err != nil {
				log.Warn().Err(err).Str("import_id", l.ID).Msg("Failed to decode import errors")
			}
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
