// Package export renders attendee rosters as CSV, Excel or PDF downloads.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// Format is an output file type.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("no data to export")

// ParseFormat accepts csv, xlsx or pdf. Empty defaults to csv.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return CSV, nil
	case CSV, XLSX, PDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filter is the region selection an export was made with.
type Filter struct {
	Dapil     string
	Kecamatan string
	Desa      string
}

// Filename builds peserta_kegiatan[_<kecamatan|dapil>]_YYYY-MM-DD.<ext>.
// The kecamatan wins over the dapil. Spaces become underscores.
func Filename(filter Filter, format Format, now time.Time) string {
	label := ""
	switch {
	case filter.Kecamatan != "":
		label = "_" + filter.Kecamatan
	case filter.Dapil != "":
		label = "_" + filter.Dapil
	}
	label = strings.ReplaceAll(label, " ", "_")
	return fmt.Sprintf("peserta_kegiatan%s_%s.%s", label, now.Format("2006-01-02"), format)
}

// Headers are the exported columns, in order.
var Headers = []string{"Nama", "NIK", "Alamat", "Jenis Kelamin", "Pekerjaan", "Usia", "Generasi"}

// Row is one exported attendee.
type Row struct {
	Nama         string `csv:"Nama"`
	NIK          string `csv:"NIK"`
	Alamat       string `csv:"Alamat"`
	JenisKelamin string `csv:"Jenis Kelamin"`
	Pekerjaan    string `csv:"Pekerjaan"`
	Usia         string `csv:"Usia"`
	Generasi     string `csv:"Generasi"`
}

func (r Row) values() []string {
	return []string{r.Nama, r.NIK, r.Alamat, r.JenisKelamin, r.Pekerjaan, r.Usia, r.Generasi}
}

// Rows converts attendees to export rows.
func Rows(attendees []models.Attendee) []Row {
	rows := make([]Row, 0, len(attendees))
	for _, a := range attendees {
		r := Row{Nama: a.Name, NIK: a.NIK, Alamat: a.Alamat, Pekerjaan: a.Pekerjaan}
		switch a.JenisKelamin {
		case "L":
			r.JenisKelamin = "Laki-laki"
		case "P":
			r.JenisKelamin = "Perempuan"
		}
		if a.Usia != nil && *a.Usia > 0 {
			r.Usia = strconv.Itoa(*a.Usia)
			r.Generasi = wilayah.GenerationCategory(*a.Usia)
		}
		rows = append(rows, r)
	}
	return rows
}

// Attendees writes attendees to w in format.
func Attendees(w io.Writer, format Format, attendees []models.Attendee) error {
	if len(attendees) == 0 {
		return ErrNoRows
	}
	rows := Rows(attendees)
	switch format {
	case CSV:
		return writeCSV(w, rows)
	case XLSX:
		return writeXLSX(w, rows)
	case PDF:
		return writePDF(w, rows)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
