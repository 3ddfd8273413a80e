package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/xuri/excelize/v2"
)

func intPtr(v int) *int { return &v }

func sampleAttendees() []models.Attendee {
	return []models.Attendee{
		{Name: "Siti Aminah", NIK: "3204123456780001", Alamat: "Jl. Raya Soreang, 12", JenisKelamin: "P", Pekerjaan: "Guru", Usia: intPtr(34)},
		{Name: "Budi", NIK: "3204123456780002", JenisKelamin: "L", Usia: intPtr(60)},
		{Name: "Tanpa Usia", NIK: "3204123456780003"},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 10, 28, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		filter Filter
		format Format
		want   string
	}{
		{Filter{}, CSV, "peserta_kegiatan_2025-10-28.csv"},
		{Filter{Dapil: "JABAR 2-1"}, XLSX, "peserta_kegiatan_JABAR_2-1_2025-10-28.xlsx"},
		{Filter{Dapil: "JABAR 2-1", Kecamatan: "SOREANG"}, PDF, "peserta_kegiatan_SOREANG_2025-10-28.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.filter, tt.format, now); got != tt.want {
			t.Errorf("Filename(%+v) = %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": CSV, "CSV": CSV, "xlsx": XLSX, " pdf ": PDF} {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for docx")
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleAttendees())
	if rows[0].JenisKelamin != "Perempuan" || rows[0].Generasi != "Millennial" || rows[0].Usia != "34" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].JenisKelamin != "Laki-laki" || rows[1].Generasi != "Boomer" {
		t.Errorf("unexpected second row %+v", rows[1])
	}
	if rows[2].Usia != "" || rows[2].Generasi != "" || rows[2].JenisKelamin != "" {
		t.Errorf("expected blanks for missing data, got %+v", rows[2])
	}
}

func TestAttendees_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Attendees(&buf, CSV, sampleAttendees()); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Nama,NIK,Alamat,Jenis Kelamin,Pekerjaan,Usia,Generasi" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], `"Jl. Raya Soreang, 12"`) {
		t.Errorf("expected quoted address, got %q", lines[1])
	}
}

func TestAttendees_XLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Attendees(&buf, XLSX, sampleAttendees()); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 || rows[0][0] != "Nama" || rows[1][0] != "Siti Aminah" || rows[2][3] != "Laki-laki" {
		t.Errorf("unexpected workbook rows %v", rows)
	}
}

func TestAttendees_PDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Attendees(&buf, PDF, sampleAttendees()); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("expected PDF output")
	}
}

func TestAttendees_Empty(t *testing.T) {
	if err := Attendees(&bytes.Buffer{}, CSV, nil); !errors.Is(err, ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}
