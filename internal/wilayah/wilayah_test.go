package wilayah

import (
	"reflect"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()

	if got := len(tbl.KecamatanNames()); got != 31 {
		t.Errorf("expected 31 kecamatan, got %d", got)
	}

	dapil := tbl.DapilOptions()
	want := []string{"JABAR 2-1", "JABAR 2-2", "JABAR 2-3", "JABAR 2-4", "JABAR 2-5", "JABAR 2-6"}
	if !reflect.DeepEqual(dapil, want) {
		t.Errorf("dapil options = %v, want %v", dapil, want)
	}

	kelurahan := 0
	for _, d := range tbl.Districts() {
		if len(d.Villages) == 0 {
			t.Errorf("kecamatan %s has no villages", d.Name)
		}
		if d.Lat == 0 || d.Lng == 0 {
			t.Errorf("kecamatan %s has no coordinates", d.Name)
		}
		for _, v := range d.Villages {
			if v.Type == Kelurahan {
				kelurahan++
			}
		}
	}
	if kelurahan != 10 {
		t.Errorf("expected 10 kelurahan, got %d", kelurahan)
	}
}

func TestLookups(t *testing.T) {
	tbl := Default()

	if dapil, ok := tbl.DapilOf("CILEUNYI"); !ok || dapil != "JABAR 2-4" {
		t.Errorf("DapilOf(CILEUNYI) = %q, %v", dapil, ok)
	}
	if _, ok := tbl.DapilOf("ATLANTIS"); ok {
		t.Error("expected unknown kecamatan to miss")
	}
	if v := tbl.VillagesByKecamatan("ATLANTIS"); len(v) != 0 {
		t.Errorf("expected no villages for unknown kecamatan, got %v", v)
	}
	if !tbl.HasVillage("cileunyi", "cinunuk") {
		t.Error("expected case-insensitive village match")
	}
	if tbl.HasVillage("CILEUNYI", "Soreang") {
		t.Error("Soreang is not in CILEUNYI")
	}
	for _, d := range tbl.KecamatanByDapil("JABAR 2-5") {
		if d.Dapil != "JABAR 2-5" {
			t.Errorf("KecamatanByDapil returned %s in %s", d.Name, d.Dapil)
		}
	}
}

func TestNormalizeKecamatan(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cileunyi", "CILEUNYI"},
		{"  kec. soreang ", "SOREANG"},
		{"KEC BANJARAN", "BANJARAN"},
		{"Kecamatan Ibun", "IBUN"},
		{"Pasir Jambu", "PASIRJAMBU"},
		{"SOLOKAN JERUK", "SOLOKANJERUK"},
	}
	for _, tt := range tests {
		if got := NormalizeKecamatan(tt.in); got != tt.want {
			t.Errorf("NormalizeKecamatan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerationCategory(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{-1, "Unknown"},
		{0, "Gen Z"},
		{25, "Gen Z"},
		{26, "Millennial"},
		{41, "Millennial"},
		{42, "Gen X"},
		{57, "Gen X"},
		{58, "Boomer"},
		{76, "Boomer"},
		{77, "Silent"},
	}
	for _, tt := range tests {
		if got := GenerationCategory(tt.age); got != tt.want {
			t.Errorf("GenerationCategory(%d) = %s, want %s", tt.age, got, tt.want)
		}
	}
}
