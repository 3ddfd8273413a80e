// Package wilayah holds the static region table (dapil → kecamatan → desa/kelurahan)
// and the pure cascade rules used to keep region filters consistent.
package wilayah

import (
	"sort"
	"strings"
)

// VillageType distinguishes a rural desa from an urban kelurahan.
type VillageType string

const (
	Desa      VillageType = "Desa"
	Kelurahan VillageType = "Kelurahan"
)

// Village is the lowest region tier.
type Village struct {
	Name string      `json:"name"`
	Type VillageType `json:"type"`
}

// District is a kecamatan together with its parent dapil and villages.
type District struct {
	Name     string    `json:"name"`
	Dapil    string    `json:"dapil"`
	Villages []Village `json:"villages"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
}

// Table is an immutable lookup over a set of districts.
type Table struct {
	districts []District
	byName    map[string]int
	dapil     []string
}

var defaultTable = NewTable(bandung)

// Default returns the Kabupaten Bandung table.
func Default() *Table {
	return defaultTable
}

// NewTable indexes districts. Dapil options are sorted; district order is preserved.
func NewTable(districts []District) *Table {
	t := &Table{
		districts: districts,
		byName:    make(map[string]int, len(districts)),
	}
	seen := make(map[string]bool)
	for i, d := range districts {
		t.byName[d.Name] = i
		if !seen[d.Dapil] {
			seen[d.Dapil] = true
			t.dapil = append(t.dapil, d.Dapil)
		}
	}
	sort.Strings(t.dapil)
	return t
}

// DapilOptions lists every dapil in the table.
func (t *Table) DapilOptions() []string {
	return append([]string(nil), t.dapil...)
}

// Districts returns a copy of all districts.
func (t *Table) Districts() []District {
	return append([]District(nil), t.districts...)
}

// KecamatanNames lists every kecamatan name in table order.
func (t *Table) KecamatanNames() []string {
	names := make([]string, 0, len(t.districts))
	for _, d := range t.districts {
		names = append(names, d.Name)
	}
	return names
}

// KecamatanByDapil returns the districts belonging to dapil.
func (t *Table) KecamatanByDapil(dapil string) []District {
	var out []District
	for _, d := range t.districts {
		if d.Dapil == dapil {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds a district by name. The name is normalized first.
func (t *Table) Lookup(kecamatan string) (District, bool) {
	i, ok := t.byName[NormalizeKecamatan(kecamatan)]
	if !ok {
		return District{}, false
	}
	return t.districts[i], true
}

// VillagesByKecamatan returns the villages of kecamatan, or nil when unknown.
func (t *Table) VillagesByKecamatan(kecamatan string) []Village {
	d, ok := t.Lookup(kecamatan)
	if !ok {
		return nil
	}
	return append([]Village(nil), d.Villages...)
}

// DapilOf returns the parent dapil of kecamatan.
func (t *Table) DapilOf(kecamatan string) (string, bool) {
	d, ok := t.Lookup(kecamatan)
	if !ok {
		return "", false
	}
	return d.Dapil, true
}

// Coordinates returns the centroid of kecamatan.
func (t *Table) Coordinates(kecamatan string) (lat, lng float64, ok bool) {
	d, ok := t.Lookup(kecamatan)
	if !ok {
		return 0, 0, false
	}
	return d.Lat, d.Lng, true
}

// HasVillage reports whether desa belongs to kecamatan, ignoring case.
func (t *Table) HasVillage(kecamatan, desa string) bool {
	_, ok := t.CanonicalVillage(kecamatan, desa)
	return ok
}

// CanonicalVillage returns the table spelling of desa within kecamatan.
func (t *Table) CanonicalVillage(kecamatan, desa string) (string, bool) {
	d, ok := t.Lookup(kecamatan)
	if !ok {
		return "", false
	}
	desa = strings.TrimSpace(desa)
	for _, v := range d.Villages {
		if strings.EqualFold(v.Name, desa) {
			return v.Name, true
		}
	}
	return "", false
}

var kecamatanAliases = map[string]string{
	"PASIR JAMBU":   "PASIRJAMBU",
	"SOLOKAN JERUK": "SOLOKANJERUK",
}

// NormalizeKecamatan upper-cases a kecamatan name, strips a "KEC." prefix and
// resolves known spelling aliases.
func NormalizeKecamatan(raw string) string {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.TrimPrefix(key, "KECAMATAN ")
	key = strings.TrimPrefix(key, "KEC. ")
	key = strings.TrimPrefix(key, "KEC ")
	key = strings.TrimSpace(key)
	if alias, ok := kecamatanAliases[key]; ok {
		return alias
	}
	return key
}

// GenerationCategory buckets an age into a generation label.
func GenerationCategory(age int) string {
	switch {
	case age < 0:
		return "Unknown"
	case age <= 25:
		return "Gen Z"
	case age <= 41:
		return "Millennial"
	case age <= 57:
		return "Gen X"
	case age <= 76:
		return "Boomer"
	default:
		return "Silent"
	}
}
