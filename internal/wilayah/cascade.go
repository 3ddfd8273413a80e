package wilayah

// All is the sentinel dropdown value meaning "no selection".
const All = "ALL"

// Level names one of the three cascading dropdowns.
type Level string

const (
	LevelDapil     Level = "dapil"
	LevelKecamatan Level = "kecamatan"
	LevelDesa      Level = "desa"
)

// Selection is the current value of each dropdown. Empty means unselected.
type Selection struct {
	Dapil     string `json:"dapil"`
	Kecamatan string `json:"kecamatan"`
	Desa      string `json:"desa"`
}

// Options is the set of allowed values per level together with the
// selection after invalid downstream values were cleared.
type Options struct {
	Dapil     []string  `json:"dapil"`
	Kecamatan []string  `json:"kecamatan"`
	Desa      []string  `json:"desa"`
	Selection Selection `json:"selection"`
}

// Resolve computes the allowed values for every level from sel and drops any
// selected value that is no longer reachable from its parent. A kecamatan with
// a known dapil fills in an empty dapil.
func Resolve(t *Table, sel Selection) Options {
	sel = clean(sel)

	if sel.Kecamatan != "" {
		d, ok := t.Lookup(sel.Kecamatan)
		switch {
		case !ok:
			sel.Kecamatan, sel.Desa = "", ""
		case sel.Dapil == "":
			sel.Kecamatan = d.Name
			sel.Dapil = d.Dapil
		case sel.Dapil != d.Dapil:
			sel.Kecamatan, sel.Desa = "", ""
		default:
			sel.Kecamatan = d.Name
		}
	}

	opts := Options{Dapil: t.DapilOptions()}
	if sel.Dapil != "" && !contains(opts.Dapil, sel.Dapil) {
		sel = Selection{}
	}

	if sel.Dapil == "" {
		opts.Kecamatan = t.KecamatanNames()
	} else {
		for _, d := range t.KecamatanByDapil(sel.Dapil) {
			opts.Kecamatan = append(opts.Kecamatan, d.Name)
		}
	}

	if sel.Kecamatan == "" {
		sel.Desa = ""
		opts.Desa = []string{}
	} else {
		for _, v := range t.VillagesByKecamatan(sel.Kecamatan) {
			opts.Desa = append(opts.Desa, v.Name)
		}
		if sel.Desa != "" {
			name, ok := t.CanonicalVillage(sel.Kecamatan, sel.Desa)
			if ok {
				sel.Desa = name
			} else {
				sel.Desa = ""
			}
		}
	}

	if opts.Kecamatan == nil {
		opts.Kecamatan = []string{}
	}
	opts.Selection = sel
	return opts
}

// Select applies a single dropdown change to prev. Changing a level clears
// every level below it before the cascade is resolved.
func Select(t *Table, prev Selection, level Level, value string) Options {
	if value == All {
		value = ""
	}
	next := prev
	switch level {
	case LevelDapil:
		next = Selection{Dapil: value}
	case LevelKecamatan:
		next.Kecamatan = value
		next.Desa = ""
		if value != "" {
			if dapil, ok := t.DapilOf(value); ok && next.Dapil == "" {
				next.Dapil = dapil
			}
		}
	case LevelDesa:
		next.Desa = value
	}
	return Resolve(t, next)
}

func clean(sel Selection) Selection {
	if sel.Dapil == All {
		sel.Dapil = ""
	}
	if sel.Kecamatan == All {
		sel.Kecamatan = ""
	}
	if sel.Desa == All {
		sel.Desa = ""
	}
	return sel
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
