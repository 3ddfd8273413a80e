package handlers

import (
	"net/http"

	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// WilayahHandler serves the region table and the dropdown cascade.
type WilayahHandler struct {
	table *wilayah.Table
}

// NewWilayahHandler creates a new WilayahHandler.
func NewWilayahHandler(table *wilayah.Table) *WilayahHandler {
	return &WilayahHandler{table: table}
}

// Dapil lists every electoral district.
func (h *WilayahHandler) Dapil(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.table.DapilOptions())
}

// Kecamatan lists districts, limited to one dapil when given.
func (h *WilayahHandler) Kecamatan(w http.ResponseWriter, r *http.Request) {
	dapil := r.URL.Query().Get("dapil")
	if dapil == "" || dapil == wilayah.All {
		writeJSON(w, http.StatusOK, h.table.Districts())
		return
	}
	districts := h.table.KecamatanByDapil(dapil)
	if districts == nil {
		districts = []wilayah.District{}
	}
	writeJSON(w, http.StatusOK, districts)
}

// Desa lists the villages of a kecamatan.
func (h *WilayahHandler) Desa(w http.ResponseWriter, r *http.Request) {
	kecamatan := r.URL.Query().Get("kecamatan")
	if kecamatan == "" {
		writeError(w, http.StatusBadRequest, "kecamatan is required")
		return
	}
	if _, ok := h.table.Lookup(kecamatan); !ok {
		writeError(w, http.StatusNotFound, "unknown kecamatan")
		return
	}
	writeJSON(w, http.StatusOK, h.table.VillagesByKecamatan(kecamatan))
}

type resolvePayload struct {
	Selection wilayah.Selection `json:"selection"`
	Level     wilayah.Level     `json:"level,omitempty"`
	Value     string            `json:"value,omitempty"`
}

// Resolve applies the cascade to a selection. With a level it first applies
// that single dropdown change.
func (h *WilayahHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var payload resolvePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	switch payload.Level {
	case "":
		writeJSON(w, http.StatusOK, wilayah.Resolve(h.table, payload.Selection))
	case wilayah.LevelDapil, wilayah.LevelKecamatan, wilayah.LevelDesa:
		writeJSON(w, http.StatusOK, wilayah.Select(h.table, payload.Selection, payload.Level, payload.Value))
	default:
		writeError(w, http.StatusBadRequest, "unknown level "+string(payload.Level))
	}
}
