package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/export"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// ExportHandler streams attendee rosters as file downloads.
type ExportHandler struct {
	attendees services.AttendeeServiceProvider
	table     *wilayah.Table
	now       func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(attendees services.AttendeeServiceProvider, table *wilayah.Table) *ExportHandler {
	if table == nil {
		table = wilayah.Default()
	}
	return &ExportHandler{attendees: attendees, table: table, now: time.Now}
}

// Attendees renders the filtered roster in the requested format.
func (h *ExportHandler) Attendees(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := attendeeFilter(r)
	attendees, err := h.attendees.ListAll(filter)
	if err != nil {
		writeServiceError(w, log.Error(), err, "Failed to retrieve attendees")
		return
	}

	// Rendered to a buffer first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.Attendees(&buf, format, attendees); err != nil {
		writeServiceError(w, log.Error().Str("format", string(format)), err, "Failed to export attendees")
		return
	}

	name := export.Filename(h.filenameFilter(filter), format, h.now())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("Failed to write export")
	}
}

// filenameFilter keeps only region names found in the table, in their
// canonical spelling.
func (h *ExportHandler) filenameFilter(filter services.AttendeeFilter) export.Filter {
	var out export.Filter
	for _, k := range filter.Kecamatan {
		if d, ok := h.table.Lookup(k); ok {
			out.Kecamatan = d.Name
			break
		}
	}
	for _, dapil := range h.table.DapilOptions() {
		if dapil == filter.Dapil {
			out.Dapil = dapil
			break
		}
	}
	return out
}
