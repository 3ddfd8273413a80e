// Package validation holds the field rules for login, attendee, event and
// activity type input. Every validator returns nil when the input is valid.
package validation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sabadesa/sabadesa-be/internal/i18n"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

// Limits.
const (
	NIKLength         = 16
	MaxNISLength      = 20
	MinNameLength     = 2
	MinTitleLength    = 5
	MinDescriptionLen = 10
	MaxAge            = 150
	MinPasswordLength = 8
)

// Identifier types.
const (
	IdentifierNIK = "NIK"
	IdentifierNIS = "NIS"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Errors maps a field name to its message.
type Errors map[string]string

// Error joins every field message in field order.
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validator applies the rules with messages in a given locale.
type Validator struct {
	tr     *i18n.Translator
	locale string
	table  *wilayah.Table
}

// New returns a Validator. A nil translator uses the Indonesian default.
func New(tr *i18n.Translator, locale string, table *wilayah.Table) *Validator {
	if tr == nil {
		tr = i18n.Default()
	}
	if table == nil {
		table = wilayah.Default()
	}
	return &Validator{tr: tr, locale: locale, table: table}
}

var std = New(nil, "id", nil)

// UseLocale switches the package-level validators to locale. It is meant to
// be called once during start-up.
func UseLocale(locale string) {
	std = New(nil, locale, nil)
}

func (v *Validator) msg(key string, data map[string]any) string {
	return v.tr.T(v.locale, key, data)
}

func (v *Validator) required(errs Errors, field, label, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs[field] = v.msg("field_required", map[string]any{"Field": label})
		return false
	}
	return true
}

func (v *Validator) minLen(errs Errors, field, label, value string, min int) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		errs[field] = v.msg("field_min_length", map[string]any{"Field": label, "Min": min})
	}
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validates credentials input.
func (v *Validator) Login(in LoginInput) error {
	errs := Errors{}
	v.required(errs, "username", "Username", in.Username)
	v.required(errs, "password", "Password", in.Password)
	return errs.orNil()
}

// Password validates a new password.
func (v *Validator) Password(field, password string) error {
	errs := Errors{}
	if len(password) < MinPasswordLength {
		errs[field] = v.msg("field_min_length", map[string]any{"Field": "Password", "Min": MinPasswordLength})
	}
	return errs.orNil()
}

// AttendeeInput is one participant submitted for an event.
type AttendeeInput struct {
	Name           string `json:"name"`
	NIK            string `json:"nik"`
	IdentifierType string `json:"identifier_type"`
	Kecamatan      string `json:"kecamatan"`
	Desa           string `json:"desa"`
	Alamat         string `json:"alamat"`
	JenisKelamin   string `json:"jenis_kelamin"`
	Pekerjaan      string `json:"pekerjaan"`
	Usia           *int   `json:"usia"`
}

// Attendee validates a participant. IdentifierType defaults to NIK.
func (v *Validator) Attendee(in AttendeeInput) error {
	errs := Errors{}
	v.attendee(errs, "", in)
	return errs.orNil()
}

func (v *Validator) attendee(errs Errors, prefix string, in AttendeeInput) {
	if v.required(errs, prefix+"name", "Nama", in.Name) {
		v.minLen(errs, prefix+"name", "Nama", in.Name, MinNameLength)
	}

	idType := strings.ToUpper(strings.TrimSpace(in.IdentifierType))
	if idType == "" {
		idType = IdentifierNIK
	}
	nik := strings.TrimSpace(in.NIK)
	switch idType {
	case IdentifierNIK:
		if v.required(errs, prefix+"nik", "NIK/NIS", nik) {
			if !digitsOnly.MatchString(nik) {
				errs[prefix+"nik"] = v.msg("nik_digits", nil)
			} else if len(nik) != NIKLength {
				errs[prefix+"nik"] = v.msg("nik_length", nil)
			}
		}
	case IdentifierNIS:
		if v.required(errs, prefix+"nik", "NIK/NIS", nik) {
			if !digitsOnly.MatchString(nik) {
				errs[prefix+"nik"] = v.msg("nis_digits", nil)
			} else if len(nik) > MaxNISLength {
				errs[prefix+"nik"] = v.msg("nis_length", nil)
			}
		}
	default:
		errs[prefix+"identifier_type"] = v.msg("identifier_type_invalid", nil)
	}

	if g := strings.ToUpper(strings.TrimSpace(in.JenisKelamin)); g != "" && g != "L" && g != "P" {
		errs[prefix+"jenis_kelamin"] = v.msg("gender_invalid", nil)
	}
	if in.Usia != nil && (*in.Usia < 0 || *in.Usia > MaxAge) {
		errs[prefix+"usia"] = v.msg("age_range", nil)
	}

	if in.Kecamatan != "" {
		if _, ok := v.table.Lookup(in.Kecamatan); !ok {
			errs[prefix+"kecamatan"] = v.msg("kecamatan_unknown", nil)
		} else if in.Desa != "" && !v.table.HasVillage(in.Kecamatan, in.Desa) {
			errs[prefix+"desa"] = v.msg("desa_unknown", nil)
		}
	}
}

// EventInput is an engagement activity.
type EventInput struct {
	Title              string          `json:"title"`
	Date               string          `json:"date"`
	ActivityTypeID     string          `json:"activity_type_id"`
	LocationKecamatan  string          `json:"location_kecamatan"`
	LocationKelurahan  string          `json:"location_kelurahan"`
	Description        string          `json:"description"`
	TargetParticipants int             `json:"target_participants"`
	Attendees          []AttendeeInput `json:"attendees,omitempty"`
}

// ParseDate accepts a calendar date or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Event validates an event and its nested attendees. Attendee errors are
// keyed as attendees[i].field.
func (v *Validator) Event(in EventInput) error {
	errs := Errors{}
	if v.required(errs, "title", "Judul kegiatan", in.Title) {
		v.minLen(errs, "title", "Judul kegiatan", in.Title, MinTitleLength)
	}
	if _, err := ParseDate(in.Date); err != nil {
		errs["date"] = v.msg("date_invalid", nil)
	}
	if v.required(errs, "location_kecamatan", "Kecamatan", in.LocationKecamatan) {
		if _, ok := v.table.Lookup(in.LocationKecamatan); !ok {
			errs["location_kecamatan"] = v.msg("kecamatan_unknown", nil)
		} else if v.required(errs, "location_kelurahan", "Kelurahan/Desa", in.LocationKelurahan) &&
			!v.table.HasVillage(in.LocationKecamatan, in.LocationKelurahan) {
			errs["location_kelurahan"] = v.msg("desa_unknown", nil)
		}
	} else {
		v.required(errs, "location_kelurahan", "Kelurahan/Desa", in.LocationKelurahan)
	}
	if v.required(errs, "description", "Deskripsi", in.Description) {
		v.minLen(errs, "description", "Deskripsi", in.Description, MinDescriptionLen)
	}
	for i, a := range in.Attendees {
		v.attendee(errs, "attendees["+strconv.Itoa(i)+"].", a)
	}
	return errs.orNil()
}

// ActivityTypeInput is an activity type master record.
type ActivityTypeInput struct {
	Name            string `json:"name"`
	MaxParticipants int    `json:"max_participants"`
}

// ActivityType validates an activity type.
func (v *Validator) ActivityType(in ActivityTypeInput) error {
	errs := Errors{}
	v.required(errs, "name", "Nama", in.Name)
	if in.MaxParticipants < 1 {
		errs["max_participants"] = v.msg("max_participants_invalid", nil)
	}
	return errs.orNil()
}

// Login validates with the default Indonesian validator.
func Login(in LoginInput) error { return std.Login(in) }

// Password validates with the default Indonesian validator.
func Password(field, password string) error { return std.Password(field, password) }

// Attendee validates with the default Indonesian validator.
func Attendee(in AttendeeInput) error { return std.Attendee(in) }

// Event validates with the default Indonesian validator.
func Event(in EventInput) error { return std.Event(in) }

// ActivityType validates with the default Indonesian validator.
func ActivityType(in ActivityTypeInput) error { return std.ActivityType(in) }
