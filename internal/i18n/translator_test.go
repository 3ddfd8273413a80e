package i18n

import "testing"

func TestTranslator_T(t *testing.T) {
	tr := NewTranslator("id")

	tests := []struct {
		name   string
		locale string
		key    string
		data   map[string]any
		want   string
	}{
		{"default locale", "", SessionExpired, nil, "Sesi Anda telah berakhir. Silakan login kembali."},
		{"english", "en", SessionExpired, nil, "Your session has expired. Please log in again."},
		{"template data", "id", "field_min_length", map[string]any{"Field": "Nama", "Min": 2}, "Nama minimal 2 karakter"},
		{"unknown locale falls back", "fr", "nik_digits", nil, "NIK harus berupa angka"},
		{"unknown key returns key", "id", "no_such_key", nil, "no_such_key"},
		{"empty key", "id", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.T(tt.locale, tt.key, tt.data); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
			}
		})
	}
}

func TestNewTranslator_InvalidLocale(t *testing.T) {
	tr := NewTranslator("not a locale!")
	if got := tr.T("", SessionRefreshFailed, nil); got != "Gagal memperbarui sesi. Anda akan diarahkan ke halaman login." {
		t.Errorf("expected Indonesian fallback, got %q", got)
	}
}
