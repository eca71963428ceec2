package i18n_test

import (
	"testing"

	"github.com/hrkone/kuitti-api/internal/i18n"
)

func TestLabelLookup(t *testing.T) {
	table := i18n.Default()
	tests := []struct {
		lang, key, want string
	}{
		{"FI", "total", "YHTEENSÄ:"},
		{"EN", "total", "TOTAL:"},
		{"FI", "vat_id", "Y-tunnus:"},
		{"EN", "vat_id", "VAT ID:"},
		{"FI", "thanks", "Kiitos käynnistä!"},
		{"SV", "total", "TOTAL:"},        // unsupported language falls back to EN
		{"FI", "no_such_key", "no_such_key"}, // unknown key falls back to itself
	}
	for _, tt := range tests {
		if got := table.Label(tt.lang, tt.key); got != tt.want {
			t.Errorf("Label(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"FI", "FI"},
		{"fi", "FI"},
		{"Fi", "FI"},
		{"EN", "EN"},
		{"sv", "EN"},
		{"", "EN"},
	}
	for _, tt := range tests {
		if got := i18n.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
