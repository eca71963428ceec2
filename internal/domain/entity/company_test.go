package entity_test

import (
	"testing"

	"github.com/hrkone/kuitti-api/internal/domain/entity"
)

func validProfile() *entity.CompanyProfile {
	return &entity.CompanyProfile{
		Name:    "Kahvila Testi",
		VATRate: dec("0.24"),
		PaymentMethods: map[string]map[string]string{
			"cash": {"FI": "Käteinen", "EN": "Cash"},
			"card": {"FI": "Kortti"},
		},
	}
}

func TestCompanyValidate(t *testing.T) {
	if err := validProfile().Validate(); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}

	noName := validProfile()
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("expected error for empty name")
	}

	badRate := validProfile()
	badRate.VATRate = dec("1.0")
	if err := badRate.Validate(); err == nil {
		t.Error("expected error for rate 1.0")
	}

	negRate := validProfile()
	negRate.VATRate = dec("-0.1")
	if err := negRate.Validate(); err == nil {
		t.Error("expected error for negative rate")
	}
}

func TestPaymentLabel(t *testing.T) {
	p := validProfile()
	tests := []struct {
		method, lang, want string
	}{
		{"cash", "FI", "Käteinen"},
		{"cash", "EN", "Cash"},
		{"card", "FI", "Kortti"},
		{"card", "EN", "card"},    // untranslated falls back to the key
		{"bitcoin", "FI", "bitcoin"}, // unknown method stays as entered
	}
	for _, tt := range tests {
		if got := p.PaymentLabel(tt.method, tt.lang); got != tt.want {
			t.Errorf("PaymentLabel(%q, %q) = %q, want %q", tt.method, tt.lang, got, tt.want)
		}
	}
}

func TestLanguageAndCurrencyDefaults(t *testing.T) {
	p := validProfile()
	if got := p.Language(""); got != "EN" {
		t.Errorf("Language(\"\") = %q, want EN", got)
	}
	p.DefaultLanguage = "FI"
	if got := p.Language(""); got != "FI" {
		t.Errorf("Language(\"\") = %q, want profile default FI", got)
	}
	if got := p.Language("EN"); got != "EN" {
		t.Errorf("Language(EN) = %q, explicit request must win", got)
	}

	if got := p.Currency(); got != "EUR" {
		t.Errorf("Currency() = %q, want EUR default", got)
	}
	p.DefaultCurrency = "SEK"
	if got := p.Currency(); got != "SEK" {
		t.Errorf("Currency() = %q, want SEK", got)
	}
}
