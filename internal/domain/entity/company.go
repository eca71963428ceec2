package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultVATRate is the fallback rate for templates without an override
// (Finnish standard rate).
var DefaultVATRate = decimal.RequireFromString("0.24")

// CompanyProfile carries the identity and fiscal data of one merchant,
// loaded from the template store. The receipt engine treats it as read-only;
// the template editor mutates it through the registry, never in place.
type CompanyProfile struct {
	Name       string `json:"name" yaml:"name"`
	Address    string `json:"address,omitempty" yaml:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
	TaxID      string `json:"tax_id,omitempty" yaml:"tax_id,omitempty"`
	Phone      string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty"`
	Website    string `json:"website,omitempty" yaml:"website,omitempty"`

	DefaultLanguage string `json:"default_language,omitempty" yaml:"default_language,omitempty"`
	DefaultCurrency string `json:"default_currency,omitempty" yaml:"default_currency,omitempty"`

	// VATRate is a fraction in [0, 1), e.g. 0.24 for 24%.
	VATRate decimal.Decimal `json:"vat_rate" yaml:"vat_rate"`

	// PaymentMethods maps a method key to per-language display labels,
	// e.g. "cash" -> {"FI": "Käteinen", "EN": "Cash"}.
	PaymentMethods map[string]map[string]string `json:"payment_methods,omitempty" yaml:"payment_methods,omitempty"`

	OpeningHours []string `json:"opening_hours,omitempty" yaml:"opening_hours,omitempty"`

	// DefaultFooter maps a language code to a footer line that replaces the
	// built-in thank-you pair.
	DefaultFooter map[string]string `json:"default_footer,omitempty" yaml:"default_footer,omitempty"`

	// LogoFile names a file under the logos directory (.txt ASCII art or
	// .png/.jpg raster). LogoText/LogoImage hold the resolved form.
	LogoFile  string   `json:"logo_file,omitempty" yaml:"logo_file,omitempty"`
	LogoText  []string `json:"logo_text,omitempty" yaml:"-"`
	LogoImage string   `json:"logo_image,omitempty" yaml:"-"`
}

// Validate checks the profile invariants.
func (c *CompanyProfile) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("company profile: name is required")
	}
	if c.VATRate.IsNegative() || c.VATRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("company profile %q: vat_rate %s outside [0, 1)", c.Name, c.VATRate)
	}
	return nil
}

// PaymentLabel resolves the display text for a payment method in the given
// language. An untranslated or unknown method key falls back to the raw key.
func (c *CompanyProfile) PaymentLabel(method, language string) string {
	labels, ok := c.PaymentMethods[method]
	if !ok {
		return method
	}
	if text, ok := labels[language]; ok && text != "" {
		return text
	}
	return method
}

// Language returns the requested language when set, else the profile default,
// else English.
func (c *CompanyProfile) Language(requested string) string {
	if requested != "" {
		return requested
	}
	if c.DefaultLanguage != "" {
		return c.DefaultLanguage
	}
	return "EN"
}

// Currency returns the profile currency, defaulting to EUR.
func (c *CompanyProfile) Currency() string {
	if c.DefaultCurrency == "" {
		return "EUR"
	}
	return c.DefaultCurrency
}
