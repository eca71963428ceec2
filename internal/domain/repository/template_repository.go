package repository

import "github.com/hrkone/kuitti-api/internal/domain/entity"

// CompanyInfoUpdate is a partial update of a company profile; nil fields are
// left untouched.
type CompanyInfoUpdate struct {
	Address      *string   `json:"address,omitempty"`
	PostalCode   *string   `json:"postal_code,omitempty"`
	City         *string   `json:"city,omitempty"`
	Country      *string   `json:"country,omitempty"`
	TaxID        *string   `json:"tax_id,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Website      *string   `json:"website,omitempty"`
	OpeningHours []string  `json:"opening_hours,omitempty"`
}

// TemplateRepository is the company/template registry backed by the template
// store (one structured file per company).
type TemplateRepository interface {
	// Get returns the profile for a company name, or nil when absent.
	Get(name string) *entity.CompanyProfile
	// ListNames returns all loaded company names in a stable sorted order.
	ListNames() []string
	// UpdateLogo persists a new logo_file reference for the company and
	// refreshes the in-memory copy.
	UpdateLogo(name, logoFile string) error
	// UpdateCompanyInfo persists a partial company-info update and refreshes
	// the in-memory copy.
	UpdateCompanyInfo(name string, update CompanyInfoUpdate) error
	// Reload re-reads every template file from disk.
	Reload() error
}
