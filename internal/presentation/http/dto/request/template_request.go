package request

// UpdateLogoRequest points a company template at a new logo file in the logos
// directory.
type UpdateLogoRequest struct {
	LogoFile string `json:"logo_file" binding:"required"`
}

// UpdateCompanyInfoRequest is a partial company-info update; absent fields
// are left untouched.
type UpdateCompanyInfoRequest struct {
	Address      *string  `json:"address"`
	PostalCode   *string  `json:"postal_code"`
	City         *string  `json:"city"`
	Country      *string  `json:"country"`
	TaxID        *string  `json:"tax_id"`
	Phone        *string  `json:"phone"`
	Email        *string  `json:"email"`
	Website      *string  `json:"website"`
	OpeningHours []string `json:"opening_hours"`
}

// UpdateSettingRequest sets one dotted-key setting value.
type UpdateSettingRequest struct {
	Key   string      `json:"key" binding:"required"`
	Value interface{} `json:"value"`
}
