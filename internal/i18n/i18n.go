// Package i18n holds the receipt label table for the two supported receipt
// languages. The table is passed into the builder explicitly; there is no
// process-wide translation state.
package i18n

// Supported language codes.
const (
	LangFI = "FI"
	LangEN = "EN"
)

// Table resolves localized receipt labels.
type Table struct {
	labels map[string]map[string]string
}

// Default returns the built-in FI/EN label table.
func Default() *Table {
	return &Table{labels: map[string]map[string]string{
		LangFI: {
			"vat_id":        "Y-tunnus:",
			"phone":         "Puh:",
			"opening_hours": "Aukioloajat",
			"receipt_no":    "Kuitti nro:",
			"subtotal":      "Veroton yhteensä:",
			"vat":           "ALV",
			"total":         "YHTEENSÄ:",
			"payment":       "Maksutapa:",
			"thanks":        "Kiitos käynnistä!",
			"welcome":       "Tervetuloa uudelleen!",
			"card":          "Kortti:",
			"pan":           "Kortin numero:",
			"auth":          "Varmennus:",
			"transaction":   "Tapahtuma:",
			"terminal":      "Pääte:",
			"merchant":      "Kauppias:",
			"entry_mode":    "Lukutapa:",
		},
		LangEN: {
			"vat_id":        "VAT ID:",
			"phone":         "Phone:",
			"opening_hours": "Opening hours",
			"receipt_no":    "Receipt no:",
			"subtotal":      "Subtotal:",
			"vat":           "VAT",
			"total":         "TOTAL:",
			"payment":       "Payment:",
			"thanks":        "Thank you for your visit!",
			"welcome":       "Welcome again!",
			"card":          "Card:",
			"pan":           "Card number:",
			"auth":          "Auth code:",
			"transaction":   "Trans ID:",
			"terminal":      "Terminal:",
			"merchant":      "Merchant:",
			"entry_mode":    "Entry mode:",
		},
	}}
}

// Label returns the label for key in the given language, falling back to
// English and finally to the key itself so a missing entry never breaks a
// receipt.
func (t *Table) Label(language, key string) string {
	if m, ok := t.labels[language]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := t.labels[LangEN][key]; ok {
		return s
	}
	return key
}

// Normalize maps arbitrary language input to a supported code, defaulting to
// English.
func Normalize(language string) string {
	switch language {
	case LangFI, "fi", "Fi":
		return LangFI
	default:
		return LangEN
	}
}
