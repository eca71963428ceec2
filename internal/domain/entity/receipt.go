package entity

import "github.com/shopspring/decimal"

// ItemRow is one item line of a built receipt. Price is already formatted for
// display (2 decimals plus currency suffix).
type ItemRow struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Price    string `json:"price"`
	// VATNote annotates the row with its rate when items carry individual
	// rates, e.g. "(ALV 14%)". Empty in template-rate mode.
	VATNote string `json:"vat_note,omitempty"`
}

// Totals holds the computed receipt totals, exact (unrounded). Display
// rounding to 2 decimals happens at render time.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// ReceiptDocument is the builder's structured output, decoupled from both the
// HTTP layer and the printer. It is created fresh per build call and never
// mutated afterwards.
type ReceiptDocument struct {
	Company   string `json:"company"`
	ReceiptID string `json:"receipt_id,omitempty"`
	Language  string `json:"language"`

	Header []string  `json:"header"`
	Items  []ItemRow `json:"items"`
	Footer []string  `json:"footer"`

	LogoText  []string `json:"logo_text,omitempty"`
	LogoImage string   `json:"logo_image,omitempty"`

	Totals       Totals                `json:"totals"`
	VATBreakdown map[string]RateTotals `json:"vat_breakdown"`

	// Width is the character width the document was laid out for.
	Width int  `json:"width"`
	Cut   bool `json:"cut"`
}

// SimulatedCardDetails is the illustrative card-transaction block appended
// after a card payment line. The values are synthetic; nothing here ever comes
// from a payment processor.
type SimulatedCardDetails struct {
	CardType      string `json:"card_type,omitempty"`
	MaskedPAN     string `json:"masked_pan,omitempty"`
	AuthCode      string `json:"auth_code,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	TerminalID    string `json:"terminal_id,omitempty"`
	MerchantID    string `json:"merchant_id,omitempty"`
	EntryMode     string `json:"entry_mode,omitempty"`
}
