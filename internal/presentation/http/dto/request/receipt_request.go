package request

// ReceiptItemRequest is one line item of a receipt request. Price and
// quantity arrive as strings because the entry surfaces disagree on number
// formats; the domain layer parses them.
type ReceiptItemRequest struct {
	Name     string   `json:"name" binding:"required"`
	Quantity string   `json:"quantity"`
	Price    string   `json:"price" binding:"required"`
	VATRate  *float64 `json:"vat_rate"`
}

// CardDetailsRequest is the optional illustrative card block a caller can
// attach to a card payment.
type CardDetailsRequest struct {
	CardType      string `json:"card_type"`
	MaskedPAN     string `json:"masked_pan"`
	AuthCode      string `json:"auth_code"`
	TransactionID string `json:"transaction_id"`
	TerminalID    string `json:"terminal_id"`
	MerchantID    string `json:"merchant_id"`
	EntryMode     string `json:"entry_mode"`
}

// BuildReceiptRequest is the shared body of the preview and print endpoints.
type BuildReceiptRequest struct {
	Company       string               `json:"company" binding:"required"`
	Items         []ReceiptItemRequest `json:"items"`
	PaymentMethod string               `json:"payment_method"`
	Language      string               `json:"language"`
	CustomFooter  []string             `json:"custom_footer"`
	Card          *CardDetailsRequest  `json:"card"`
}
