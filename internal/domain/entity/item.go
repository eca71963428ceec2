package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one purchased product or service on a receipt. It is immutable
// once handed to the builder. Quantity is kept as entered because the two
// entry paths disagree on format ("2" vs "2.0"); QuantityValue normalizes it.
type LineItem struct {
	Name      string          `json:"name"`
	Quantity  string          `json:"quantity,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	// VATRate overrides the template rate for this item (fraction, e.g. 0.24).
	VATRate *decimal.Decimal `json:"vat_rate,omitempty"`
}

// ParseLineItem builds a LineItem from the loosely formatted values the entry
// paths produce. The price may be a raw decimal ("2.50") or pre-formatted with
// a currency marker ("2.50€", "2.50 EUR"); both are accepted. A negative price
// is a contract violation.
func ParseLineItem(name, quantity, price string) (LineItem, error) {
	unit, err := ParseAmount(price)
	if err != nil {
		return LineItem{}, fmt.Errorf("item %q: %w", name, err)
	}
	if unit.IsNegative() {
		return LineItem{}, fmt.Errorf("item %q: price must not be negative", name)
	}
	return LineItem{Name: name, Quantity: strings.TrimSpace(quantity), UnitPrice: unit}, nil
}

// ParseAmount parses a monetary amount, tolerating a currency suffix or prefix
// ("2.50€", "€2.50", "2.50 EUR") and a decimal comma.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.Trim(cleaned, "€$£")
	cleaned = strings.TrimSuffix(strings.ToUpper(cleaned), "EUR")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q", s)
	}
	return d, nil
}

// QuantityValue returns the quantity as a decimal. An absent quantity counts
// as one unit; an unparseable quantity also degrades to one rather than
// failing the whole receipt.
func (i LineItem) QuantityValue() decimal.Decimal {
	if i.Quantity == "" {
		return decimal.NewFromInt(1)
	}
	q, err := decimal.NewFromString(strings.ReplaceAll(i.Quantity, ",", "."))
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return q
}

// Subtotal is quantity × unit price, exact.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.QuantityValue().Mul(i.UnitPrice)
}

// VATAmount is the VAT contribution of this line at the given rate.
func (i LineItem) VATAmount(rate decimal.Decimal) decimal.Decimal {
	return i.Subtotal().Mul(rate)
}

// Total is subtotal plus VAT at the given rate.
func (i LineItem) Total(rate decimal.Decimal) decimal.Decimal {
	return i.Subtotal().Add(i.VATAmount(rate))
}

// EffectiveRate is the item override when present, else the template default.
func (i LineItem) EffectiveRate(templateRate decimal.Decimal) decimal.Decimal {
	if i.VATRate != nil {
		return *i.VATRate
	}
	return templateRate
}
