package entity

import "github.com/shopspring/decimal"

// RateTotals accumulates the net amount and VAT collected at one rate.
type RateTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
}

// RateKey formats a VAT rate fraction as the percent string used to key the
// breakdown map ("0.24" -> "24", "0.255" -> "25.5").
func RateKey(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}

// VATBreakdown groups items by effective VAT rate (item override when present,
// else the template rate) and accumulates exact subtotal and VAT per bucket.
// Amounts stay unrounded; display rounding happens at formatting time only.
func VATBreakdown(items []LineItem, templateRate decimal.Decimal) map[string]RateTotals {
	breakdown := make(map[string]RateTotals, 1)
	for _, item := range items {
		rate := item.EffectiveRate(templateRate)
		key := RateKey(rate)
		bucket := breakdown[key]
		bucket.Subtotal = bucket.Subtotal.Add(item.Subtotal())
		bucket.VAT = bucket.VAT.Add(item.VATAmount(rate))
		breakdown[key] = bucket
	}
	return breakdown
}
