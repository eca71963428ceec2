package service

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrkone/kuitti-api/internal/config"
	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/internal/i18n"
	"github.com/hrkone/kuitti-api/pkg/apperror"
	"github.com/hrkone/kuitti-api/pkg/render"
)

// VAT accounting modes.
const (
	VATModeInclusive = "inclusive"
	VATModeExclusive = "exclusive"
)

// ReceiptService composes receipt documents from a company template and a set
// of line items. It never talks to a printer; the printer service consumes its
// output.
type ReceiptService struct {
	templates repository.TemplateRepository
	settings  repository.SettingsRepository
	labels    *i18n.Table
	cfg       *config.ReceiptConfig
	now       func() time.Time
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	templates repository.TemplateRepository,
	settings repository.SettingsRepository,
	cfg *config.ReceiptConfig,
) *ReceiptService {
	return &ReceiptService{
		templates: templates,
		settings:  settings,
		labels:    i18n.Default(),
		cfg:       cfg,
		now:       time.Now,
	}
}

// BuildInput is one receipt composition request.
type BuildInput struct {
	Company       string
	Items         []entity.LineItem
	PaymentMethod string
	Language      string
	// CustomFooter replaces the template footer when non-empty.
	CustomFooter []string
	// Card is the illustrative card block to print after a card payment.
	// When nil and simulation is enabled, a synthetic block is generated.
	Card *entity.SimulatedCardDetails
}

// Preview builds the document with the receipt ID the next print would get,
// without consuming it.
func (s *ReceiptService) Preview(input BuildInput) (*entity.ReceiptDocument, error) {
	return s.Build(input, s.settings.PeekReceiptID(input.Company))
}

// Build composes the document under the given receipt ID. The printer service
// calls this after committing the ID; previews pass the peeked one.
func (s *ReceiptService) Build(input BuildInput, receiptID string) (*entity.ReceiptDocument, error) {
	profile := s.templates.Get(input.Company)
	if profile == nil {
		return nil, apperror.NewNotFoundError("Company template")
	}

	lang := i18n.Normalize(profile.Language(input.Language))
	currency := profile.Currency()
	width := s.settings.GetInt("receipt.width", s.cfg.Width)
	if width <= 0 {
		width = 42
	}

	totals, breakdown := s.computeTotals(input.Items, profile.VATRate, currency)

	doc := &entity.ReceiptDocument{
		Company:      profile.Name,
		ReceiptID:    receiptID,
		Language:     lang,
		Header:       s.buildHeader(profile, lang, receiptID),
		Items:        s.buildItems(input.Items, lang, currency),
		Footer:       s.buildFooter(input, profile, lang, totals, breakdown, receiptID, width),
		LogoText:     profile.LogoText,
		LogoImage:    profile.LogoImage,
		Totals:       totals,
		VATBreakdown: breakdown,
		Width:        width,
		Cut:          s.cfg.Cut,
	}
	return doc, nil
}

// HasCompany reports whether a template exists for the company name.
func (s *ReceiptService) HasCompany(name string) bool {
	return s.templates.Get(name) != nil
}

// computeTotals accumulates receipt totals and the per-rate breakdown. In
// inclusive mode entered prices already contain VAT and the net amount is
// derived per rate; in exclusive mode prices are net and VAT is added on top.
func (s *ReceiptService) computeTotals(
	items []entity.LineItem,
	templateRate decimal.Decimal,
	currency string,
) (entity.Totals, map[string]entity.RateTotals) {
	totals := entity.Totals{Currency: currency}

	if s.cfg.VATMode == VATModeExclusive {
		breakdown := entity.VATBreakdown(items, templateRate)
		for _, bucket := range breakdown {
			totals.Subtotal = totals.Subtotal.Add(bucket.Subtotal)
			totals.VAT = totals.VAT.Add(bucket.VAT)
		}
		totals.Total = totals.Subtotal.Add(totals.VAT)
		return totals, breakdown
	}

	one := decimal.NewFromInt(1)
	breakdown := make(map[string]entity.RateTotals, 1)
	for _, item := range items {
		rate := item.EffectiveRate(templateRate)
		gross := item.Subtotal()
		net := gross.Div(one.Add(rate))
		vat := gross.Sub(net)

		key := entity.RateKey(rate)
		bucket := breakdown[key]
		bucket.Subtotal = bucket.Subtotal.Add(net)
		bucket.VAT = bucket.VAT.Add(vat)
		breakdown[key] = bucket

		totals.Subtotal = totals.Subtotal.Add(net)
		totals.VAT = totals.VAT.Add(vat)
		totals.Total = totals.Total.Add(gross)
	}
	return totals, breakdown
}

func (s *ReceiptService) buildHeader(profile *entity.CompanyProfile, lang, receiptID string) []string {
	header := []string{profile.Name}
	if profile.Address != "" {
		header = append(header, profile.Address)
	}
	if city := strings.TrimSpace(profile.PostalCode + " " + profile.City); city != "" {
		header = append(header, city)
	}
	if profile.Country != "" {
		header = append(header, profile.Country)
	}
	if profile.TaxID != "" {
		header = append(header, s.labels.Label(lang, "vat_id")+" "+profile.TaxID)
	}
	if profile.Phone != "" {
		header = append(header, s.labels.Label(lang, "phone")+" "+profile.Phone)
	}
	if profile.Website != "" {
		header = append(header, profile.Website)
	}

	if len(profile.OpeningHours) > 0 {
		header = append(header, "", s.labels.Label(lang, "opening_hours"))
		hours := profile.OpeningHours
		if len(hours) > maxOpeningHourLines {
			hours = hours[:maxOpeningHourLines]
		}
		header = append(header, hours...)
	}

	header = append(header, "", s.now().Format("02.01.2006 15:04:05"))
	if receiptID != "" {
		header = append(header, s.labels.Label(lang, "receipt_no")+"\t"+receiptID)
	}
	return header
}

// maxOpeningHourLines caps the opening-hours block so a runaway template
// cannot flood the header.
const maxOpeningHourLines = 7

func (s *ReceiptService) buildItems(items []entity.LineItem, lang, currency string) []entity.ItemRow {
	rows := make([]entity.ItemRow, 0, len(items))
	for _, item := range items {
		row := entity.ItemRow{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    s.money(item.Subtotal(), currency),
		}
		if item.VATRate != nil {
			row.VATNote = fmt.Sprintf("(%s %s%%)", s.labels.Label(lang, "vat"), entity.RateKey(*item.VATRate))
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *ReceiptService) buildFooter(
	input BuildInput,
	profile *entity.CompanyProfile,
	lang string,
	totals entity.Totals,
	breakdown map[string]entity.RateTotals,
	receiptID string,
	width int,
) []string {
	currency := totals.Currency
	footer := []string{
		s.labels.Label(lang, "subtotal") + "\t" + s.money(totals.Subtotal, currency),
	}
	for _, key := range sortedRateKeys(breakdown) {
		label := fmt.Sprintf("%s %s%%:", s.labels.Label(lang, "vat"), key)
		footer = append(footer, label+"\t"+s.money(breakdown[key].VAT, currency))
	}
	footer = append(footer, s.labels.Label(lang, "total")+"\t"+s.money(totals.Total, currency))

	if input.PaymentMethod != "" {
		footer = append(footer, "",
			s.labels.Label(lang, "payment")+"\t"+profile.PaymentLabel(input.PaymentMethod, lang))
		if card := s.cardDetails(input); card != nil {
			footer = append(footer, s.cardBlock(card, lang)...)
		}
	}

	footer = append(footer, "")
	for _, line := range s.closingLines(input.CustomFooter, profile, lang) {
		footer = append(footer, render.Center(line, width))
	}

	if s.cfg.Barcode && receiptID != "" {
		footer = append(footer, "", ">BARCODE CODE128 "+receiptID+">")
	}
	return footer
}

// closingLines picks the thank-you block: an explicit request footer wins,
// then the template default for the language, then the built-in pair.
func (s *ReceiptService) closingLines(custom []string, profile *entity.CompanyProfile, lang string) []string {
	if len(custom) > 0 {
		return custom
	}
	if line := profile.DefaultFooter[lang]; line != "" {
		return []string{line}
	}
	return []string{
		s.labels.Label(lang, "thanks"),
		s.labels.Label(lang, "welcome"),
	}
}

// cardDetails returns the card block for a card payment, generating a
// synthetic one when the caller supplied none and simulation is on.
func (s *ReceiptService) cardDetails(input BuildInput) *entity.SimulatedCardDetails {
	if !isCardMethod(input.PaymentMethod) {
		return nil
	}
	if input.Card != nil {
		return input.Card
	}
	if !s.cfg.SimulateCard {
		return nil
	}
	return generateCardDetails()
}

func (s *ReceiptService) cardBlock(card *entity.SimulatedCardDetails, lang string) []string {
	var block []string
	pair := func(key, value string) {
		if value != "" {
			block = append(block, s.labels.Label(lang, key)+"\t"+value)
		}
	}
	pair("card", card.CardType)
	pair("pan", card.MaskedPAN)
	pair("auth", card.AuthCode)
	pair("transaction", card.TransactionID)
	pair("terminal", card.TerminalID)
	pair("merchant", card.MerchantID)
	pair("entry_mode", card.EntryMode)
	return block
}

func isCardMethod(method string) bool {
	m := strings.ToLower(method)
	return strings.Contains(m, "card") || strings.Contains(m, "kortti")
}

var (
	cardTypes  = []string{"Visa Debit", "Visa Credit", "Mastercard Debit", "Mastercard Credit"}
	entryModes = []string{"Contactless", "Chip"}
)

// generateCardDetails produces an obviously synthetic card block. Nothing
// here ever comes from a payment terminal.
func generateCardDetails() *entity.SimulatedCardDetails {
	return &entity.SimulatedCardDetails{
		CardType:      cardTypes[rand.Intn(len(cardTypes))],
		MaskedPAN:     fmt.Sprintf("**** **** **** %04d", rand.Intn(10000)),
		AuthCode:      fmt.Sprintf("%06d", rand.Intn(1000000)),
		TransactionID: fmt.Sprintf("%09d", rand.Intn(1000000000)),
		TerminalID:    fmt.Sprintf("P%05d", rand.Intn(100000)),
		MerchantID:    fmt.Sprintf("%07d", rand.Intn(10000000)),
		EntryMode:     entryModes[rand.Intn(len(entryModes))],
	}
}

// sortedRateKeys orders breakdown keys by numeric rate so the VAT lines of a
// mixed-rate receipt print in a stable ascending order.
func sortedRateKeys(breakdown map[string]entity.RateTotals) []string {
	keys := make([]string, 0, len(breakdown))
	for key := range breakdown {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := decimal.NewFromString(keys[i])
		b, errB := decimal.NewFromString(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a.LessThan(b)
	})
	return keys
}

// money formats an exact amount for display: two decimals plus the currency
// marker ("6.20€" for euros, "6.20 SEK" otherwise).
func (s *ReceiptService) money(d decimal.Decimal, currency string) string {
	amount := d.StringFixed(2)
	if currency == "" || currency == "EUR" {
		return amount + "€"
	}
	return amount + " " + currency
}

// RenderLines lays a built document out as fixed-width text lines.
func RenderLines(doc *entity.ReceiptDocument, mode render.WrapMode) ([]string, error) {
	return render.Render(toRenderDocument(doc), doc.Width, mode)
}

// RenderHTML lays a built document out as the HTML edit preview.
func RenderHTML(doc *entity.ReceiptDocument) (string, error) {
	return render.RenderHTML(toRenderDocument(doc))
}

func toRenderDocument(doc *entity.ReceiptDocument) render.Document {
	items := make([]render.Item, 0, len(doc.Items))
	for _, row := range doc.Items {
		items = append(items, render.Item{
			Name:     row.Name,
			Quantity: row.Quantity,
			Price:    row.Price,
			Note:     row.VATNote,
		})
	}
	return render.Document{
		Header:    doc.Header,
		Items:     items,
		Footer:    doc.Footer,
		LogoText:  doc.LogoText,
		LogoImage: doc.LogoImage,
		Width:     doc.Width,
	}
}
