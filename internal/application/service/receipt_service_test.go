package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrkone/kuitti-api/internal/config"
	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/internal/domain/repository"
)

type stubTemplates struct {
	profiles map[string]*entity.CompanyProfile
}

func (s *stubTemplates) Get(name string) *entity.CompanyProfile { return s.profiles[name] }
func (s *stubTemplates) ListNames() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	return names
}
func (s *stubTemplates) UpdateLogo(string, string) error { return nil }
func (s *stubTemplates) UpdateCompanyInfo(string, repository.CompanyInfoUpdate) error {
	return nil
}
func (s *stubTemplates) Reload() error { return nil }

type stubSettings struct {
	peeks   int
	commits int
	seq     int
}

func (s *stubSettings) Get(string) interface{}           { return nil }
func (s *stubSettings) GetInt(_ string, def int) int     { return def }
func (s *stubSettings) GetString(_, def string) string   { return def }
func (s *stubSettings) Set(string, interface{}) error    { return nil }
func (s *stubSettings) PeekReceiptID(string) string {
	s.peeks++
	return fmt.Sprintf("20260831-%04d", s.seq+1)
}
func (s *stubSettings) CommitReceiptID(string) (string, error) {
	s.commits++
	s.seq++
	return fmt.Sprintf("20260831-%04d", s.seq), nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProfile() *entity.CompanyProfile {
	return &entity.CompanyProfile{
		Name:       "Kahvila Testi",
		Address:    "Testikatu 1",
		PostalCode: "00100",
		City:       "Helsinki",
		TaxID:      "1234567-8",
		Phone:      "+358 40 123 4567",
		VATRate:    dec("0.24"),
		PaymentMethods: map[string]map[string]string{
			"cash": {"FI": "Käteinen", "EN": "Cash"},
			"card": {"FI": "Kortti", "EN": "Card"},
		},
		DefaultLanguage: "FI",
	}
}

func newTestService(cfg *config.ReceiptConfig, profiles ...*entity.CompanyProfile) (*ReceiptService, *stubSettings) {
	templates := &stubTemplates{profiles: make(map[string]*entity.CompanyProfile)}
	for _, p := range profiles {
		templates.profiles[p.Name] = p
	}
	settings := &stubSettings{}
	svc := NewReceiptService(templates, settings, cfg)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)
	}
	return svc, settings
}

func exclusiveConfig() *config.ReceiptConfig {
	return &config.ReceiptConfig{Width: 42, VATMode: VATModeExclusive, Cut: true}
}

func inclusiveConfig() *config.ReceiptConfig {
	return &config.ReceiptConfig{Width: 42, VATMode: VATModeInclusive, Cut: true}
}

func coffeeInput(price string) BuildInput {
	return BuildInput{
		Company: "Kahvila Testi",
		Items: []entity.LineItem{
			{Name: "Kahvi", Quantity: "2", UnitPrice: dec(price)},
		},
		PaymentMethod: "cash",
		Language:      "EN",
	}
}

func TestBuildExclusiveTotals(t *testing.T) {
	svc, _ := newTestService(exclusiveConfig(), testProfile())

	doc, err := svc.Build(coffeeInput("2.50"), "20260831-0001")
	if err != nil {
		t.Fatal(err)
	}

	if !doc.Totals.Subtotal.Equal(dec("5.00")) {
		t.Errorf("Subtotal = %s, want 5.00", doc.Totals.Subtotal)
	}
	if !doc.Totals.VAT.Equal(dec("1.20")) {
		t.Errorf("VAT = %s, want 1.20", doc.Totals.VAT)
	}
	if !doc.Totals.Total.Equal(dec("6.20")) {
		t.Errorf("Total = %s, want 6.20", doc.Totals.Total)
	}
}

func TestBuildInclusiveTotals(t *testing.T) {
	svc, _ := newTestService(inclusiveConfig(), testProfile())

	// Entered price 3.10 contains 24% VAT: gross 6.20, net 5.00.
	doc, err := svc.Build(coffeeInput("3.10"), "20260831-0001")
	if err != nil {
		t.Fatal(err)
	}

	if !doc.Totals.Total.Equal(dec("6.20")) {
		t.Errorf("Total = %s, want 6.20", doc.Totals.Total)
	}
	if !doc.Totals.Subtotal.Equal(dec("5.00")) {
		t.Errorf("Subtotal = %s, want 5.00", doc.Totals.Subtotal)
	}
	if !doc.Totals.VAT.Equal(dec("1.20")) {
		t.Errorf("VAT = %s, want 1.20", doc.Totals.VAT)
	}
	if !doc.VATBreakdown["24"].VAT.Equal(dec("1.20")) {
		t.Errorf("breakdown VAT = %s, want 1.20", doc.VATBreakdown["24"].VAT)
	}
}

func TestBuildUnknownCompany(t *testing.T) {
	svc, _ := newTestService(exclusiveConfig(), testProfile())

	input := coffeeInput("2.50")
	input.Company = "Nonexistent Oy"
	if _, err := svc.Build(input, "x"); err == nil {
		t.Error("expected error for unknown company")
	}
}

func TestBuildEmptyItems(t *testing.T) {
	svc, _ := newTestService(exclusiveConfig(), testProfile())

	input := coffeeInput("2.50")
	input.Items = nil
	doc, err := svc.Build(input, "20260831-0001")
	if err != nil {
		t.Fatalf("empty items must not fail: %v", err)
	}
	if len(doc.Items) != 0 {
		t.Errorf("expected no item rows, got %d", len(doc.Items))
	}
	if !doc.Totals.Total.IsZero() {
		t.Errorf("Total = %s, want 0", doc.Totals.Total)
	}
	if !strings.Contains(strings.Join(doc.Footer, "\n"), "TOTAL:\t0.00€") {
		t.Errorf("footer missing zero total: %v", doc.Footer)
	}
}

func TestBuildHeaderContent(t *testing.T) {
	profile := testProfile()
	profile.OpeningHours = []string{"Ma-Pe 8-18", "La 10-16"}
	svc, _ := newTestService(exclusiveConfig(), profile)

	input := coffeeInput("2.50")
	input.Language = "FI"
	doc, err := svc.Build(input, "20260831-0007")
	if err != nil {
		t.Fatal(err)
	}

	header := strings.Join(doc.Header, "\n")
	for _, want := range []string{
		"Kahvila Testi",
		"Testikatu 1",
		"00100 Helsinki",
		"Y-tunnus: 1234567-8",
		"Puh: +358 40 123 4567",
		"Aukioloajat",
		"Ma-Pe 8-18",
		"31.08.2026 14:30:05",
		"Kuitti nro:\t20260831-0007",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q:\n%s", want, header)
		}
	}
	if doc.Header[0] != "Kahvila Testi" {
		t.Errorf("company name must lead the header, got %q", doc.Header[0])
	}
}

func TestBuildOpeningHoursCapped(t *testing.T) {
	profile := testProfile()
	for i := 0; i < 10; i++ {
		profile.OpeningHours = append(profile.OpeningHours, fmt.Sprintf("Day %d", i))
	}
	svc, _ := newTestService(exclusiveConfig(), profile)

	doc, err := svc.Build(coffeeInput("2.50"), "x")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, line := range doc.Header {
		if strings.HasPrefix(line, "Day ") {
			count++
		}
	}
	if count != maxOpeningHourLines {
		t.Errorf("opening hours lines = %d, want %d", count, maxOpeningHourLines)
	}
}

func TestBuildLocalizedFooters(t *testing.T) {
	svc, _ := newTestService(exclusiveConfig(), testProfile())

	fi := coffeeInput("2.50")
	fi.Language = "FI"
	fiDoc, err := svc.Build(fi, "x")
	if err != nil {
		t.Fatal(err)
	}
	fiFooter := strings.Join(fiDoc.Footer, "\n")
	for _, want := range []string{
		"Veroton yhteensä:\t5.00€",
		"ALV 24%:\t1.20€",
		"YHTEENSÄ:\t6.20€",
		"Maksutapa:\tKäteinen",
		"Kiitos käynnistä!",
	} {
		if !strings.Contains(fiFooter, want) {
			t.Errorf("FI footer missing %q:\n%s", want, fiFooter)
		}
	}

	enDoc, err := svc.Build(coffeeInput("2.50"), "x")
	if err != nil {
		t.Fatal(err)
	}
	enFooter := strings.Join(enDoc.Footer, "\n")
	for _, want := range []string{
		"Subtotal:\t5.00€",
		"VAT 24%:\t1.20€",
		"TOTAL:\t6.20€",
		"Payment:\tCash",
		"Thank you for your visit!",
	} {
		if !strings.Contains(enFooter, want) {
			t.Errorf("EN footer missing %q:\n%s", want, enFooter)
		}
	}
}

func TestBuildMixedRateNotes(t *testing.T) {
	svc, _ := newTestService(exclusiveConfig(), testProfile())

	food := dec("0.14")
	input := coffeeInput("3.00")
	input.Items = append(input.Items, entity.LineItem{
		Name: "Pulla", Quantity: "1", UnitPrice: dec("2.00"), VATRate: &food,
	})
	doc, err := svc.Build(input, "x")
	if err != nil {
		t.Fatal(err)
	}

	if doc.Items[0].VATNote != "" {
		t.Errorf("template-rate row must not carry a note, got %q", doc.Items[0].VATNote)
	}
	if doc.Items[1].VATNote != "(VAT 14%)" {
		t.Errorf("override row note = %q, want (VAT 14%%)", doc.Items[1].VATNote)
	}

	footer := strings.Join(doc.Footer, "\n")
	// Ascending rate order.
	if strings.Index(footer, "VAT 14%:") > strings.Index(footer, "VAT 24%:") {
		t.Errorf("VAT lines not in ascending rate order:\n%s", footer)
	}
	if len(doc.VATBreakdown) != 2 {
		t.Errorf("breakdown buckets = %d, want 2", len(doc.VATBreakdown))
	}
}

func TestBuildUnknownPaymentMethodFallsBack(t *testing.T) {
	svc, _ := newTestService(exclusiveConfig(), testProfile())

	input := coffeeInput("2.50")
	input.PaymentMethod = "mobilepay"
	doc, err := svc.Build(input, "x")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(doc.Footer, "\n"), "Payment:\tmobilepay") {
		t.Errorf("unknown method must print as entered:\n%v", doc.Footer)
	}
}

func TestBuildCardBlock(t *testing.T) {
	svc, _ := newTestService(exclusiveConfig(), testProfile())

	input := coffeeInput("2.50")
	input.PaymentMethod = "card"
	input.Card = &entity.SimulatedCardDetails{
		CardType:  "Visa Debit",
		MaskedPAN: "**** **** **** 1234",
		AuthCode:  "123456",
		EntryMode: "Contactless",
	}
	doc, err := svc.Build(input, "x")
	if err != nil {
		t.Fatal(err)
	}
	footer := strings.Join(doc.Footer, "\n")
	for _, want := range []string{
		"Card:\tVisa Debit",
		"Card number:\t**** **** **** 1234",
		"Auth code:\t123456",
		"Entry mode:\tContactless",
	} {
		if !strings.Contains(footer, want) {
			t.Errorf("card block missing %q:\n%s", want, footer)
		}
	}
}

func TestBuildSimulatedCardGenerated(t *testing.T) {
	cfg := exclusiveConfig()
	cfg.SimulateCard = true
	svc, _ := newTestService(cfg, testProfile())

	input := coffeeInput("2.50")
	input.PaymentMethod = "card"
	doc, err := svc.Build(input, "x")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(doc.Footer, "\n"), "Card number:\t**** **** **** ") {
		t.Errorf("expected generated card block:\n%v", doc.Footer)
	}
}

func TestBuildCashNeverGetsCardBlock(t *testing.T) {
	cfg := exclusiveConfig()
	cfg.SimulateCard = true
	svc, _ := newTestService(cfg, testProfile())

	doc, err := svc.Build(coffeeInput("2.50"), "x")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.Join(doc.Footer, "\n"), "Card number:") {
		t.Errorf("cash payment must not carry a card block:\n%v", doc.Footer)
	}
}

func TestBuildFooterPrecedence(t *testing.T) {
	profile := testProfile()
	profile.DefaultFooter = map[string]string{"EN": "See you soon!"}
	svc, _ := newTestService(exclusiveConfig(), profile)

	// Template default replaces the built-in pair.
	doc, err := svc.Build(coffeeInput("2.50"), "x")
	if err != nil {
		t.Fatal(err)
	}
	footer := strings.Join(doc.Footer, "\n")
	if !strings.Contains(footer, "See you soon!") {
		t.Errorf("template footer missing:\n%s", footer)
	}
	if strings.Contains(footer, "Thank you for your visit!") {
		t.Errorf("built-in pair must be replaced:\n%s", footer)
	}

	// Explicit request footer wins over the template.
	input := coffeeInput("2.50")
	input.CustomFooter = []string{"Closing sale ends Sunday"}
	doc, err = svc.Build(input, "x")
	if err != nil {
		t.Fatal(err)
	}
	footer = strings.Join(doc.Footer, "\n")
	if !strings.Contains(footer, "Closing sale ends Sunday") {
		t.Errorf("custom footer missing:\n%s", footer)
	}
	if strings.Contains(footer, "See you soon!") {
		t.Errorf("template footer must be replaced:\n%s", footer)
	}
}

func TestBuildBarcodeDirective(t *testing.T) {
	cfg := exclusiveConfig()
	cfg.Barcode = true
	svc, _ := newTestService(cfg, testProfile())

	doc, err := svc.Build(coffeeInput("2.50"), "20260831-0042")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(doc.Footer, "\n"), ">BARCODE CODE128 20260831-0042>") {
		t.Errorf("barcode directive missing:\n%v", doc.Footer)
	}
}

func TestPreviewPeeksWithoutCommit(t *testing.T) {
	svc, settings := newTestService(exclusiveConfig(), testProfile())

	doc, err := svc.Preview(coffeeInput("2.50"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.ReceiptID != "20260831-0001" {
		t.Errorf("ReceiptID = %q, want peeked 20260831-0001", doc.ReceiptID)
	}
	if settings.peeks != 1 || settings.commits != 0 {
		t.Errorf("peeks=%d commits=%d, preview must never commit", settings.peeks, settings.commits)
	}
}

func TestBuildNonEuroCurrency(t *testing.T) {
	profile := testProfile()
	profile.DefaultCurrency = "SEK"
	svc, _ := newTestService(exclusiveConfig(), profile)

	doc, err := svc.Build(coffeeInput("2.50"), "x")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Items[0].Price != "5.00 SEK" {
		t.Errorf("Price = %q, want %q", doc.Items[0].Price, "5.00 SEK")
	}
}
