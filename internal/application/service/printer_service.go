package service

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	"github.com/hrkone/kuitti-api/internal/config"
	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/internal/i18n"
	"github.com/hrkone/kuitti-api/pkg/apperror"
	"github.com/hrkone/kuitti-api/pkg/markup"
	"github.com/hrkone/kuitti-api/pkg/printer"
	"github.com/hrkone/kuitti-api/pkg/render"
)

// PrinterService turns built receipt documents into ESC/POS jobs and records
// them in the journal. Committing the receipt ID happens here, exactly once
// per print; previews never reach this service.
type PrinterService struct {
	printer     printer.Printer
	receipts    *ReceiptService
	settings    repository.SettingsRepository
	jobs        repository.PrintJobRepository // nil when the journal is disabled
	labels      *i18n.Table
	cfg         *config.ReceiptConfig
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receipts *ReceiptService,
	settings repository.SettingsRepository,
	jobs repository.PrintJobRepository,
	cfg *config.ReceiptConfig,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		settings:    settings,
		jobs:        jobs,
		labels:      i18n.Default(),
		cfg:         cfg,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintResult is what one print produced: the consumed receipt ID, the text
// rendering of the job, and whether the bytes actually reached a device.
type PrintResult struct {
	ReceiptID string                  `json:"receipt_id"`
	Lines     []string                `json:"lines"`
	Printed   bool                    `json:"printed"`
	Document  *entity.ReceiptDocument `json:"document,omitempty"`
}

// Print commits the next receipt ID for the company, builds the document
// under it, sends it to the printer and journals the job. When the device
// write fails the result still carries the finished receipt; the caller
// decides how to surface the warning.
func (s *PrinterService) Print(ctx context.Context, input BuildInput) (*PrintResult, error) {
	// Validate before consuming an ID; a bad company must not burn a number.
	if !s.receipts.HasCompany(input.Company) {
		return nil, apperror.NewNotFoundError("Company template")
	}

	receiptID, err := s.settings.CommitReceiptID(input.Company)
	if err != nil {
		return nil, fmt.Errorf("allocate receipt id: %w", err)
	}

	doc, err := s.receipts.Build(input, receiptID)
	if err != nil {
		return nil, err
	}

	lines, err := RenderLines(doc, render.WrapHard)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxLines > 0 && len(lines) > s.cfg.MaxLines {
		lines = lines[:s.cfg.MaxLines]
	}

	s.journal(ctx, doc, len(lines))

	result := &PrintResult{ReceiptID: receiptID, Lines: lines, Document: doc}

	if err := s.printer.Print(s.compose(doc)); err != nil {
		log.Printf("Printer error (receipt %s): %v", receiptID, err)
		return result, fmt.Errorf("failed to print receipt: %w", err)
	}
	result.Printed = true
	return result, nil
}

// journal records the committed print. A disabled journal or a write error
// never fails the print itself.
func (s *PrinterService) journal(ctx context.Context, doc *entity.ReceiptDocument, lineCount int) {
	if s.jobs == nil {
		return
	}
	job := &entity.PrintJob{
		Company:       doc.Company,
		ReceiptID:     doc.ReceiptID,
		Language:      doc.Language,
		Subtotal:      doc.Totals.Subtotal.StringFixed(2),
		VAT:           doc.Totals.VAT.StringFixed(2),
		Total:         doc.Totals.Total.StringFixed(2),
		Currency:      doc.Totals.Currency,
		LineCount:     lineCount,
		PaymentMethod: paymentFromFooter(doc),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		log.Printf("Journal error (receipt %s): %v", doc.ReceiptID, err)
	}
}

// paymentFromFooter recovers the payment label from the built footer so the
// journal does not need the raw request.
func paymentFromFooter(doc *entity.ReceiptDocument) string {
	prefix := i18n.Default().Label(doc.Language, "payment") + "\t"
	for _, line := range doc.Footer {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	return ""
}

// compose walks the document structure into an ESC/POS byte stream. The
// header is centered with the company name emphasized; label/value pairs are
// tab-marked and become justified KeyValue lines; barcode directives become
// real GS k commands.
func (s *PrinterService) compose(doc *entity.ReceiptDocument) []byte {
	width := doc.Width
	pdoc := printer.NewDocument(width)
	pdoc.SetMaxLines(s.cfg.MaxLines)

	s.composeLogo(pdoc, doc)

	pdoc.SetAlign(printer.AlignCenter)
	for i, line := range doc.Header {
		if line == "" {
			pdoc.LineFeed()
			continue
		}
		if i == 0 {
			if s.cfg.BoldHeader {
				pdoc.SetBold(true).SetFontSize(printer.FontDouble)
			}
			pdoc.Text(line)
			if s.cfg.BoldHeader {
				pdoc.SetFontSize(printer.FontNormal).SetBold(false)
			}
			continue
		}
		s.composeLine(pdoc, doc, line)
	}

	pdoc.SetAlign(printer.AlignLeft)
	if len(doc.Items) > 0 {
		pdoc.Separator('-')
		for _, item := range doc.Items {
			pdoc.Text(render.ItemLine(item.Quantity, item.Name, item.Price, width))
			if item.VATNote != "" {
				pdoc.Text("  " + item.VATNote)
			}
		}
		pdoc.Separator('-')
	}

	totalLabel := s.labels.Label(doc.Language, "total")
	for _, line := range doc.Footer {
		if line == "" {
			pdoc.LineFeed()
			continue
		}
		if label, value, ok := strings.Cut(line, "\t"); ok && label == totalLabel {
			s.composeTotal(pdoc, label, value)
			continue
		}
		s.composeLine(pdoc, doc, line)
	}

	pdoc.FeedLines(s.cfg.FeedLines)
	if doc.Cut {
		pdoc.PartialCut()
	}
	return pdoc.Bytes()
}

// composeLine handles one ordinary document line: a barcode directive, a
// tab-marked pair, or plain text.
func (s *PrinterService) composeLine(pdoc *printer.Document, doc *entity.ReceiptDocument, line string) {
	if d, ok := markup.Parse(line); ok {
		pdoc.SetAlign(printer.AlignCenter).Barcode(d.Symbology, d.Payload)
		if d.Trailing != "" {
			pdoc.Text(d.Trailing)
		}
		pdoc.SetAlign(printer.AlignLeft)
		return
	}
	if label, value, ok := strings.Cut(line, "\t"); ok {
		pdoc.SetAlign(printer.AlignLeft).KeyValue(label, value)
		return
	}
	pdoc.Text(line)
}

// composeTotal emphasizes the grand-total line. Double-width characters halve
// the usable columns, so in that mode the pair is printed compactly instead
// of justified.
func (s *PrinterService) composeTotal(pdoc *printer.Document, label, value string) {
	pdoc.SetAlign(printer.AlignLeft).SetBold(true)
	if s.cfg.DoubleWidthTotal {
		pdoc.SetFontSize(printer.FontWide).
			Text(label + " " + value).
			SetFontSize(printer.FontNormal)
	} else {
		pdoc.KeyValue(label, value)
	}
	pdoc.SetBold(false)
}

func (s *PrinterService) composeLogo(pdoc *printer.Document, doc *entity.ReceiptDocument) {
	printed := false
	if doc.LogoImage != "" {
		if img, err := loadImage(doc.LogoImage); err != nil {
			log.Printf("Logo error (%s): %v", doc.LogoImage, err)
		} else {
			pdoc.SetAlign(printer.AlignCenter).
				Image(img, s.cfg.LogoMaxWidth, s.cfg.LogoMaxHeight)
			printed = true
		}
	}
	if len(doc.LogoText) > 0 {
		pdoc.SetAlign(printer.AlignCenter)
		for _, line := range doc.LogoText {
			pdoc.Text(line)
		}
		printed = true
	}
	if printed {
		pdoc.LineFeed()
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// TestPrint sends a fixed test page to the printer. The text lines are
// returned so the handler can show them when the printer is disabled.
func (s *PrinterService) TestPrint() ([]string, error) {
	width := s.settings.GetInt("receipt.width", s.cfg.Width)
	if width <= 0 {
		width = 42
	}

	lines := []string{
		render.Center("PRINTER TEST", width),
		render.Rule('-', width),
		render.LeftRight("Width:", fmt.Sprintf("%d chars", width), width),
		render.LeftRight("Type:", s.printerType, width),
		render.Rule('-', width),
		render.Center("ÄÖÅ äöå € 0123456789", width),
	}

	pdoc := printer.NewDocument(width)
	for _, line := range lines {
		pdoc.Text(line)
	}
	pdoc.FeedLines(s.cfg.FeedLines)
	if s.cfg.Cut {
		pdoc.PartialCut()
	}

	if err := s.printer.Print(pdoc.Bytes()); err != nil {
		return lines, fmt.Errorf("test print failed: %w", err)
	}
	return lines, nil
}
