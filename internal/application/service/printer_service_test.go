package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/pkg/pagination"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}
func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return true }

type captureJournal struct {
	created []*entity.PrintJob
}

func (j *captureJournal) Create(_ context.Context, job *entity.PrintJob) error {
	j.created = append(j.created, job)
	return nil
}
func (j *captureJournal) List(context.Context, string, *pagination.PaginationParams) ([]entity.PrintJob, int64, error) {
	return nil, 0, nil
}

func newTestPrinterService(t *testing.T) (*PrinterService, *capturePrinter, *captureJournal, *stubSettings) {
	t.Helper()
	receipts, settings := newTestService(exclusiveConfig(), testProfile())
	dev := &capturePrinter{}
	journal := &captureJournal{}
	svc := NewPrinterService(dev, receipts, settings, journal, receipts.cfg, "file")
	return svc, dev, journal, settings
}

func TestPrintCommitsOnce(t *testing.T) {
	svc, dev, journal, settings := newTestPrinterService(t)

	result, err := svc.Print(context.Background(), coffeeInput("2.50"))
	if err != nil {
		t.Fatal(err)
	}
	if settings.commits != 1 {
		t.Errorf("commits = %d, want exactly 1", settings.commits)
	}
	if result.ReceiptID != "20260831-0001" {
		t.Errorf("ReceiptID = %q", result.ReceiptID)
	}
	if !result.Printed {
		t.Error("result must report the device write")
	}
	if len(dev.jobs) != 1 {
		t.Fatalf("printer received %d jobs, want 1", len(dev.jobs))
	}
	if len(journal.created) != 1 || journal.created[0].ReceiptID != "20260831-0001" {
		t.Errorf("journal = %+v", journal.created)
	}
	if journal.created[0].Total != "6.20" {
		t.Errorf("journal total = %q, want 6.20", journal.created[0].Total)
	}
}

func TestPrintUnknownCompanyBurnsNoID(t *testing.T) {
	svc, _, _, settings := newTestPrinterService(t)

	input := coffeeInput("2.50")
	input.Company = "Nonexistent Oy"
	if _, err := svc.Print(context.Background(), input); err == nil {
		t.Fatal("expected error")
	}
	if settings.commits != 0 {
		t.Errorf("commits = %d, a failed validation must not consume an ID", settings.commits)
	}
}

func TestPrintDeviceFailureKeepsReceipt(t *testing.T) {
	svc, dev, journal, settings := newTestPrinterService(t)
	dev.err = context.DeadlineExceeded

	result, err := svc.Print(context.Background(), coffeeInput("2.50"))
	if err == nil {
		t.Fatal("expected device error")
	}
	if result == nil || result.ReceiptID != "20260831-0001" {
		t.Fatalf("finished receipt must survive a device failure, got %+v", result)
	}
	if result.Printed {
		t.Error("Printed must be false on device failure")
	}
	// The ID was consumed and the job journaled regardless.
	if settings.commits != 1 || len(journal.created) != 1 {
		t.Errorf("commits=%d journaled=%d", settings.commits, len(journal.created))
	}
}

func TestPrintWithoutJournal(t *testing.T) {
	receipts, settings := newTestService(exclusiveConfig(), testProfile())
	dev := &capturePrinter{}
	svc := NewPrinterService(dev, receipts, settings, nil, receipts.cfg, "none")

	if _, err := svc.Print(context.Background(), coffeeInput("2.50")); err != nil {
		t.Fatalf("printing must work without a journal: %v", err)
	}
}

func TestPrintMaxLinesBoundsDevice(t *testing.T) {
	cfg := exclusiveConfig()
	cfg.MaxLines = 6
	receipts, settings := newTestService(cfg, testProfile())
	dev := &capturePrinter{}
	svc := NewPrinterService(dev, receipts, settings, nil, receipts.cfg, "file")

	result, err := svc.Print(context.Background(), coffeeInput("2.50"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Lines) != 6 {
		t.Errorf("result carries %d lines, want 6", len(result.Lines))
	}
	if len(dev.jobs) != 1 {
		t.Fatalf("printer received %d jobs, want 1", len(dev.jobs))
	}
	job := dev.jobs[0]
	if !bytes.Contains(job, []byte("Kahvila Testi")) {
		t.Error("header must print before the cap")
	}
	// The totals and closing lines lie past the cap and must not reach paper.
	for _, dropped := range []string{"TOTAL:", "Thank you for your visit!"} {
		if bytes.Contains(job, []byte(dropped)) {
			t.Errorf("%q printed past the line cap", dropped)
		}
	}
}

func TestComposeContainsDocument(t *testing.T) {
	svc, dev, _, _ := newTestPrinterService(t)

	input := coffeeInput("2.50")
	input.Language = "FI"
	if _, err := svc.Print(context.Background(), input); err != nil {
		t.Fatal(err)
	}

	data := dev.jobs[0]
	for _, want := range []string{
		"Kahvila Testi",
		"Y-tunnus: 1234567-8",
		"2x Kahvi",
		"YHTEENSÄ:",
		"Kiitos käynnistä!",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("job bytes missing %q", want)
		}
	}
	if !bytes.HasPrefix(data, []byte{0x1B, '@'}) {
		t.Error("job must start with ESC @")
	}
	if !bytes.Contains(data, []byte{0x1D, 'V', 0x01}) {
		t.Error("job must end with a partial cut")
	}
}

func TestComposeBarcode(t *testing.T) {
	cfg := exclusiveConfig()
	cfg.Barcode = true
	receipts, settings := newTestService(cfg, testProfile())
	dev := &capturePrinter{}
	svc := NewPrinterService(dev, receipts, settings, nil, cfg, "file")

	if _, err := svc.Print(context.Background(), coffeeInput("2.50")); err != nil {
		t.Fatal(err)
	}

	// The footer directive becomes a real GS k CODE128 symbol, code set B.
	data := "{B20260831-0001"
	cmd := append([]byte{0x1D, 'k', 73, byte(len(data))}, data...)
	if !bytes.Contains(dev.jobs[0], cmd) {
		t.Errorf("job bytes missing CODE128 command: % x", dev.jobs[0])
	}
}

func TestGetStatus(t *testing.T) {
	svc, _, _, _ := newTestPrinterService(t)
	status := svc.GetStatus()
	if !status.Configured || !status.Connected || status.Type != "file" {
		t.Errorf("status = %+v", status)
	}
}

func TestTestPrint(t *testing.T) {
	svc, dev, _, _ := newTestPrinterService(t)
	lines, err := svc.TestPrint()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) == 0 {
		t.Fatal("test page has no lines")
	}
	if len(dev.jobs) != 1 {
		t.Errorf("printer received %d jobs, want 1", len(dev.jobs))
	}
	if !bytes.Contains(dev.jobs[0], []byte("PRINTER TEST")) {
		t.Error("test page content missing")
	}
}
