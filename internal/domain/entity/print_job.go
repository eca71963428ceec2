package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrintJob records one committed print in the journal. Preview renders are
// never journaled; only prints that incremented the receipt counter are.
type PrintJob struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Company       string    `gorm:"size:255;not null;index" json:"company"`
	ReceiptID     string    `gorm:"size:32;not null;uniqueIndex" json:"receipt_id"`
	Language      string    `gorm:"size:8" json:"language"`
	PaymentMethod string    `gorm:"size:64" json:"payment_method"`
	Subtotal      string    `gorm:"size:32" json:"subtotal"`
	VAT           string    `gorm:"size:32" json:"vat"`
	Total         string    `gorm:"size:32" json:"total"`
	Currency      string    `gorm:"size:8" json:"currency"`
	LineCount     int       `json:"line_count"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for PrintJob.
func (PrintJob) TableName() string {
	return "print_jobs"
}
