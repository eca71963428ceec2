package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed print requests to prevent duplicates. The
// application is single-operator, so keys are scoped by endpoint only.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"size:255;not null;index:idx_idem_key_endpoint,unique"`
	Endpoint     string    `gorm:"size:255;not null;index:idx_idem_key_endpoint,unique"` // e.g. "POST /receipts/print"
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey.
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired.
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
