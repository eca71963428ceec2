package repository

import (
	"context"

	"github.com/hrkone/kuitti-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations.
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and endpoint.
	GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup).
	DeleteExpired(ctx context.Context) error
}
