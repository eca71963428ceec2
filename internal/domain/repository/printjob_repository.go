package repository

import (
	"context"

	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/pkg/pagination"
)

// PrintJobRepository persists the print journal.
type PrintJobRepository interface {
	// Create records a committed print.
	Create(ctx context.Context, job *entity.PrintJob) error
	// List returns journal entries, newest first, optionally filtered by
	// company.
	List(ctx context.Context, company string, params *pagination.PaginationParams) ([]entity.PrintJob, int64, error)
}
