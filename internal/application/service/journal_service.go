package service

import (
	"context"

	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/pkg/apperror"
	"github.com/hrkone/kuitti-api/pkg/pagination"
)

// JournalService reads the print journal.
type JournalService struct {
	jobs repository.PrintJobRepository // nil when the journal database is disabled
}

// NewJournalService creates a new journal service.
func NewJournalService(jobs repository.PrintJobRepository) *JournalService {
	return &JournalService{jobs: jobs}
}

// List returns journal entries newest first, optionally filtered by company.
func (s *JournalService) List(
	ctx context.Context,
	company string,
	params *pagination.PaginationParams,
) (*pagination.PaginatedResult[entity.PrintJob], error) {
	if s.jobs == nil {
		return nil, apperror.NewUnavailableError("Print journal is disabled")
	}
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	jobs, total, err := s.jobs.List(ctx, company, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(jobs, p), nil
}
