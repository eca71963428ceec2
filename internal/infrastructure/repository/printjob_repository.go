package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hrkone/kuitti-api/internal/domain/entity"
	domainRepo "github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/pkg/pagination"
)

type printJobRepository struct {
	db *gorm.DB
}

// NewPrintJobRepository creates a new print journal repository.
func NewPrintJobRepository(db *gorm.DB) domainRepo.PrintJobRepository {
	return &printJobRepository{db: db}
}

func (r *printJobRepository) Create(ctx context.Context, job *entity.PrintJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *printJobRepository) List(ctx context.Context, company string, params *pagination.PaginationParams) ([]entity.PrintJob, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.PrintJob{})
	if company != "" {
		query = query.Where("company = ?", company)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []entity.PrintJob
	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&jobs).Error
	return jobs, total, err
}
