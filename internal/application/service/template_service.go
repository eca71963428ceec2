package service

import (
	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/pkg/apperror"
)

// TemplateService exposes the company template registry to the HTTP layer.
type TemplateService struct {
	templates repository.TemplateRepository
}

// NewTemplateService creates a new template service.
func NewTemplateService(templates repository.TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

// List returns all loaded company names in sorted order.
func (s *TemplateService) List() []string {
	return s.templates.ListNames()
}

// Get returns the full profile for one company.
func (s *TemplateService) Get(name string) (*entity.CompanyProfile, error) {
	profile := s.templates.Get(name)
	if profile == nil {
		return nil, apperror.NewNotFoundError("Company template")
	}
	return profile, nil
}

// UpdateLogo points the company template at a new logo file and returns the
// refreshed profile.
func (s *TemplateService) UpdateLogo(name, logoFile string) (*entity.CompanyProfile, error) {
	if s.templates.Get(name) == nil {
		return nil, apperror.NewNotFoundError("Company template")
	}
	if err := s.templates.UpdateLogo(name, logoFile); err != nil {
		return nil, err
	}
	return s.Get(name)
}

// UpdateCompanyInfo applies a partial company-info update and returns the
// refreshed profile.
func (s *TemplateService) UpdateCompanyInfo(name string, update repository.CompanyInfoUpdate) (*entity.CompanyProfile, error) {
	if s.templates.Get(name) == nil {
		return nil, apperror.NewNotFoundError("Company template")
	}
	if err := s.templates.UpdateCompanyInfo(name, update); err != nil {
		return nil, err
	}
	return s.Get(name)
}

// Reload re-reads every template file from disk.
func (s *TemplateService) Reload() ([]string, error) {
	if err := s.templates.Reload(); err != nil {
		return nil, err
	}
	return s.templates.ListNames(), nil
}
