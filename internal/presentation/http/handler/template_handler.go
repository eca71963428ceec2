package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hrkone/kuitti-api/internal/application/service"
	domainRepo "github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/internal/presentation/http/dto/request"
	"github.com/hrkone/kuitti-api/internal/presentation/http/dto/response"
)

// TemplateHandler handles company template HTTP requests.
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler.
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// List returns all loaded company names.
func (h *TemplateHandler) List(c *gin.Context) {
	response.OK(c, "Templates retrieved", gin.H{
		"companies": h.templateService.List(),
	})
}

// Get returns the full profile of one company.
func (h *TemplateHandler) Get(c *gin.Context) {
	profile, err := h.templateService.Get(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Template retrieved", profile)
}

// UpdateLogo points the template at a new logo file.
func (h *TemplateHandler) UpdateLogo(c *gin.Context) {
	var req request.UpdateLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	profile, err := h.templateService.UpdateLogo(c.Param("name"), req.LogoFile)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logo updated", profile)
}

// UpdateCompanyInfo applies a partial company-info update.
func (h *TemplateHandler) UpdateCompanyInfo(c *gin.Context) {
	var req request.UpdateCompanyInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	update := domainRepo.CompanyInfoUpdate{
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		City:         req.City,
		Country:      req.Country,
		TaxID:        req.TaxID,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		OpeningHours: req.OpeningHours,
	}

	profile, err := h.templateService.UpdateCompanyInfo(c.Param("name"), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company info updated", profile)
}

// Reload re-reads every template file from disk.
func (h *TemplateHandler) Reload(c *gin.Context) {
	names, err := h.templateService.Reload()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Templates reloaded", gin.H{
		"companies": names,
	})
}
