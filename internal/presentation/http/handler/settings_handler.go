package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hrkone/kuitti-api/internal/application/service"
	"github.com/hrkone/kuitti-api/internal/presentation/http/dto/request"
	"github.com/hrkone/kuitti-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings HTTP requests.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the known settings keys with their current values.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, "Settings retrieved", h.settingsService.GetAll())
}

// UpdateSettings sets one dotted-key setting value.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.settingsService.Set(req.Key, req.Value); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Setting updated", gin.H{
		req.Key: h.settingsService.Get(req.Key),
	})
}
