package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hrkone/kuitti-api/internal/application/service"
	"github.com/hrkone/kuitti-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	lines, err := h.printerService.TestPrint()
	if err != nil {
		// Return the page anyway so the caller still sees the layout
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"lines":   lines,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"lines": lines,
	})
}
