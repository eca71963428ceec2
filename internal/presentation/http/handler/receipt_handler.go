package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/hrkone/kuitti-api/internal/application/service"
	"github.com/hrkone/kuitti-api/internal/domain/entity"
	"github.com/hrkone/kuitti-api/internal/presentation/http/dto/request"
	"github.com/hrkone/kuitti-api/internal/presentation/http/dto/response"
	"github.com/hrkone/kuitti-api/pkg/pagination"
	"github.com/hrkone/kuitti-api/pkg/render"
)

// ReceiptHandler handles receipt preview, print and history requests.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	printerService *service.PrinterService
	journalService *service.JournalService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(
	receiptService *service.ReceiptService,
	printerService *service.PrinterService,
	journalService *service.JournalService,
) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		printerService: printerService,
		journalService: journalService,
	}
}

// Preview builds a receipt without consuming a receipt ID. The format query
// parameter selects the rendering: "json" (default), "text" or "html".
func (h *ReceiptHandler) Preview(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	doc, err := h.receiptService.Preview(input)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch strings.ToLower(c.DefaultQuery("format", "json")) {
	case "text":
		lines, err := service.RenderLines(doc, render.WrapWord)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.String(http.StatusOK, strings.Join(lines, "\n"))
	case "html":
		markup, err := service.RenderHTML(doc)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
	default:
		lines, err := service.RenderLines(doc, render.WrapWord)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Receipt preview generated", gin.H{
			"document": doc,
			"lines":    lines,
		})
	}
}

// Print commits a receipt ID, prints the receipt and journals the job.
func (h *ReceiptHandler) Print(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	result, err := h.printerService.Print(c.Request.Context(), input)
	if err != nil {
		// The receipt was finished but the device write failed; return it
		// with a warning instead of losing the committed ID.
		if result != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"result":  result,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", result)
}

// History lists journaled prints, newest first. Supports ?company= filtering
// and page/per_page pagination.
func (h *ReceiptHandler) History(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.journalService.List(c.Request.Context(), c.Query("company"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Print history retrieved", result)
}

// bindInput parses and validates the shared preview/print body. On failure
// the error response has already been written.
func (h *ReceiptHandler) bindInput(c *gin.Context) (service.BuildInput, bool) {
	var req request.BuildReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return service.BuildInput{}, false
	}

	items := make([]entity.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := entity.ParseLineItem(it.Name, it.Quantity, it.Price)
		if err != nil {
			response.BadRequest(c, err.Error())
			return service.BuildInput{}, false
		}
		if it.VATRate != nil {
			rate := decimal.NewFromFloat(*it.VATRate)
			item.VATRate = &rate
		}
		items = append(items, item)
	}

	input := service.BuildInput{
		Company:       req.Company,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Language:      req.Language,
		CustomFooter:  req.CustomFooter,
	}
	if req.Card != nil {
		input.Card = &entity.SimulatedCardDetails{
			CardType:      req.Card.CardType,
			MaskedPAN:     req.Card.MaskedPAN,
			AuthCode:      req.Card.AuthCode,
			TransactionID: req.Card.TransactionID,
			TerminalID:    req.Card.TerminalID,
			MerchantID:    req.Card.MerchantID,
			EntryMode:     req.Card.EntryMode,
		}
	}
	return input, true
}
