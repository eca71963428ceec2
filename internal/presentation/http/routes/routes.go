package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hrkone/kuitti-api/internal/config"
	domainRepo "github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/internal/presentation/http/handler"
	"github.com/hrkone/kuitti-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Receipt  *handler.ReceiptHandler
	Template *handler.TemplateHandler
	Printer  *handler.PrinterHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository // nil when the journal database is disabled
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerTemplateRoutes(v1, h)
		registerReceiptRoutes(v1, h, deps)
		registerPrinterRoutes(v1, h)

		v1.GET("/settings", h.Settings.GetSettings)
		v1.PUT("/settings", h.Settings.UpdateSettings)
	}

	return router
}

func registerTemplateRoutes(v1 *gin.RouterGroup, h *Handlers) {
	templates := v1.Group("/templates")
	{
		templates.GET("", h.Template.List)
		templates.POST("/reload", h.Template.Reload)
		templates.GET("/:name", h.Template.Get)
		templates.PUT("/:name/logo", h.Template.UpdateLogo)
		templates.PUT("/:name/company-info", h.Template.UpdateCompanyInfo)
	}
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := v1.Group("/receipts")
	{
		receipts.POST("/preview", h.Receipt.Preview)

		// Printing is rate limited per company and deduplicated by
		// Idempotency-Key so a retry never consumes a second receipt ID.
		rateLimiter := middleware.NewCompanyRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		receipts.POST("/print",
			rateLimiter.Middleware(),
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Receipt.Print)

		receipts.GET("/history", h.Receipt.History)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
