package api

import (
	"errors"
	"time"

	"sudarshan-portal/docs"
	"sudarshan-portal/internal/api/handlers"
	"sudarshan-portal/pkg/config"
	"sudarshan-portal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Transaction *handlers.TransactionHandler
	Report      *handlers.ReportHandler
	Analytics   *handlers.AnalyticsHandler
	Scan        *handlers.ScanHandler
	Voice       *handlers.VoiceHandler
}

func SetupRouter(cfg *config.ServerConfig, h *Handlers, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Sudarshan AI Portal",
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"detail": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.CORS(cfg.CORSOrigins))
	app.Use(middleware.RequestLogger(appLogger))

	// importing docs registers the swagger document
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/", handlers.Root)

	auth := api.Group("/auth", middleware.RateLimit(authRateLimit, authRateWindow))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	api.Post("/transactions", h.Transaction.CreateTransaction)
	api.Get("/transactions/:user_id", h.Transaction.ListTransactions)
	api.Get("/transactions/:user_id/export", h.Transaction.ExportTransactions)

	api.Post("/scan-document", h.Scan.ScanDocument)
	api.Get("/scans/:user_id", h.Scan.ListScans)

	api.Post("/generate-report/:user_id", h.Report.GenerateReport)
	api.Get("/reports/:user_id", h.Report.ListReports)
	api.Get("/reports/:user_id/:report_id/pdf", h.Report.ReportPDF)

	api.Get("/analytics/:user_id", h.Analytics.GetAnalytics)
	api.Get("/analytics/:user_id/chart", h.Analytics.Chart)

	voice := api.Group("/voice")
	voice.Post("/transcribe", h.Voice.Transcribe)
	voice.Post("/speak", h.Voice.Speak)

	return app
}
