package handlers

import (
	"fmt"

	"sudarshan-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GenerateReport godoc
// @Summary Generate a daily report with AI insights
// @Tags reports
// @Produce json
// @Param user_id path string true "User ID"
// @Param date query string false "Day to report on (ISO-8601), defaults to today"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate-report/{user_id} [post]
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	report, err := h.reportService.GenerateDailyReport(c.Context(), c.Params("user_id"), c.Query("date"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(report)
}

// ListReports godoc
// @Summary List a user's reports
// @Tags reports
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Max items (default 30, max 500)"
// @Success 200 {array} dto.ReportResponse
// @Router /reports/{user_id} [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.reportService.ListReports(c.Context(), c.Params("user_id"), c.QueryInt("limit", 30))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(reports)
}

// ReportPDF godoc
// @Summary Download a report as PDF
// @Tags reports
// @Produce application/pdf
// @Param user_id path string true "User ID"
// @Param report_id path string true "Report ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /reports/{user_id}/{report_id}/pdf [get]
func (h *ReportHandler) ReportPDF(c *fiber.Ctx) error {
	reportID := c.Params("report_id")

	data, err := h.reportService.RenderReportPDF(c.Context(), c.Params("user_id"), reportID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=\"report_%s.pdf\"", reportID))

	return c.Send(data)
}
