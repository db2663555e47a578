package handlers

import (
	"sudarshan-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetAnalytics godoc
// @Summary Per-day category totals
// @Tags analytics
// @Produce json
// @Param user_id path string true "User ID"
// @Param days query int false "Window in days (default 30)"
// @Success 200 {object} dto.AnalyticsResponse
// @Router /analytics/{user_id} [get]
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	resp, err := h.analyticsService.GetAnalytics(c.Context(), c.Params("user_id"), c.QueryInt("days", 30))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Chart godoc
// @Summary Pie chart of category totals
// @Tags analytics
// @Produce png
// @Param user_id path string true "User ID"
// @Param days query int false "Window in days (default 30)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /analytics/{user_id}/chart [get]
func (h *AnalyticsHandler) Chart(c *fiber.Ctx) error {
	png, err := h.analyticsService.RenderAnalyticsChart(c.Context(), c.Params("user_id"), c.QueryInt("days", 30))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
