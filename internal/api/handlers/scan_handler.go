package handlers

import (
	"io"

	"sudarshan-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ScanHandler struct {
	scanService *service.ScanService
	logger      *zap.Logger
}

func NewScanHandler(scanService *service.ScanService, logger *zap.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		logger:      logger,
	}
}

// ScanDocument godoc
// @Summary Extract amounts from a document
// @Description Upload a receipt image or PDF; the AI assistant sorts the numbers into sales, purchase and expense.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document image or PDF"
// @Param user_id formData string true "User ID"
// @Success 200 {object} dto.ScanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scan-document [post]
func (h *ScanHandler) ScanDocument(c *fiber.Ctx) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", zap.Error(err))
		return writeError(c, h.logger, &service.UpstreamError{Op: "failed to open file", Err: err})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		return writeError(c, h.logger, &service.UpstreamError{Op: "failed to read file", Err: err})
	}

	resp, err := h.scanService.ScanDocument(c.Context(), userID, file.Filename, data)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// ListScans godoc
// @Summary List a user's document scans
// @Tags documents
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Max items (default 30, max 500)"
// @Success 200 {array} dto.DocumentScanResponse
// @Router /scans/{user_id} [get]
func (h *ScanHandler) ListScans(c *fiber.Ctx) error {
	scans, err := h.scanService.ListScans(c.Context(), c.Params("user_id"), c.QueryInt("limit", 30))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(scans)
}
