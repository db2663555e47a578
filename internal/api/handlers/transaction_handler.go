package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sudarshan-portal/internal/dto"
	"sudarshan-portal/internal/export"
	"sudarshan-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Description Accepts a JSON body or form fields. user_id is read from the form, then the query string, then the body.
// @Tags transactions
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Param request body dto.TransactionRequest false "Structured transaction"
// @Param user_id query string false "User ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	in := &dto.CreateTransactionInput{
		QueryUserID: c.Query("user_id", c.Query("user_id_query")),
		Form:        map[string]string{},
	}

	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		if len(c.Body()) > 0 {
			var body dto.TransactionRequest
			if err := c.BodyParser(&body); err != nil {
				if errors.Is(err, dto.ErrAmountNotNumber) {
					return badRequest(c, err.Error())
				}
				return badRequest(c, "Invalid request body")
			}
			in.Body = &body
		}
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "Invalid form data")
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				in.Form[key] = values[0]
			}
		}
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			in.Form[string(key)] = string(value)
		})
	}

	resp, err := h.txService.CreateTransaction(c.Context(), in)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// ListTransactions godoc
// @Summary List a user's transactions
// @Tags transactions
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Max items (default 50, max 500)"
// @Success 200 {array} dto.TransactionResponse
// @Router /transactions/{user_id} [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.txService.ListTransactions(c.Context(), c.Params("user_id"), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(txs)
}

// ExportTransactions godoc
// @Summary Download a user's transactions as XLSX
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param user_id path string true "User ID"
// @Success 200 {file} file
// @Router /transactions/{user_id}/export [get]
func (h *TransactionHandler) ExportTransactions(c *fiber.Ctx) error {
	data, err := h.txService.ExportTransactions(c.Context(), c.Params("user_id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, export.XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().UTC().Format("20060102")))

	return c.Send(data)
}
