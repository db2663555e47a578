package handlers

import (
	"errors"

	"sudarshan-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps service errors onto status codes and a {"detail"} body.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var vErr *service.ValidationError
	var upErr *service.UpstreamError

	code := fiber.StatusInternalServerError
	detail := "Internal server error"

	switch {
	case errors.As(err, &vErr):
		code, detail = fiber.StatusBadRequest, vErr.Message
	case errors.Is(err, service.ErrUserExists):
		code, detail = fiber.StatusBadRequest, "Email already registered"
	case errors.Is(err, service.ErrInvalidCredentials):
		code, detail = fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrNotFound):
		code, detail = fiber.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrNotImplemented):
		code, detail = fiber.StatusNotImplemented, err.Error()
	case errors.As(err, &upErr):
		detail = upErr.Detail()
		logger.Error("Upstream failure",
			zap.String("path", c.Path()),
			zap.String("op", upErr.Op),
			zap.Error(upErr.Err),
		)
	default:
		logger.Error("Request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": detail,
	})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": detail,
	})
}
