package handlers

import (
	"sudarshan-portal/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// Root godoc
// @Summary API banner
// @Tags meta
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func Root(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "Sudarshan AI Portal API"})
}
