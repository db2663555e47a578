package handlers

import (
	"sudarshan-portal/internal/dto"
	"sudarshan-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VoiceHandler struct {
	voiceService *service.VoiceService
	logger       *zap.Logger
}

func NewVoiceHandler(voiceService *service.VoiceService, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		voiceService: voiceService,
		logger:       logger,
	}
}

// Transcribe godoc
// @Summary Transcribe recorded audio
// @Description Validates the payload; transcription itself is not available and answers 501.
// @Tags voice
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Audio payload"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 501 {object} dto.ErrorResponse
// @Router /voice/transcribe [post]
func (h *VoiceHandler) Transcribe(c *fiber.Ctx) error {
	var req dto.TranscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return writeError(c, h.logger, h.voiceService.Transcribe(c.Context(), &req))
}

// Speak godoc
// @Summary Text to speech
// @Description Returns the text unchanged with no audio.
// @Tags voice
// @Accept json
// @Produce json
// @Param request body dto.SpeakRequest true "Text to speak"
// @Success 200 {object} dto.SpeakResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /voice/speak [post]
func (h *VoiceHandler) Speak(c *fiber.Ctx) error {
	var req dto.SpeakRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.voiceService.Speak(c.Context(), &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(resp)
}
