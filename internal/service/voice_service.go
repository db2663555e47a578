package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"sudarshan-portal/internal/dto"

	"go.uber.org/zap"
)

const defaultSpeechLanguage = "hi"

// VoiceService validates voice requests. Neither speech recognition nor
// synthesis is backed by a provider yet.
type VoiceService struct {
	logger *zap.Logger
}

func NewVoiceService(logger *zap.Logger) *VoiceService {
	return &VoiceService{logger: logger}
}

// Transcribe always fails with ErrNotImplemented once the input is valid.
func (s *VoiceService) Transcribe(ctx context.Context, req *dto.TranscribeRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return validationError("user_id is required")
	}
	if strings.TrimSpace(req.AudioBase64) == "" {
		return validationError("audio_base64 is required")
	}

	payload := req.AudioBase64
	// accept data URIs from browser recorders
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}

	audio, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return validationError("audio_base64 is not valid base64")
	}

	s.logger.Info("Transcription requested",
		zap.String("user_id", req.UserID),
		zap.Int("audio_bytes", len(audio)),
	)

	return fmt.Errorf("voice transcription is %w", ErrNotImplemented)
}

// Speak echoes the text back without audio.
func (s *VoiceService) Speak(ctx context.Context, req *dto.SpeakRequest) (*dto.SpeakResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, validationError("text is required")
	}

	language := req.Language
	if language == "" {
		language = defaultSpeechLanguage
	}

	return &dto.SpeakResponse{
		AudioURL: nil,
		Text:     req.Text,
		Language: language,
		Message:  "speech synthesis is not implemented; text returned unchanged",
	}, nil
}
