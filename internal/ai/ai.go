// Package ai talks to the external language model used for document
// extraction and report narratives. Callers depend only on Generator.
package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"sudarshan-portal/pkg/config"

	"go.uber.org/zap"
)

// Image is an inline image attached to a prompt.
type Image struct {
	MIMEType string
	Base64   string
}

// NewImage base64-encodes data.
func NewImage(data []byte, mimeType string) *Image {
	return &Image{
		MIMEType: mimeType,
		Base64:   base64.StdEncoding.EncodeToString(data),
	}
}

// DataURI renders the image as a data: URI.
func (i *Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64
}

// Bytes decodes the image payload.
func (i *Image) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(i.Base64)
	if err != nil {
		return nil, fmt.Errorf("invalid image payload: %w", err)
	}
	return data, nil
}

// Prompt is one self-contained model request. SessionID only labels the
// call in logs and provider headers; no conversation state is kept.
type Prompt struct {
	SessionID string
	System    string
	User      string
	Image     *Image
}

// Generator sends a single prompt and returns the model's text. There is
// no retry and no streaming.
type Generator interface {
	GenerateText(ctx context.Context, p Prompt) (string, error)
	Close() error
}

// New builds the generator selected by cfg.Provider.
func New(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg, logger)
	case config.ProviderGigaChat, "":
		return NewGigaChat(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
