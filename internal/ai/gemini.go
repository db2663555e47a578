package ai

import (
	"context"
	"fmt"

	"sudarshan-portal/pkg/config"
	"sudarshan-portal/pkg/telemetry"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// ContentGenerator is the slice of the genai API Gemini depends on.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type modelsAdapter struct {
	models *genai.Models
}

func (m *modelsAdapter) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	resp, err := m.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai.GenerateContent: %w", err)
	}
	return resp, nil
}

type Gemini struct {
	generator ContentGenerator
	model     string
	logger    *zap.Logger
}

func NewGemini(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: telemetry.NewHTTPClient(nil),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := NewGeminiWithGenerator(&modelsAdapter{models: client.Models}, cfg.Model, logger)
	logger.Info("Gemini client initialized", zap.String("model", g.model))

	return g, nil
}

// NewGeminiWithGenerator builds a Gemini backed by an arbitrary generator.
// An empty model selects the default.
func NewGeminiWithGenerator(generator ContentGenerator, model string, logger *zap.Logger) *Gemini {
	if model == "" {
		model = geminiModel
	}
	return &Gemini{
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

func (g *Gemini) GenerateText(ctx context.Context, p Prompt) (string, error) {
	parts := make([]*genai.Part, 0, 2)
	if p.Image != nil {
		data, err := p.Image.Bytes()
		if err != nil {
			return "", err
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: p.Image.MIMEType, Data: data}})
	}
	parts = append(parts, &genai.Part{Text: p.User})

	temp := float32(0.3)
	cfg := &genai.GenerateContentConfig{Temperature: &temp}
	if p.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: p.System}},
		}
	}

	resp, err := g.generator.GenerateContent(ctx, g.model, []*genai.Content{
		{Role: "user", Parts: parts},
	}, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content in Gemini response")
	}

	g.logger.Info("Gemini response received",
		zap.String("session_id", p.SessionID),
		zap.Bool("image", p.Image != nil),
		zap.Int("length", len(text)),
	)

	return text, nil
}

func (g *Gemini) Close() error {
	return nil
}
