package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type mockGenerator struct {
	response *genai.GenerateContentResponse
	err      error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (m *mockGenerator) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	m.model = model
	m.contents = contents
	m.config = config
	return m.response, m.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestGeminiGenerateText(t *testing.T) {
	t.Parallel()

	t.Run("text prompt", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{response: textResponse(`{"insights":`, ` "ok"}`)}
		g := NewGeminiWithGenerator(gen, "", zap.NewNop())

		text, err := g.GenerateText(context.Background(), Prompt{
			SessionID: "insights_1",
			System:    "be brief",
			User:      "summarize",
		})
		require.NoError(t, err)
		require.Equal(t, `{"insights": "ok"}`, text)

		require.Equal(t, geminiModel, gen.model)
		require.Len(t, gen.contents, 1)
		require.Len(t, gen.contents[0].Parts, 1)
		require.Equal(t, "summarize", gen.contents[0].Parts[0].Text)
		require.NotNil(t, gen.config.SystemInstruction)
		require.Equal(t, "be brief", gen.config.SystemInstruction.Parts[0].Text)
	})

	t.Run("image prompt sends inline data first", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{response: textResponse(`{"sales":[10]}`)}
		g := NewGeminiWithGenerator(gen, "gemini-custom", zap.NewNop())

		_, err := g.GenerateText(context.Background(), Prompt{
			User:  "extract",
			Image: NewImage([]byte{0xff, 0xd8}, "image/jpeg"),
		})
		require.NoError(t, err)

		require.Equal(t, "gemini-custom", gen.model)
		parts := gen.contents[0].Parts
		require.Len(t, parts, 2)
		require.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
		require.Equal(t, []byte{0xff, 0xd8}, parts[0].InlineData.Data)
		require.Equal(t, "extract", parts[1].Text)
		require.Nil(t, gen.config.SystemInstruction)
	})

	t.Run("generator error", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{err: errors.New("quota exceeded")}
		g := NewGeminiWithGenerator(gen, "", zap.NewNop())

		_, err := g.GenerateText(context.Background(), Prompt{User: "x"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{response: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{}}}
		g := NewGeminiWithGenerator(gen, "", zap.NewNop())

		_, err := g.GenerateText(context.Background(), Prompt{User: "x"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no response")
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{response: textResponse("")}
		g := NewGeminiWithGenerator(gen, "", zap.NewNop())

		_, err := g.GenerateText(context.Background(), Prompt{User: "x"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no text content")
	})
}
