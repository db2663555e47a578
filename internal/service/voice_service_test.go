package service

import (
	"context"
	"testing"

	"sudarshan-portal/internal/dto"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTranscribe(t *testing.T) {
	t.Parallel()

	svc := NewVoiceService(zap.NewNop())

	tests := []struct {
		name           string
		req            dto.TranscribeRequest
		wantValidation bool
	}{
		{"missing user", dto.TranscribeRequest{AudioBase64: "AAAA"}, true},
		{"missing audio", dto.TranscribeRequest{UserID: "u1"}, true},
		{"bad base64", dto.TranscribeRequest{UserID: "u1", AudioBase64: "***"}, true},
		{"valid payload", dto.TranscribeRequest{UserID: "u1", AudioBase64: "UklGRg=="}, false},
		{"data uri", dto.TranscribeRequest{UserID: "u1", AudioBase64: "data:audio/webm;base64,GkXfow=="}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := svc.Transcribe(context.Background(), &tt.req)
			require.Error(t, err)
			if tt.wantValidation {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				return
			}
			require.ErrorIs(t, err, ErrNotImplemented)
			require.Equal(t, "voice transcription is not implemented", err.Error())
		})
	}
}

func TestSpeak(t *testing.T) {
	t.Parallel()

	svc := NewVoiceService(zap.NewNop())

	resp, err := svc.Speak(context.Background(), &dto.SpeakRequest{Text: "नमस्ते"})
	require.NoError(t, err)
	require.Nil(t, resp.AudioURL)
	require.Equal(t, "नमस्ते", resp.Text)
	require.Equal(t, "hi", resp.Language)

	resp, err = svc.Speak(context.Background(), &dto.SpeakRequest{Text: "hello", Language: "en"})
	require.NoError(t, err)
	require.Equal(t, "en", resp.Language)

	_, err = svc.Speak(context.Background(), &dto.SpeakRequest{Text: "  "})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}
