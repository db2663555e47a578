package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
	}{
		{name: "debug json", level: "debug", format: "json", wantLevel: zapcore.DebugLevel},
		{name: "warn console", level: "warn", format: "console", wantLevel: zapcore.WarnLevel},
		{name: "unknown level falls back to info", level: "chatty", format: "", wantLevel: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := New(tt.level, tt.format)
			require.NoError(t, err)
			require.True(t, l.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				require.False(t, l.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestGetReturnsLogger(t *testing.T) {
	require.NotNil(t, Get())
	Sync()
}
