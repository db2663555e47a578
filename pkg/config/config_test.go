package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("SERVER_READ_TIMEOUT", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, ProviderGigaChat, cfg.AI.Provider)
		require.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
		require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		require.Equal(t, 20*1024*1024, cfg.Server.BodyLimit)
	})

	t.Run("reads database and ai settings", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")
		t.Setenv("DB_NAME", "ledger")
		t.Setenv("AI_PROVIDER", "Gemini")
		t.Setenv("AI_API_KEY", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "postgres://u:p@db:5432/app", cfg.Database.URL)
		require.Equal(t, "ledger", cfg.Database.DBName)
		require.Equal(t, ProviderGemini, cfg.AI.Provider)
		require.Equal(t, "secret", cfg.AI.APIKey)
	})

	t.Run("splits cors origins", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "")
		t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example ")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "openai")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown AI_PROVIDER")
	})

	t.Run("rejects non-numeric timeout", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "")
		t.Setenv("SERVER_WRITE_TIMEOUT", "soon")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "SERVER_WRITE_TIMEOUT")
	})
}
