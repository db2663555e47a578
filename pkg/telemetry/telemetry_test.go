package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sudarshan-portal/pkg/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupDisabled(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(&config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(nil)
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
