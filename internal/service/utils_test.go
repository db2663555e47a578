package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	t.Parallel()

	require.Equal(t, 50, clampLimit(0, 50))
	require.Equal(t, 30, clampLimit(-1, 30))
	require.Equal(t, 7, clampLimit(7, 50))
	require.Equal(t, maxListLimit, clampLimit(100000, 50))
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-03-10T10:00:00Z", want: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)},
		{in: "2024-03-10T10:00:00.250Z", want: time.Date(2024, 3, 10, 10, 0, 0, 250_000_000, time.UTC)},
		{in: "2024-03-10T10:00:00+05:30", want: time.Date(2024, 3, 10, 4, 30, 0, 0, time.UTC)},
		{in: "2024-03-10T10:00:00", want: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)},
		{in: "2024-03-10", want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{in: " 2024-03-10 ", want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{in: "10/03/2024", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseTimestamp(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "नम", truncateRunes("नमस्ते", 2))
	require.Equal(t, "abc", truncateRunes("abc", 10))
}

func TestSanitizeUTF8(t *testing.T) {
	t.Parallel()

	require.Equal(t, "ok", sanitizeUTF8("o\xffk"))
	require.Equal(t, "बिक्री", sanitizeUTF8("बिक्री"))
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := error(&UpstreamError{Op: "failed to scan document", Err: cause})
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to scan document: timeout", err.Error())
}

func TestUpstreamErrorDetail(t *testing.T) {
	t.Parallel()

	err := &UpstreamError{Op: "failed to generate insights", Err: errors.New("GigaChat unavailable")}
	require.Equal(t, "GigaChat unavailable", err.Detail())
	require.Equal(t, "failed to save scan", (&UpstreamError{Op: "failed to save scan"}).Detail())
}
