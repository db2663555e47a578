package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sudarshan-portal/internal/models"
	"sudarshan-portal/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportFixture struct {
	txs     *testutil.TransactionStore
	reports *testutil.ReportStore
	gen     *testutil.Generator
	svc     *ReportService
}

func newReportFixture(t *testing.T, reply string) *reportFixture {
	t.Helper()

	f := &reportFixture{
		txs:     testutil.NewTransactionStore(),
		reports: testutil.NewReportStore(),
		gen:     &testutil.Generator{Reply: reply},
	}
	f.svc = NewReportService(f.txs, f.reports, f.gen, zap.NewNop())
	f.svc.now = func() time.Time { return time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC) }
	return f
}

func (f *reportFixture) add(t *testing.T, category string, amount float64, date time.Time) {
	t.Helper()
	require.NoError(t, f.txs.Create(context.Background(), &models.Transaction{
		ID:       uuid.New(),
		UserID:   "u1",
		Category: category,
		Amount:   amount,
		Date:     date,
	}))
}

func TestGenerateDailyReport(t *testing.T) {
	t.Parallel()

	reply := "```json\n" + `{"insights": "Aaj sales achhi rahi.", "action_points": ["a", "b", "c", "d", "e", "f"]}` + "\n```"
	f := newReportFixture(t, reply)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	f.add(t, "sales", 1000, day.Add(9*time.Hour))
	f.add(t, "Purchase", 300, day.Add(11*time.Hour))
	f.add(t, "expense", 200, day.Add(23*time.Hour))
	// outside the window or untracked
	f.add(t, "sales", 5000, day.Add(-time.Minute))
	f.add(t, "sales", 7000, day.Add(24*time.Hour))
	f.add(t, "loan", 999, day.Add(12*time.Hour))

	report, err := f.svc.GenerateDailyReport(context.Background(), "u1", "2024-03-10T15:30:00Z")
	require.NoError(t, err)

	require.Equal(t, 1000.0, report.SalesTotal)
	require.Equal(t, 300.0, report.PurchaseTotal)
	require.Equal(t, 200.0, report.ExpenseTotal)
	require.Equal(t, 500.0, report.NetAmount)
	require.Equal(t, "Aaj sales achhi rahi.", report.Insights)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, report.ActionPoints)
	require.Equal(t, time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC), report.Date)

	prompt := f.gen.Last()
	require.True(t, strings.HasPrefix(prompt.SessionID, "insights_"))
	require.Equal(t, insightsSystemPrompt, prompt.System)
	require.Contains(t, prompt.User, "- Sales: ₹1,000.00")
	require.Contains(t, prompt.User, "- Net: ₹500.00")
	require.Nil(t, prompt.Image)

	require.Len(t, f.reports.All(), 1)
}

func TestGenerateDailyReportDefaultsToToday(t *testing.T) {
	t.Parallel()

	f := newReportFixture(t, `{"insights": "ok", "action_points": []}`)
	f.add(t, "sales", 40, time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC))

	report, err := f.svc.GenerateDailyReport(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Equal(t, 40.0, report.SalesTotal)
	require.Equal(t, defaultActionPoints, report.ActionPoints)
}

func TestGenerateDailyReportFallback(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("बिक्री ", 200)
	f := newReportFixture(t, long)

	report, err := f.svc.GenerateDailyReport(context.Background(), "u1", "2024-03-10")
	require.NoError(t, err)
	require.Equal(t, insightsFallbackRunes, len([]rune(report.Insights)))
	require.Equal(t, defaultActionPoints, report.ActionPoints)
	require.Equal(t, 0.0, report.NetAmount)
}

func TestGenerateDailyReportErrors(t *testing.T) {
	t.Parallel()

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()
		f := newReportFixture(t, "{}")
		_, err := f.svc.GenerateDailyReport(context.Background(), "u1", "10/03/2024")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Empty(t, f.gen.Prompts())
	})

	t.Run("ai failure", func(t *testing.T) {
		t.Parallel()
		f := newReportFixture(t, "")
		f.gen.Err = errors.New("model overloaded")

		_, err := f.svc.GenerateDailyReport(context.Background(), "u1", "")
		var upErr *UpstreamError
		require.ErrorAs(t, err, &upErr)
		require.Equal(t, "model overloaded", upErr.Detail())
		require.Empty(t, f.reports.All())
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		f := newReportFixture(t, `{"insights":"x"}`)
		f.reports.Err = errors.New("disk full")

		_, err := f.svc.GenerateDailyReport(context.Background(), "u1", "")
		var upErr *UpstreamError
		require.ErrorAs(t, err, &upErr)
	})
}

func TestParseInsights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		reply        string
		wantInsights string
		wantPoints   []string
	}{
		{
			name:         "missing insights",
			reply:        `{"action_points": ["one"]}`,
			wantInsights: noInsights,
			wantPoints:   []string{"one", defaultActionPoints[1], defaultActionPoints[2], defaultActionPoints[3], defaultActionPoints[4]},
		},
		{
			name:         "non string points",
			reply:        `{"insights": "hi", "action_points": [1, "", null, "two"]}`,
			wantInsights: "hi",
			wantPoints:   []string{"1", "two", defaultActionPoints[2], defaultActionPoints[3], defaultActionPoints[4]},
		},
		{
			name:         "json array",
			reply:        `["a"]`,
			wantInsights: `["a"]`,
			wantPoints:   defaultActionPoints,
		},
		{
			name:         "json null",
			reply:        `null`,
			wantInsights: `null`,
			wantPoints:   defaultActionPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			insights, points := parseInsights(tt.reply)
			require.Equal(t, tt.wantInsights, insights)
			require.Equal(t, tt.wantPoints, points)
		})
	}
}

func TestListReports(t *testing.T) {
	t.Parallel()

	f := newReportFixture(t, "")
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		require.NoError(t, f.reports.Create(ctx, &models.DailyReport{
			ID:     uuid.New(),
			UserID: "u1",
			Date:   base.Add(time.Duration(i) * 24 * time.Hour),
		}))
	}

	got, err := f.svc.ListReports(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, defaultReportLimit)
	require.Equal(t, base.Add(39*24*time.Hour), got[0].Date)

	got, err = f.svc.ListReports(ctx, "u1", 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
}

func TestRenderReportPDF(t *testing.T) {
	t.Parallel()

	f := newReportFixture(t, "")
	ctx := context.Background()
	rep := &models.DailyReport{
		ID:           uuid.New(),
		UserID:       "u1",
		Date:         time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		SalesTotal:   100,
		NetAmount:    100,
		Insights:     "ok",
		ActionPoints: defaultActionPoints,
	}
	require.NoError(t, f.reports.Create(ctx, rep))

	pdf, err := f.svc.RenderReportPDF(ctx, "u1", rep.ID.String())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = f.svc.RenderReportPDF(ctx, "someone-else", rep.ID.String())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.RenderReportPDF(ctx, "u1", uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.RenderReportPDF(ctx, "u1", "not-a-uuid")
	require.ErrorIs(t, err, ErrNotFound)
}
