package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sudarshan-portal/internal/ai"
	"sudarshan-portal/internal/dto"
	"sudarshan-portal/internal/export"
	"sudarshan-portal/internal/ledger"
	"sudarshan-portal/internal/models"
	"sudarshan-portal/internal/repository"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	reportTransactionLimit = 1000
	actionPointCount       = 5
	insightsFallbackRunes  = 500
	noInsights             = "No insights available"

	insightsSystemPrompt = "You are a business insights assistant. Provide insights in Hindi and English mix for Indian business owners."
)

// defaultActionPoints fill in when the model gives fewer than five points
// or an unreadable reply.
var defaultActionPoints = []string{
	"रिपोर्ट की समीक्षा करें",
	"खर्च कम करें",
	"बिक्री बढ़ाएं",
	"स्टॉक जांचें",
	"ग्राहक संपर्क करें",
}

type ReportService struct {
	txRepo     TransactionStore
	reportRepo ReportStore
	generator  ai.Generator
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportService(
	txRepo TransactionStore,
	reportRepo ReportStore,
	generator ai.Generator,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		txRepo:     txRepo,
		reportRepo: reportRepo,
		generator:  generator,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateDailyReport summarizes one UTC day of the user's transactions and
// asks the model for insights. rawDate may be empty for today.
func (s *ReportService) GenerateDailyReport(ctx context.Context, userID, rawDate string) (*dto.ReportResponse, error) {
	requested := s.now().UTC()
	if strings.TrimSpace(rawDate) != "" {
		parsed, err := parseTimestamp(rawDate)
		if err != nil {
			return nil, validationError("Invalid date format")
		}
		requested = parsed
	}

	start, end := ledger.DayWindow(requested)

	txs, err := s.txRepo.Find(ctx, repository.TransactionFilter{
		UserID: userID,
		From:   start,
		To:     end,
		Limit:  reportTransactionLimit,
	})
	if err != nil {
		s.logger.Error("Failed to load transactions for report", zap.String("user_id", userID), zap.Error(err))
		return nil, &UpstreamError{Op: "failed to load transactions", Err: err}
	}

	totals := ledger.Sum(txs)
	sessionID := "insights_" + uuid.New().String()

	s.logger.Info("Generating daily report",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
		zap.String("day", ledger.DayKey(start)),
		zap.Int("transactions", len(txs)),
	)

	reply, err := s.generator.GenerateText(ctx, ai.Prompt{
		SessionID: sessionID,
		System:    insightsSystemPrompt,
		User:      buildInsightsPrompt(totals),
	})
	if err != nil {
		s.logger.Error("Insights generation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, &UpstreamError{Op: "failed to generate insights", Err: err}
	}

	insights, points := parseInsights(reply)

	report := &models.DailyReport{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          requested,
		SalesTotal:    totals.Sales,
		PurchaseTotal: totals.Purchase,
		ExpenseTotal:  totals.Expense,
		NetAmount:     totals.Net,
		Insights:      sanitizeUTF8(insights),
		ActionPoints:  points,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to save report", zap.String("report_id", report.ID.String()), zap.Error(err))
		return nil, &UpstreamError{Op: "failed to save report", Err: err}
	}

	resp := dto.ToReportResponse(report)
	return &resp, nil
}

func (s *ReportService) ListReports(ctx context.Context, userID string, limit int) ([]dto.ReportResponse, error) {
	reports, err := s.reportRepo.ListByUserID(ctx, userID, clampLimit(limit, defaultReportLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return dto.ToReportResponses(reports), nil
}

// RenderReportPDF renders one of the user's reports. Reports owned by
// someone else are reported as not found.
func (s *ReportService) RenderReportPDF(ctx context.Context, userID, reportID string) ([]byte, error) {
	id, err := uuid.Parse(reportID)
	if err != nil {
		return nil, ErrNotFound
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report.UserID != userID {
		return nil, ErrNotFound
	}

	return export.ReportPDF(report)
}

func rupees(v float64) string {
	return "₹" + humanize.FormatFloat("#,###.##", v)
}

func buildInsightsPrompt(t ledger.Totals) string {
	return fmt.Sprintf(`Daily Business Report:
- Sales: %s
- Purchase: %s
- Expense: %s
- Net: %s

Provide:
1. Brief insights in Hindi-English mix (2-3 sentences)
2. Exactly 5 action points for tomorrow in Hindi

Format as JSON: {"insights": "text", "action_points": ["point1", "point2", "point3", "point4", "point5"]}`,
		rupees(t.Sales), rupees(t.Purchase), rupees(t.Expense), rupees(t.Net))
}

// parseInsights never fails: an unreadable reply becomes the insight text
// itself, truncated, with the default action points.
func parseInsights(reply string) (string, []string) {
	var payload map[string]any
	if err := ai.DecodeJSON(reply, &payload); err != nil || payload == nil {
		return truncateRunes(strings.TrimSpace(reply), insightsFallbackRunes), append([]string(nil), defaultActionPoints...)
	}

	insights, _ := payload["insights"].(string)
	if strings.TrimSpace(insights) == "" {
		insights = noInsights
	}

	return insights, normalizeActionPoints(payload["action_points"])
}

// normalizeActionPoints returns exactly five points, padding from the
// defaults at the missing positions.
func normalizeActionPoints(raw any) []string {
	points := make([]string, 0, actionPointCount)

	if items, ok := raw.([]any); ok {
		for _, item := range items {
			if len(points) == actionPointCount {
				break
			}
			var p string
			switch v := item.(type) {
			case string:
				p = strings.TrimSpace(v)
			case nil:
			default:
				p = fmt.Sprint(v)
			}
			if p != "" {
				points = append(points, sanitizeUTF8(p))
			}
		}
	}

	for i := len(points); i < actionPointCount; i++ {
		points = append(points, defaultActionPoints[i])
	}

	return points
}
