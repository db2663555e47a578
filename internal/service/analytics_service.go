package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sudarshan-portal/internal/dto"
	"sudarshan-portal/internal/export"
	"sudarshan-portal/internal/ledger"
	"sudarshan-portal/internal/models"
	"sudarshan-portal/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultAnalyticsDays    = 30
	maxAnalyticsDays        = 36500
	analyticsTransactionCap = 10000
)

type AnalyticsService struct {
	txRepo TransactionStore
	logger *zap.Logger
	now    func() time.Time
}

func NewAnalyticsService(txRepo TransactionStore, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		txRepo: txRepo,
		logger: logger,
		now:    time.Now,
	}
}

// GetAnalytics buckets the last days of transactions by UTC day.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, userID string, days int) (*dto.AnalyticsResponse, error) {
	txs, err := s.window(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	return dto.ToAnalyticsResponse(ledger.Daily(txs), ledger.Sum(txs)), nil
}

// RenderAnalyticsChart draws the window's category totals as a PNG pie.
func (s *AnalyticsService) RenderAnalyticsChart(ctx context.Context, userID string, days int) ([]byte, error) {
	days = clampDays(days)

	txs, err := s.window(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	png, err := export.TotalsChart(ledger.Sum(txs), fmt.Sprintf("Last %d days", days))
	if err != nil {
		if errors.Is(err, export.ErrEmptyChart) {
			return nil, validationError("no transactions to chart")
		}
		return nil, err
	}
	return png, nil
}

func (s *AnalyticsService) window(ctx context.Context, userID string, days int) ([]*models.Transaction, error) {
	days = clampDays(days)
	since := s.now().UTC().AddDate(0, 0, -days)

	txs, err := s.txRepo.Find(ctx, repository.TransactionFilter{
		UserID: userID,
		From:   since,
		Limit:  analyticsTransactionCap,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	s.logger.Debug("Analytics window loaded",
		zap.String("user_id", userID),
		zap.Int("days", days),
		zap.Int("transactions", len(txs)),
	)

	return txs, nil
}

// clampDays defaults non-positive windows and caps the rest at a century.
func clampDays(days int) int {
	switch {
	case days <= 0:
		return defaultAnalyticsDays
	case days > maxAnalyticsDays:
		return maxAnalyticsDays
	}
	return days
}
