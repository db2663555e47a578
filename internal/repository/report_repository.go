package repository

import (
	"context"
	"fmt"

	"sudarshan-portal/internal/models"
	"sudarshan-portal/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var reportColumns = []string{
	"id", "user_id", "date", "sales_total", "purchase_total", "expense_total",
	"net_amount", "insights", "action_points", "created_at",
}

type ReportRepository struct {
	db     postgres.DB
	logger *zap.Logger
}

func NewReportRepository(db postgres.DB, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReportRepository) Create(ctx context.Context, rep *models.DailyReport) error {
	query := squirrel.Insert("daily_reports").
		Columns(reportColumns...).
		Values(rep.ID, rep.UserID, rep.Date, rep.SalesTotal, rep.PurchaseTotal, rep.ExpenseTotal,
			rep.NetAmount, rep.Insights, rep.ActionPoints, rep.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DailyReport, error) {
	query := squirrel.Select(reportColumns...).
		From("daily_reports").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rep, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return rep, nil
}

// ListByUserID returns the user's reports, newest date first.
func (r *ReportRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*models.DailyReport, error) {
	query := squirrel.Select(reportColumns...).
		From("daily_reports").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.DailyReport, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}

// scanReport tolerates NULL insights and action points.
func scanReport(row pgx.Row) (*models.DailyReport, error) {
	var rep models.DailyReport
	var insights *string
	if err := row.Scan(
		&rep.ID, &rep.UserID, &rep.Date, &rep.SalesTotal, &rep.PurchaseTotal, &rep.ExpenseTotal,
		&rep.NetAmount, &insights, &rep.ActionPoints, &rep.CreatedAt,
	); err != nil {
		return nil, err
	}
	if insights != nil {
		rep.Insights = *insights
	}
	if rep.ActionPoints == nil {
		rep.ActionPoints = []string{}
	}
	rep.Date = rep.Date.UTC()
	rep.CreatedAt = rep.CreatedAt.UTC()
	return &rep, nil
}
