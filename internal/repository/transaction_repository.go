package repository

import (
	"context"
	"fmt"
	"time"

	"sudarshan-portal/internal/models"
	"sudarshan-portal/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var transactionColumns = []string{"id", "user_id", "category", "amount", "description", "date", "created_at"}

// TransactionFilter selects a user's transactions. Zero From/To leave that
// side of the date range open; Limit 0 means no limit.
type TransactionFilter struct {
	UserID string
	From   time.Time // inclusive
	To     time.Time // exclusive
	Limit  int
}

type TransactionRepository struct {
	db     postgres.DB
	logger *zap.Logger
}

func NewTransactionRepository(db postgres.DB, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.Category, tx.Amount, tx.Description, tx.Date, tx.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	builder := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, tx := range transactions {
		builder = builder.Values(tx.ID, tx.UserID, tx.Category, tx.Amount, tx.Description, tx.Date, tx.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to create transactions: %w", err)
	}
	return nil
}

// Find returns matching transactions, newest date first.
func (r *TransactionRepository) Find(ctx context.Context, f TransactionFilter) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": f.UserID}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if !f.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"date": f.From})
	}
	if !f.To.IsZero() {
		query = query.Where(squirrel.Lt{"date": f.To})
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Category, &tx.Amount, &tx.Description, &tx.Date, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		tx.Date = tx.Date.UTC()
		tx.CreatedAt = tx.CreatedAt.UTC()
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}
