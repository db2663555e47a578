package service

import (
	"context"

	"sudarshan-portal/internal/models"
	"sudarshan-portal/internal/repository"

	"github.com/google/uuid"
)

// Storage dependencies. The repository package satisfies them against
// PostgreSQL; tests use in-memory versions.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	Find(ctx context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error)
}

type ReportStore interface {
	Create(ctx context.Context, report *models.DailyReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DailyReport, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]*models.DailyReport, error)
}

type ScanStore interface {
	Create(ctx context.Context, scan *models.DocumentScan) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]*models.DocumentScan, error)
}

var (
	_ UserStore        = (*repository.UserRepository)(nil)
	_ TransactionStore = (*repository.TransactionRepository)(nil)
	_ ReportStore      = (*repository.ReportRepository)(nil)
	_ ScanStore        = (*repository.ScanRepository)(nil)
)
