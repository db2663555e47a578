package postgres

import (
	"context"
	"fmt"
)

// Migrate creates the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			category TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			description TEXT,
			date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date DESC)`,

		`CREATE TABLE IF NOT EXISTS daily_reports (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			sales_total DOUBLE PRECISION NOT NULL DEFAULT 0,
			purchase_total DOUBLE PRECISION NOT NULL DEFAULT 0,
			expense_total DOUBLE PRECISION NOT NULL DEFAULT 0,
			net_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			insights TEXT,
			action_points TEXT[],
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_reports_user_date ON daily_reports(user_id, date DESC)`,

		`CREATE TABLE IF NOT EXISTS document_scans (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			filename TEXT NOT NULL DEFAULT '',
			extracted_data JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_document_scans_user_created ON document_scans(user_id, created_at DESC)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
