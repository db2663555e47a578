package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"sudarshan-portal/internal/models"
	"sudarshan-portal/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var scanColumns = []string{"id", "user_id", "filename", "extracted_data", "created_at"}

type ScanRepository struct {
	db     postgres.DB
	logger *zap.Logger
}

func NewScanRepository(db postgres.DB, logger *zap.Logger) *ScanRepository {
	return &ScanRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ScanRepository) Create(ctx context.Context, scan *models.DocumentScan) error {
	data, err := json.Marshal(scan.ExtractedData)
	if err != nil {
		return fmt.Errorf("failed to encode extracted data: %w", err)
	}

	query := squirrel.Insert("document_scans").
		Columns(scanColumns...).
		Values(scan.ID, scan.UserID, scan.Filename, data, scan.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to create document scan: %w", err)
	}
	return nil
}

// ListByUserID returns the user's scans, newest first.
func (r *ScanRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*models.DocumentScan, error) {
	query := squirrel.Select(scanColumns...).
		From("document_scans").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
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
		return nil, fmt.Errorf("failed to query document scans: %w", err)
	}
	defer rows.Close()

	scans := make([]*models.DocumentScan, 0)
	for rows.Next() {
		var scan models.DocumentScan
		var raw []byte
		if err := rows.Scan(&scan.ID, &scan.UserID, &scan.Filename, &raw, &scan.CreatedAt); err != nil {
			return nil, err
		}
		scan.ExtractedData = decodeExtracted(raw)
		scan.CreatedAt = scan.CreatedAt.UTC()
		scans = append(scans, &scan)
	}

	return scans, rows.Err()
}

// decodeExtracted never fails: NULL becomes an empty map and a non-object
// payload is kept under "raw_text".
func decodeExtracted(raw []byte) map[string]any {
	out := map[string]any{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"raw_text": string(raw)}
	}
	if out == nil {
		return map[string]any{}
	}
	return out
}
