package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentScan struct {
	ID            uuid.UUID      `db:"id"`
	UserID        string         `db:"user_id"`
	Filename      string         `db:"filename"`
	ExtractedData map[string]any `db:"extracted_data"`
	CreatedAt     time.Time      `db:"created_at"`
}
