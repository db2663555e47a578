package dto

import (
	"time"

	"sudarshan-portal/internal/models"
)

type ScanResponse struct {
	Message       string         `json:"message"`
	ExtractedData map[string]any `json:"extracted_data"`
	ScanID        string         `json:"scan_id"`
}

type DocumentScanResponse struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Filename      string         `json:"filename"`
	ExtractedData map[string]any `json:"extracted_data"`
	CreatedAt     time.Time      `json:"created_at"`
}

func ToDocumentScanResponses(scans []*models.DocumentScan) []DocumentScanResponse {
	out := make([]DocumentScanResponse, 0, len(scans))
	for _, s := range scans {
		out = append(out, DocumentScanResponse{
			ID:            s.ID.String(),
			UserID:        s.UserID,
			Filename:      s.Filename,
			ExtractedData: s.ExtractedData,
			CreatedAt:     s.CreatedAt.UTC(),
		})
	}
	return out
}
