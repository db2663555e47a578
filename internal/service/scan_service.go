package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"sudarshan-portal/internal/ai"
	"sudarshan-portal/internal/dto"
	"sudarshan-portal/internal/models"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxImageSide     = 2048
	jpegQuality      = 85
	maxDocumentRunes = 20000

	ocrSystemPrompt = "You are an OCR assistant. Extract all numbers from the document and categorize them as Sales, Purchase, or Expense. Return JSON format with categories and amounts."
	ocrUserPrompt   = `Extract all numbers from this document. Identify which are Sales, Purchase, or Expense amounts. Return as JSON: {"sales": [amounts], "purchase": [amounts], "expense": [amounts]}`
)

type ScanService struct {
	scanRepo  ScanStore
	generator ai.Generator
	logger    *zap.Logger
}

func NewScanService(scanRepo ScanStore, generator ai.Generator, logger *zap.Logger) *ScanService {
	return &ScanService{
		scanRepo:  scanRepo,
		generator: generator,
		logger:    logger,
	}
}

// ScanDocument asks the model to pull categorized amounts out of an
// uploaded image or PDF and stores the result.
func (s *ScanService) ScanDocument(ctx context.Context, userID, filename string, data []byte) (*dto.ScanResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError("user_id is required")
	}
	if len(data) == 0 {
		return nil, validationError("file is required")
	}

	sessionID := "ocr_" + uuid.New().String()
	log := s.logger.With(
		zap.String("session_id", sessionID),
		zap.String("user_id", userID),
		zap.String("filename", filename),
	)

	prompt, err := buildScanPrompt(filename, data)
	if err != nil {
		log.Error("Failed to read document", zap.Error(err))
		return nil, &UpstreamError{Op: "failed to read document", Err: err}
	}
	prompt.SessionID = sessionID

	reply, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Error("Document extraction failed", zap.Error(err))
		return nil, &UpstreamError{Op: "failed to scan document", Err: err}
	}

	extracted := parseExtraction(reply)

	scan := &models.DocumentScan{
		ID:            uuid.New(),
		UserID:        userID,
		Filename:      sanitizeUTF8(filename),
		ExtractedData: extracted,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.scanRepo.Create(ctx, scan); err != nil {
		log.Error("Failed to save scan", zap.Error(err))
		return nil, &UpstreamError{Op: "failed to save scan", Err: err}
	}

	log.Info("Document scanned", zap.String("scan_id", scan.ID.String()))

	return &dto.ScanResponse{
		Message:       "Document scanned successfully",
		ExtractedData: extracted,
		ScanID:        scan.ID.String(),
	}, nil
}

func (s *ScanService) ListScans(ctx context.Context, userID string, limit int) ([]dto.DocumentScanResponse, error) {
	scans, err := s.scanRepo.ListByUserID(ctx, userID, clampLimit(limit, defaultScanLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return dto.ToDocumentScanResponses(scans), nil
}

func buildScanPrompt(filename string, data []byte) (ai.Prompt, error) {
	prompt := ai.Prompt{
		System: ocrSystemPrompt,
		User:   ocrUserPrompt,
	}

	if !isPDF(filename, data) {
		prompt.Image = prepareImage(data)
		return prompt, nil
	}

	text, firstPage, err := readPDF(data)
	if err != nil {
		return ai.Prompt{}, err
	}

	if text != "" {
		prompt.User = ocrUserPrompt + "\n\nDocument text:\n" + text
		return prompt, nil
	}

	// no text layer, most likely a scan
	if firstPage == nil {
		return ai.Prompt{}, fmt.Errorf("pdf has no pages")
	}
	img, err := encodeJPEG(firstPage)
	if err != nil {
		return ai.Prompt{}, err
	}
	prompt.Image = img
	return prompt, nil
}

func isPDF(filename string, data []byte) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf") || bytes.HasPrefix(data, []byte("%PDF-"))
}

// readPDF returns the document's text and, when there is no text, an image
// of its first page.
func readPDF(data []byte) (string, image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", nil, fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sanitizeUTF8(sb.String()))
	if text != "" {
		return truncateRunes(text, maxDocumentRunes), nil, nil
	}

	if doc.NumPage() == 0 {
		return "", nil, nil
	}
	page, err := doc.Image(0)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render page 1: %w", err)
	}
	return "", page, nil
}

// prepareImage shrinks the image to fit maxImageSide and re-encodes it as
// JPEG. Undecodable input is passed through with its sniffed type.
func prepareImage(data []byte) *ai.Image {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return ai.NewImage(data, http.DetectContentType(data))
	}

	out, err := encodeJPEG(img)
	if err != nil {
		return ai.NewImage(data, http.DetectContentType(data))
	}
	return out
}

func encodeJPEG(img image.Image) (*ai.Image, error) {
	img = imaging.Fit(img, maxImageSide, maxImageSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return ai.NewImage(buf.Bytes(), "image/jpeg"), nil
}

// parseExtraction decodes the model's JSON object, keeping the raw reply
// when it is not one.
func parseExtraction(reply string) map[string]any {
	var data map[string]any
	if err := ai.DecodeJSON(reply, &data); err != nil || data == nil {
		return map[string]any{"raw_text": reply}
	}
	return data
}
