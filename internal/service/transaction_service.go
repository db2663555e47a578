package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"sudarshan-portal/internal/dto"
	"sudarshan-portal/internal/export"
	"sudarshan-portal/internal/models"
	"sudarshan-portal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const exportLimit = 1000

type TransactionService struct {
	txRepo TransactionStore
	logger *zap.Logger
}

func NewTransactionService(txRepo TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txRepo: txRepo,
		logger: logger,
	}
}

// CreateTransaction records one entry. The user id is taken from the form,
// then the query string, then the JSON body.
func (s *TransactionService) CreateTransaction(ctx context.Context, in *dto.CreateTransactionInput) (*dto.TransactionResponse, error) {
	userID := strings.TrimSpace(in.Form["user_id"])
	if userID == "" {
		userID = strings.TrimSpace(in.QueryUserID)
	}
	if userID == "" && in.Body != nil {
		userID = strings.TrimSpace(in.Body.UserID)
	}
	if userID == "" {
		return nil, validationError("user_id is required")
	}

	var (
		category    string
		amount      float64
		description *string
		rawDate     string
	)

	if in.Body != nil {
		if strings.TrimSpace(in.Body.Category) == "" || in.Body.Amount == nil {
			return nil, validationError("category and amount are required")
		}
		category = in.Body.Category
		amount = *in.Body.Amount
		description = in.Body.Description
		if in.Body.Date != nil {
			rawDate = *in.Body.Date
		}
	} else {
		category = in.Form["category"]
		rawAmount := strings.TrimSpace(in.Form["amount"])
		if strings.TrimSpace(category) == "" || rawAmount == "" {
			return nil, validationError("category and amount are required")
		}

		v, err := strconv.ParseFloat(rawAmount, 64)
		if err != nil {
			return nil, validationError("amount must be a number")
		}
		amount = v

		if d, ok := in.Form["description"]; ok && d != "" {
			description = &d
		}
		rawDate = in.Form["date"]
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, validationError("amount must be a number")
	}

	date := time.Now().UTC()
	if strings.TrimSpace(rawDate) != "" {
		parsed, err := parseTimestamp(rawDate)
		if err != nil {
			return nil, validationError("Invalid date format")
		}
		date = parsed
	}

	if description != nil {
		clean := sanitizeUTF8(*description)
		description = &clean
	}

	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    sanitizeUTF8(strings.TrimSpace(category)),
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.logger.Info("Transaction created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("user_id", userID),
		zap.String("category", tx.Category),
	)

	resp := dto.ToTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string, limit int) ([]dto.TransactionResponse, error) {
	txs, err := s.txRepo.Find(ctx, repository.TransactionFilter{
		UserID: userID,
		Limit:  clampLimit(limit, defaultTransactionLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return dto.ToTransactionResponses(txs), nil
}

// ExportTransactions renders the user's newest transactions as an XLSX
// workbook.
func (s *TransactionService) ExportTransactions(ctx context.Context, userID string) ([]byte, error) {
	txs, err := s.txRepo.Find(ctx, repository.TransactionFilter{
		UserID: userID,
		Limit:  exportLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	data, err := export.TransactionsXLSX(txs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transactions exported",
		zap.String("user_id", userID),
		zap.Int("count", len(txs)),
	)

	return data, nil
}
