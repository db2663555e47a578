package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"sudarshan-portal/internal/models"
)

// TransactionRequest is the structured (JSON) form of a new transaction.
type TransactionRequest struct {
	UserID      string   `json:"user_id,omitempty"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
}

// ErrAmountNotNumber is returned when a JSON amount is neither a number nor
// a numeric string.
var ErrAmountNotNumber = errors.New("amount must be a number")

// UnmarshalJSON accepts amount as a JSON number or a numeric string.
func (r *TransactionRequest) UnmarshalJSON(data []byte) error {
	type plain TransactionRequest
	aux := struct {
		*plain
		Amount json.RawMessage `json:"amount"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Amount = nil
	raw := bytes.TrimSpace(aux.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ErrAmountNotNumber
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return ErrAmountNotNumber
		}
		r.Amount = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return ErrAmountNotNumber
	}
	r.Amount = &v
	return nil
}

// CreateTransactionInput gathers every source a transaction can arrive
// from. Form holds urlencoded or multipart fields; Body is nil when the
// request carried no JSON.
type CreateTransactionInput struct {
	Body        *TransactionRequest
	Form        map[string]string
	QueryUserID string
}

type TransactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		UserID:      tx.UserID,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date.UTC(),
		CreatedAt:   tx.CreatedAt.UTC(),
	}
}

func ToTransactionResponses(txs []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionResponse(tx))
	}
	return out
}
