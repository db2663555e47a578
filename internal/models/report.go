package models

import (
	"time"

	"github.com/google/uuid"
)

type DailyReport struct {
	ID            uuid.UUID `db:"id"`
	UserID        string    `db:"user_id"`
	Date          time.Time `db:"date"`
	SalesTotal    float64   `db:"sales_total"`
	PurchaseTotal float64   `db:"purchase_total"`
	ExpenseTotal  float64   `db:"expense_total"`
	NetAmount     float64   `db:"net_amount"`
	Insights      string    `db:"insights"`
	ActionPoints  []string  `db:"action_points"`
	CreatedAt     time.Time `db:"created_at"`
}
