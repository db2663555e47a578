package models

import (
	"time"

	"github.com/google/uuid"
)

// Categories that take part in totals. Matching is case-insensitive;
// any other category is stored but not aggregated.
const (
	CategorySales    = "sales"
	CategoryPurchase = "purchase"
	CategoryExpense  = "expense"
)

type Transaction struct {
	ID          uuid.UUID `db:"id"`
	UserID      string    `db:"user_id"`
	Category    string    `db:"category"`
	Amount      float64   `db:"amount"`
	Description *string   `db:"description"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
}
