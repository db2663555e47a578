// Package ledger aggregates transactions into category totals and
// per-day buckets.
package ledger

import (
	"sort"
	"strings"
	"time"

	"sudarshan-portal/internal/models"

	"github.com/shopspring/decimal"
)

// DayLayout is the bucket key format.
const DayLayout = "2006-01-02"

type Totals struct {
	Sales    float64
	Purchase float64
	Expense  float64
	Net      float64
}

type DayBucket struct {
	Date     string
	Sales    float64
	Purchase float64
	Expense  float64
}

type accumulator struct {
	sales    decimal.Decimal
	purchase decimal.Decimal
	expense  decimal.Decimal
}

func (a *accumulator) add(category string, amount float64) {
	v := decimal.NewFromFloat(amount)
	switch strings.ToLower(category) {
	case models.CategorySales:
		a.sales = a.sales.Add(v)
	case models.CategoryPurchase:
		a.purchase = a.purchase.Add(v)
	case models.CategoryExpense:
		a.expense = a.expense.Add(v)
	}
}

// Sum totals the tracked categories. Other categories are ignored.
func Sum(txs []*models.Transaction) Totals {
	var acc accumulator
	for _, tx := range txs {
		acc.add(tx.Category, tx.Amount)
	}

	return Totals{
		Sales:    acc.sales.InexactFloat64(),
		Purchase: acc.purchase.InexactFloat64(),
		Expense:  acc.expense.InexactFloat64(),
		Net:      acc.sales.Sub(acc.purchase).Sub(acc.expense).InexactFloat64(),
	}
}

// Daily buckets transactions by UTC calendar day, oldest first. Every
// transaction opens a bucket for its day even when its category is not
// tracked.
func Daily(txs []*models.Transaction) []DayBucket {
	byDay := make(map[string]*accumulator)
	for _, tx := range txs {
		day := DayKey(tx.Date)
		acc, ok := byDay[day]
		if !ok {
			acc = &accumulator{}
			byDay[day] = acc
		}
		acc.add(tx.Category, tx.Amount)
	}

	buckets := make([]DayBucket, 0, len(byDay))
	for day, acc := range byDay {
		buckets = append(buckets, DayBucket{
			Date:     day,
			Sales:    acc.sales.InexactFloat64(),
			Purchase: acc.purchase.InexactFloat64(),
			Expense:  acc.expense.InexactFloat64(),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})

	return buckets
}

func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DayWindow returns [start of t's UTC day, start of next day).
func DayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
