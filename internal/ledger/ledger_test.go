package ledger

import (
	"testing"
	"time"

	"sudarshan-portal/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func tx(category string, amount float64, date time.Time) *models.Transaction {
	return &models.Transaction{Category: category, Amount: amount, Date: date}
}

func TestSum(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txs  []*models.Transaction
		want Totals
	}{
		{
			name: "empty",
			want: Totals{},
		},
		{
			name: "mixed categories",
			txs: []*models.Transaction{
				tx("sales", 1000, day),
				tx("purchase", 300, day),
				tx("expense", 200, day),
			},
			want: Totals{Sales: 1000, Purchase: 300, Expense: 200, Net: 500},
		},
		{
			name: "case insensitive",
			txs: []*models.Transaction{
				tx("Sales", 10.1, day),
				tx("SALES", 20.2, day),
				tx("Expense", 0.3, day),
			},
			want: Totals{Sales: 30.3, Expense: 0.3, Net: 30},
		},
		{
			name: "untracked category ignored",
			txs: []*models.Transaction{
				tx("refund", 500, day),
				tx("sales", 100, day),
			},
			want: Totals{Sales: 100, Net: 100},
		},
		{
			name: "negative net",
			txs: []*models.Transaction{
				tx("expense", 250.5, day),
			},
			want: Totals{Expense: 250.5, Net: -250.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Sum(tt.txs))
		})
	}
}

func TestDaily(t *testing.T) {
	t.Parallel()

	d1 := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	// 02:00 on the 11th in +05:30 is still the 10th in UTC
	ist := time.FixedZone("IST", 5*3600+1800)
	d2ist := time.Date(2024, 3, 11, 2, 0, 0, 0, ist)
	d3 := time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)

	got := Daily([]*models.Transaction{
		tx("sales", 100, d2),
		tx("expense", 40, d2ist),
		tx("purchase", 60, d1),
		tx("other", 999, d3),
	})

	require.Equal(t, []DayBucket{
		{Date: "2024-03-09", Purchase: 60},
		{Date: "2024-03-10", Sales: 100, Expense: 40},
		{Date: "2024-03-12"},
	}, got)
}

func TestDailyEmpty(t *testing.T) {
	t.Parallel()

	got := Daily(nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestDayWindow(t *testing.T) {
	t.Parallel()

	ist := time.FixedZone("IST", 5*3600+1800)
	start, end := DayWindow(time.Date(2024, 3, 11, 2, 0, 0, 0, ist))

	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

var categoryGen = rapid.SampledFrom([]string{"sales", "purchase", "expense", "Sales", "EXPENSE", "other"})

func transactionsGen() *rapid.Generator[[]*models.Transaction] {
	return rapid.Custom(func(t *rapid.T) []*models.Transaction {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		txs := make([]*models.Transaction, n)
		for i := range txs {
			cents := rapid.Int64Range(0, 10_000_000).Draw(t, "cents")
			hours := rapid.IntRange(0, 24*60).Draw(t, "hours")
			txs[i] = tx(
				categoryGen.Draw(t, "category"),
				float64(cents)/100,
				base.Add(time.Duration(hours)*time.Hour),
			)
		}
		return txs
	})
}

func TestSumNetProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		totals := Sum(transactionsGen().Draw(t, "txs"))

		want := decimal.NewFromFloat(totals.Sales).
			Sub(decimal.NewFromFloat(totals.Purchase)).
			Sub(decimal.NewFromFloat(totals.Expense))
		got := decimal.NewFromFloat(totals.Net)

		if !got.Sub(want).Abs().LessThan(decimal.New(1, -6)) {
			t.Fatalf("net %v != sales - purchase - expense %v", got, want)
		}
	})
}

func TestDailyMatchesSumProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		txs := transactionsGen().Draw(t, "txs")
		totals := Sum(txs)
		buckets := Daily(txs)

		days := make(map[string]bool)
		for _, tx := range txs {
			days[DayKey(tx.Date)] = true
		}
		if len(buckets) != len(days) {
			t.Fatalf("got %d buckets for %d distinct days", len(buckets), len(days))
		}

		var sales, purchase, expense decimal.Decimal
		for i, b := range buckets {
			if i > 0 && buckets[i-1].Date >= b.Date {
				t.Fatalf("buckets not sorted: %s before %s", buckets[i-1].Date, b.Date)
			}
			sales = sales.Add(decimal.NewFromFloat(b.Sales))
			purchase = purchase.Add(decimal.NewFromFloat(b.Purchase))
			expense = expense.Add(decimal.NewFromFloat(b.Expense))
		}

		eps := decimal.New(1, -6)
		if !sales.Sub(decimal.NewFromFloat(totals.Sales)).Abs().LessThan(eps) {
			t.Fatalf("bucket sales %v != total %v", sales, totals.Sales)
		}
		if !purchase.Sub(decimal.NewFromFloat(totals.Purchase)).Abs().LessThan(eps) {
			t.Fatalf("bucket purchase %v != total %v", purchase, totals.Purchase)
		}
		if !expense.Sub(decimal.NewFromFloat(totals.Expense)).Abs().LessThan(eps) {
			t.Fatalf("bucket expense %v != total %v", expense, totals.Expense)
		}
	})
}
