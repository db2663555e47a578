package repository

import (
	"context"
	"testing"
	"time"

	"sudarshan-portal/internal/models"
	"sudarshan-portal/pkg/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserRepository(t *testing.T) {
	tx := postgres.TestTx(t)
	repo := NewUserRepository(tx, zap.NewNop())
	ctx := context.Background()

	user := &models.User{
		ID:        uuid.New(),
		Username:  "asha",
		Email:     "asha-" + uuid.NewString() + "@example.com",
		Password:  "hash",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "asha", got.Username)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, byID.Email)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionRepositoryFind(t *testing.T) {
	tx := postgres.TestTx(t)
	repo := NewTransactionRepository(tx, zap.NewNop())
	ctx := context.Background()

	userID := "user-" + uuid.NewString()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var batch []*models.Transaction
	for i := 0; i < 5; i++ {
		batch = append(batch, &models.Transaction{
			ID:        uuid.New(),
			UserID:    userID,
			Category:  "sales",
			Amount:    float64(100 * (i + 1)),
			Date:      base.AddDate(0, 0, -i),
			CreatedAt: base,
		})
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	all, err := repo.Find(ctx, TransactionFilter{UserID: userID, Limit: 3})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		require.False(t, all[i].Date.After(all[i-1].Date))
	}

	window, err := repo.Find(ctx, TransactionFilter{
		UserID: userID,
		From:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, window, 1)
	require.Equal(t, 200.0, window[0].Amount)

	none, err := repo.Find(ctx, TransactionFilter{UserID: "nobody"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestReportRepository(t *testing.T) {
	tx := postgres.TestTx(t)
	repo := NewReportRepository(tx, zap.NewNop())
	ctx := context.Background()

	rep := &models.DailyReport{
		ID:           uuid.New(),
		UserID:       "user-" + uuid.NewString(),
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SalesTotal:   100,
		ExpenseTotal: 30,
		NetAmount:    70,
		Insights:     "ok",
		ActionPoints: []string{"a", "b", "c", "d", "e"},
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, rep))

	got, err := repo.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	require.Equal(t, rep.ActionPoints, got.ActionPoints)
	require.Equal(t, 70.0, got.NetAmount)

	list, err := repo.ListByUserID(ctx, rep.UserID, 30)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScanRepository(t *testing.T) {
	tx := postgres.TestTx(t)
	repo := NewScanRepository(tx, zap.NewNop())
	ctx := context.Background()

	scan := &models.DocumentScan{
		ID:            uuid.New(),
		UserID:        "user-" + uuid.NewString(),
		Filename:      "bill.jpg",
		ExtractedData: map[string]any{"sales": []any{100.0}},
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, scan))

	list, err := repo.ListByUserID(ctx, scan.UserID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, []any{100.0}, list[0].ExtractedData["sales"])
}

func TestDecodeExtracted(t *testing.T) {
	t.Parallel()

	require.Equal(t, map[string]any{}, decodeExtracted(nil))
	require.Equal(t, map[string]any{}, decodeExtracted([]byte("null")))
	require.Equal(t, map[string]any{"raw_text": "[1,2]"}, decodeExtracted([]byte("[1,2]")))
	require.Equal(t, map[string]any{"expense": []any{5.0}, "extra": "kept"},
		decodeExtracted([]byte(`{"expense":[5],"extra":"kept"}`)))
}
