package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"sudarshan-portal/internal/dto"
	"sudarshan-portal/internal/ledger"
	"sudarshan-portal/internal/models"
	"sudarshan-portal/internal/repository"
	"sudarshan-portal/internal/service"
	"sudarshan-portal/pkg/config"
	"sudarshan-portal/pkg/logger"
	"sudarshan-portal/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type seedLine struct {
	category    string
	base        float64
	step        float64
	description string
}

// one shop day; amounts drift with the day index so charts are not flat
var dayTemplate = []seedLine{
	{models.CategorySales, 4200, 85, "Counter sales"},
	{models.CategorySales, 1500, 40, "UPI sales"},
	{models.CategoryPurchase, 2600, 35, "Wholesale stock"},
	{models.CategoryExpense, 350, 10, "Electricity and tea"},
}

func main() {
	email := flag.String("email", "demo@sudarshan.local", "demo user email")
	password := flag.String("password", "demo1234", "demo user password")
	days := flag.Int("days", 30, "days of transactions to generate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	authService := service.NewAuthService(userRepo, appLogger)

	appLogger.Info("Starting database seeding...")

	userID, err := ensureDemoUser(ctx, authService, userRepo, *email, *password)
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	txs := demoTransactions(userID, *days, time.Now().UTC())
	if err := txRepo.CreateBatch(ctx, txs); err != nil {
		appLogger.Fatal("Failed to insert transactions", zap.Error(err))
	}

	totals := ledger.Sum(txs)
	appLogger.Info("Database seeding completed successfully!",
		zap.String("user_id", userID),
		zap.Int("transactions", len(txs)),
		zap.Float64("net", totals.Net),
	)
}

func ensureDemoUser(
	ctx context.Context,
	authService *service.AuthService,
	userRepo *repository.UserRepository,
	email, password string,
) (string, error) {
	resp, err := authService.Register(ctx, &dto.RegisterRequest{
		Username: "demo",
		Email:    email,
		Password: password,
	})
	if err == nil {
		return resp.UserID, nil
	}
	if !errors.Is(err, service.ErrUserExists) {
		return "", err
	}

	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.ID.String(), nil
}

func demoTransactions(userID string, days int, now time.Time) []*models.Transaction {
	start, _ := ledger.DayWindow(now)

	txs := make([]*models.Transaction, 0, days*len(dayTemplate))
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, -d)
		for i, line := range dayTemplate {
			description := line.description
			txs = append(txs, &models.Transaction{
				ID:          uuid.New(),
				UserID:      userID,
				Category:    line.category,
				Amount:      line.base + line.step*float64((d*7+i*3)%11),
				Description: &description,
				Date:        day.Add(time.Duration(9+i*2) * time.Hour),
				CreatedAt:   now,
			})
		}
	}
	return txs
}
