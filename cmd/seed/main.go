// Command seed provisions demo users with bank accounts so the API can be
// exercised locally.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/LucasDiasTavares/bankingAPI/internal/config"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
	"github.com/LucasDiasTavares/bankingAPI/internal/repository"
	"github.com/LucasDiasTavares/bankingAPI/internal/service"
)

type seedUser struct {
	email       string
	username    string
	password    string
	accountType domain.AccountType
}

var seedUsers = []seedUser{
	{"alice@example.com", "alice", "password123", domain.AccountTypeSavings},
	{"bob@example.com", "bob", "password123", domain.AccountTypeCurrent},
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("banking-seed", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     5,
		MaxIdleConns:     2,
		ConnMaxLifetimeS: 300,
		ConnMaxIdleTimeS: 60,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	accounts := service.NewAccountService(
		repository.NewUserRepository(db),
		repository.NewAccountRepository(db),
		cfg.AccountNumberStartFrom,
	)

	for _, u := range seedUsers {
		user, account, err := accounts.CreateUserWithAccount(ctx, u.email, u.username, u.password, u.accountType)
		if errors.Is(err, domain.ErrUserExists) {
			slog.Info("user already seeded", "email", u.email)
			continue
		}
		if err != nil {
			slog.Error("failed to seed user", "email", u.email, "error", err)
			os.Exit(1)
		}
		slog.Info("seeded user",
			"email", user.Email,
			"account_number", account.AccountNumber,
			"account_type", u.accountType,
		)
	}
}
