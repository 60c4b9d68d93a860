package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/LucasDiasTavares/bankingAPI/internal/config"
	"github.com/LucasDiasTavares/bankingAPI/internal/handler"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
	"github.com/LucasDiasTavares/bankingAPI/internal/mailer"
	"github.com/LucasDiasTavares/bankingAPI/internal/middleware"
	"github.com/LucasDiasTavares/bankingAPI/internal/repository"
	"github.com/LucasDiasTavares/bankingAPI/internal/service"
	"github.com/LucasDiasTavares/bankingAPI/internal/service/ledger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("banking-api", cfg.LogLevel, cfg.AppEnv)

	db, err := repository.NewPostgresDB(context.Background(), cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go cleanIdempotencyCache(janitorCtx, repository.NewIdempotencyRepository(db))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           buildRouter(cfg, db),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// cleanIdempotencyCache evicts expired idempotency entries once an hour.
func cleanIdempotencyCache(ctx context.Context, repo *repository.IdempotencyRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.CleanExpired(ctx)
			if err != nil {
				slog.Warn("idempotency cache cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("idempotency cache cleaned", "entries", n)
			}
		}
	}
}

func buildRouter(cfg *config.Config, db *sql.DB) http.Handler {
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)

	ledgerSvc := ledger.NewService(accountRepo, transactionRepo, transferRepo, userRepo, mail, db, cfg)
	accountSvc := service.NewAccountService(userRepo, accountRepo, cfg.AccountNumberStartFrom)
	reportSvc := service.NewReportService(transactionRepo)
	dashboardSvc := service.NewDashboardService(expenseRepo)

	jwtExpiry := time.Duration(cfg.JWTExpiryM) * time.Minute

	authHandler := handler.NewAuthHandler(userRepo, mail, cfg.JWTSecret, jwtExpiry, cfg.FrontendURL)
	accountHandler := handler.NewAccountHandler(accountSvc)
	transactionHandler := handler.NewTransactionHandler(ledgerSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	healthHandler := handler.NewHealthHandler(db)

	authn := middleware.Auth(cfg.JWTSecret, accountRepo)
	idempotent := middleware.Idempotency(idempotencyRepo)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health/live", healthHandler.Liveness)
	mux.HandleFunc("GET /api/v1/health/ready", healthHandler.Readiness)

	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/request-password-reset", authHandler.RequestPasswordReset)
	mux.HandleFunc("PATCH /api/v1/auth/password-reset-complete", authHandler.CompletePasswordReset)

	mux.Handle("GET /api/v1/account", authn(http.HandlerFunc(accountHandler.Get)))

	mux.Handle("POST /api/v1/transactions/deposit", authn(idempotent(http.HandlerFunc(transactionHandler.Deposit))))
	mux.Handle("POST /api/v1/transactions/withdrawal", authn(idempotent(http.HandlerFunc(transactionHandler.Withdraw))))
	mux.Handle("POST /api/v1/transactions/transfer", authn(idempotent(http.HandlerFunc(transactionHandler.Transfer))))

	mux.Handle("GET /api/v1/transactions/report", authn(http.HandlerFunc(reportHandler.List)))
	mux.Handle("GET /api/v1/transactions/report/today", authn(http.HandlerFunc(reportHandler.ListToday)))
	mux.Handle("GET /api/v1/transactions/report/{days}", authn(http.HandlerFunc(reportHandler.ListDaysAgo)))

	mux.Handle("POST /api/v1/expenses", authn(http.HandlerFunc(dashboardHandler.CreateExpense)))
	mux.Handle("POST /api/v1/incomes", authn(http.HandlerFunc(dashboardHandler.CreateIncome)))

	mux.Handle("GET /api/v1/dashboard/expenses-category-summary/{days}", authn(http.HandlerFunc(dashboardHandler.ExpensesCategorySummary)))
	mux.Handle("GET /api/v1/dashboard/expenses-coming-summary/{days}", authn(http.HandlerFunc(dashboardHandler.ExpensesComingSummary)))
	mux.Handle("GET /api/v1/dashboard/incomes-source-summary/{days}", authn(http.HandlerFunc(dashboardHandler.IncomesSourceSummary)))

	return middleware.RequestID(middleware.Logging(middleware.Recovery(mux)))
}
