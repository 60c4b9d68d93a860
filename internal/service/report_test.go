package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/repository"
	"github.com/LucasDiasTavares/bankingAPI/internal/service"
	"github.com/LucasDiasTavares/bankingAPI/internal/testutil"
)

func seedTransaction(t *testing.T, db *sql.DB, accountID uuid.UUID, amount string, txnType domain.TransactionType, createdAt time.Time) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO transactions (id, account_id, amount, balance_after_transaction, transaction_type, created_at)
		 VALUES ($1, $2, $3, $3, $4, $5)`,
		uuid.New(), accountID, amount, txnType, createdAt,
	)
	require.NoError(t, err)
}

func TestReportTimeWindows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewReportService(repository.NewTransactionRepository(db))
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "alice@test.com", "alice_rep")
	acct := testutil.SeedTestAccount(t, db, user.ID, domain.AccountTypeSavings, 1001, decimal.Zero)

	now := time.Now().UTC()
	seedTransaction(t, db, acct.ID, "100.00", domain.TransactionTypeDeposit, now.Add(-1*time.Hour))
	seedTransaction(t, db, acct.ID, "200.00", domain.TransactionTypeDeposit, now.AddDate(0, 0, -3))
	seedTransaction(t, db, acct.ID, "300.00", domain.TransactionTypeDeposit, now.AddDate(0, 0, -40))

	t.Run("all time", func(t *testing.T) {
		txns, total, err := svc.Report(ctx, acct.ID, 30, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, txns, 3)
		// newest first
		assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, txns[2].Amount.Equal(decimal.RequireFromString("300.00")))
	})

	t.Run("today", func(t *testing.T) {
		txns, total, err := svc.ReportToday(ctx, acct.ID, 30, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, txns, 1)
		assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("last seven days", func(t *testing.T) {
		txns, total, err := svc.ReportDaysAgo(ctx, acct.ID, 7, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, txns, 2)
	})

	t.Run("negative days rejected", func(t *testing.T) {
		_, _, err := svc.ReportDaysAgo(ctx, acct.ID, -1, 10, 0)
		require.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("pagination", func(t *testing.T) {
		txns, total, err := svc.Report(ctx, acct.ID, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, txns, 2)

		txns, total, err = svc.Report(ctx, acct.ID, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, txns, 1)
	})

	t.Run("other accounts excluded", func(t *testing.T) {
		other := testutil.SeedTestUser(t, db, "bob@test.com", "bob_rep")
		otherAcct := testutil.SeedTestAccount(t, db, other.ID, domain.AccountTypeSavings, 1002, decimal.Zero)

		txns, total, err := svc.Report(ctx, otherAcct.ID, 30, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, txns)
	})
}

func TestDashboardSummaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewDashboardService(repository.NewExpenseRepository(db))
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "carol@test.com", "carol_dash")
	other := testutil.SeedTestUser(t, db, "dave@test.com", "dave_dash")

	today := time.Now().UTC()
	testutil.SeedExpense(t, db, user.ID, domain.ExpenseCategoryFood, decimal.RequireFromString("50.00"), today.AddDate(0, 0, -2))
	testutil.SeedExpense(t, db, user.ID, domain.ExpenseCategoryFood, decimal.RequireFromString("25.00"), today.AddDate(0, 0, -5))
	testutil.SeedExpense(t, db, user.ID, domain.ExpenseCategoryRent, decimal.RequireFromString("900.00"), today.AddDate(0, 0, -1))
	// outside the window
	testutil.SeedExpense(t, db, user.ID, domain.ExpenseCategoryBus, decimal.RequireFromString("10.00"), today.AddDate(0, 0, -60))
	// someone else's expense
	testutil.SeedExpense(t, db, other.ID, domain.ExpenseCategoryFood, decimal.RequireFromString("999.00"), today.AddDate(0, 0, -1))

	testutil.SeedIncome(t, db, user.ID, "salary", decimal.RequireFromString("3000.00"), today.AddDate(0, 0, -3))
	testutil.SeedIncome(t, db, user.ID, "freelance", decimal.RequireFromString("500.00"), today.AddDate(0, 0, -2))

	t.Run("expenses by category", func(t *testing.T) {
		sums, err := svc.ExpensesCategorySummary(ctx, user.ID, 30)
		require.NoError(t, err)
		require.Len(t, sums, 2)
		assert.True(t, sums[string(domain.ExpenseCategoryFood)].Equal(decimal.RequireFromString("75.00")))
		assert.True(t, sums[string(domain.ExpenseCategoryRent)].Equal(decimal.RequireFromString("900.00")))
	})

	t.Run("incomes by source", func(t *testing.T) {
		sums, err := svc.IncomesSourceSummary(ctx, user.ID, 30)
		require.NoError(t, err)
		require.Len(t, sums, 2)
		assert.True(t, sums["salary"].Equal(decimal.RequireFromString("3000.00")))
		assert.True(t, sums["freelance"].Equal(decimal.RequireFromString("500.00")))
	})

	t.Run("upcoming expenses", func(t *testing.T) {
		testutil.SeedExpense(t, db, user.ID, domain.ExpenseCategoryRent, decimal.RequireFromString("900.00"), today.AddDate(0, 0, 10))

		upcoming, err := svc.UpcomingExpenses(ctx, user.ID, 30)
		require.NoError(t, err)
		require.Len(t, upcoming, 1)
		assert.Equal(t, domain.ExpenseCategoryRent, upcoming[0].Category)
	})

	t.Run("negative days rejected", func(t *testing.T) {
		_, err := svc.ExpensesCategorySummary(ctx, user.ID, -1)
		require.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}
