package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

func SeedTestUser(t *testing.T, db *sql.DB, email, username string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsVerified:   true,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, username, password_hash, is_verified, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.IsVerified, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

func SeedTestAccount(t *testing.T, db *sql.DB, userID uuid.UUID, accountType domain.AccountType, accountNumber int64, balance decimal.Decimal) *domain.Account {
	t.Helper()

	a := &domain.Account{
		ID:            uuid.New(),
		UserID:        userID,
		AccountType:   accountType,
		AccountNumber: accountNumber,
		Balance:       balance,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO accounts (id, user_id, account_type, account_number, balance, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.AccountType, a.AccountNumber, a.Balance, a.Version, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test account for user %s: %v", userID, err)
	}

	err = db.QueryRow(
		`SELECT maximum_withdrawal_amount FROM account_types WHERE name = $1`,
		accountType,
	).Scan(&a.MaximumWithdrawal)
	if err != nil {
		t.Fatalf("load withdrawal limit for %s: %v", accountType, err)
	}
	return a
}

func GetAccountBalance(t *testing.T, db *sql.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	if err != nil {
		t.Fatalf("get account balance %s: %v", accountID, err)
	}
	return balance
}

func CountTransactions(t *testing.T, db *sql.DB, accountID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for account %s: %v", accountID, err)
	}
	return count
}

func CountMoneyTransfers(t *testing.T, db *sql.DB) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM money_transfers`).Scan(&count)
	if err != nil {
		t.Fatalf("count money transfers: %v", err)
	}
	return count
}

func SeedExpense(t *testing.T, db *sql.DB, ownerID uuid.UUID, category domain.ExpenseCategory, amount decimal.Decimal, dueDate time.Time) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO expenses (id, owner_id, category, amount, due_date)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), ownerID, category, amount, dueDate,
	)
	if err != nil {
		t.Fatalf("seed expense for %s: %v", ownerID, err)
	}
}

func SeedIncome(t *testing.T, db *sql.DB, ownerID uuid.UUID, source string, amount decimal.Decimal, dueDate time.Time) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO incomes (id, owner_id, source, amount, due_date)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), ownerID, source, amount, dueDate,
	)
	if err != nil {
		t.Fatalf("seed income for %s: %v", ownerID, err)
	}
}
