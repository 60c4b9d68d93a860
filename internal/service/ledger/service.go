package ledger

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/config"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal, newVersion int64) error
}

type transactionRepo interface {
	Create(ctx context.Context, tx *sql.Tx, txn *domain.Transaction) error
}

type transferRepo interface {
	Create(ctx context.Context, tx *sql.Tx, mt *domain.MoneyTransfer) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type emailSender interface {
	Send(to, subject, body string) error
}

// Service is the transaction ledger core. It is stateless; every operation
// is a single atomic unit against the store and safe to call concurrently.
type Service struct {
	accounts     accountRepo
	transactions transactionRepo
	transfers    transferRepo
	users        userRepo
	mailer       emailSender
	db           *sql.DB
	config       *config.Config
}

func NewService(
	accounts accountRepo,
	transactions transactionRepo,
	transfers transferRepo,
	users userRepo,
	mailer emailSender,
	db *sql.DB,
	cfg *config.Config,
) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		transfers:    transfers,
		users:        users,
		mailer:       mailer,
		db:           db,
		config:       cfg,
	}
}

// withRetry re-runs fn once when the store reports a write conflict, then
// surfaces the failure.
func withRetry[T any](fn func() (T, error)) (T, error) {
	out, err := fn()
	if err != nil && isWriteConflict(err) {
		out, err = fn()
	}
	return out, err
}

func isWriteConflict(err error) bool {
	if errors.Is(err, domain.ErrConflict) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
