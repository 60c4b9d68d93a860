package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

type DepositRequest struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
}

type WithdrawRequest struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
}

// Result describes a completed single-account balance change.
type Result struct {
	AccountID     uuid.UUID
	BalanceBefore decimal.Decimal
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Type          domain.TransactionType
}

func (s *Service) Deposit(ctx context.Context, req DepositRequest) (*Result, error) {
	log := logging.FromContext(ctx)

	if req.Amount.LessThan(s.config.MinimumDepositAmount) {
		return nil, fmt.Errorf("Deposit: minimum is %s: %w",
			s.config.MinimumDepositAmount, domain.ErrBelowMinimumDeposit)
	}

	res, err := withRetry(func() (*Result, error) {
		return s.applyBalanceChange(ctx, req.AccountID, req.Amount, domain.TransactionTypeDeposit, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	log.Info("deposit completed",
		"account_id", res.AccountID,
		"amount", req.Amount,
		"balance_after", res.BalanceAfter,
	)
	return res, nil
}

func (s *Service) Withdraw(ctx context.Context, req WithdrawRequest) (*Result, error) {
	log := logging.FromContext(ctx)

	if req.Amount.LessThan(s.config.MinimumWithdrawalAmount) {
		return nil, fmt.Errorf("Withdraw: minimum is %s: %w",
			s.config.MinimumWithdrawalAmount, domain.ErrBelowMinimumWithdrawal)
	}

	account, err := s.accounts.GetByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	if err := validateWithdrawal(req.Amount, account); err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	res, err := withRetry(func() (*Result, error) {
		return s.applyBalanceChange(ctx, req.AccountID, req.Amount.Neg(), domain.TransactionTypeWithdrawal, validateWithdrawal)
	})
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	log.Info("withdrawal completed",
		"account_id", res.AccountID,
		"amount", req.Amount,
		"balance_after", res.BalanceAfter,
	)
	return res, nil
}

// validateWithdrawal checks the per-type limit first, then the balance,
// against the given account state.
func validateWithdrawal(amount decimal.Decimal, account *domain.Account) error {
	if amount.GreaterThan(account.MaximumWithdrawal) {
		return fmt.Errorf("maximum is %s: %w", account.MaximumWithdrawal, domain.ErrWithdrawalLimitExceeded)
	}
	if amount.GreaterThan(account.Balance) {
		return fmt.Errorf("current balance is %s: %w", account.Balance, domain.ErrInsufficientFunds)
	}
	return nil
}

// applyBalanceChange is the single-account atomic unit: lock the row,
// revalidate against the locked state, append the Transaction with its
// balance snapshot and update the balance in one commit. delta is negative
// for withdrawals; recheck, when set, runs against the locked account.
func (s *Service) applyBalanceChange(
	ctx context.Context,
	accountID uuid.UUID,
	delta decimal.Decimal,
	txnType domain.TransactionType,
	recheck func(amount decimal.Decimal, account *domain.Account) error,
) (*Result, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("applyBalanceChange: begin tx: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("applyBalanceChange: %w", err)
	}

	amount := delta.Abs()
	if recheck != nil {
		if err := recheck(amount, account); err != nil {
			return nil, fmt.Errorf("applyBalanceChange: %w", err)
		}
	}

	newBalance := account.Balance.Add(delta)
	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:           uuid.New(),
		AccountID:    account.ID,
		Amount:       amount,
		BalanceAfter: newBalance,
		Type:         txnType,
		CreatedAt:    now,
	}
	if err := s.transactions.Create(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("applyBalanceChange: create transaction: %w", err)
	}

	if err := s.accounts.UpdateBalance(ctx, tx, account.ID, newBalance, account.Version+1); err != nil {
		return nil, fmt.Errorf("applyBalanceChange: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("applyBalanceChange: commit: %w", err)
	}

	return &Result{
		AccountID:     account.ID,
		BalanceBefore: account.Balance,
		Amount:        amount,
		BalanceAfter:  newBalance,
		Type:          txnType,
	}, nil
}
