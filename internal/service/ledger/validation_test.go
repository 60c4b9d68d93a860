package ledger

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func savingsAccount(userID uuid.UUID, number int64, balance string) *domain.Account {
	return &domain.Account{
		ID:                uuid.New(),
		UserID:            userID,
		AccountType:       domain.AccountTypeSavings,
		AccountNumber:     number,
		Balance:           money(balance),
		MaximumWithdrawal: money("500000.00"),
	}
}

func TestValidateWithdrawal(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		balance string
		limit   string
		wantErr error
	}{
		{
			name:    "valid withdrawal",
			amount:  "600.00",
			balance: "1000.00",
			limit:   "500000.00",
		},
		{
			name:    "exceeds type limit",
			amount:  "500000.01",
			balance: "600000.00",
			limit:   "500000.00",
			wantErr: domain.ErrWithdrawalLimitExceeded,
		},
		{
			name:    "at type limit is allowed",
			amount:  "500000.00",
			balance: "600000.00",
			limit:   "500000.00",
		},
		{
			name:    "exceeds balance",
			amount:  "600.00",
			balance: "500.00",
			limit:   "500000.00",
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:    "whole balance is allowed",
			amount:  "500.00",
			balance: "500.00",
			limit:   "500000.00",
		},
		{
			// limit is checked before balance
			name:    "exceeds both limit and balance",
			amount:  "500000.01",
			balance: "100.00",
			limit:   "500000.00",
			wantErr: domain.ErrWithdrawalLimitExceeded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			account := &domain.Account{
				Balance:           money(tc.balance),
				MaximumWithdrawal: money(tc.limit),
			}
			err := validateWithdrawal(money(tc.amount), account)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

// stubAccountRepo resolves accounts by number from a fixed map; the tx-scoped
// methods are never reached by validation.
type stubAccountRepo struct {
	byNumber map[int64]*domain.Account
}

func (s *stubAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAccountRepo) GetByNumber(ctx context.Context, number int64) (*domain.Account, error) {
	if a, ok := s.byNumber[number]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubAccountRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAccountRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAccountRepo) UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal, newVersion int64) error {
	return nil
}

func TestValidateTransfer(t *testing.T) {
	initiator := &domain.User{ID: uuid.New(), Username: "alice"}
	sender := savingsAccount(initiator.ID, 1001, "1000.00")
	dest := savingsAccount(uuid.New(), 1002, "0.00")

	svc := &Service{accounts: &stubAccountRepo{byNumber: map[int64]*domain.Account{
		1001: sender,
		1002: dest,
	}}}

	tests := []struct {
		name    string
		req     TransferRequest
		wantErr error
	}{
		{
			name: "valid transfer",
			req:  TransferRequest{UserName: "alice", DestinationAccountNumber: 1002, Amount: money("300.00")},
		},
		{
			name:    "username mismatch",
			req:     TransferRequest{UserName: "mallory", DestinationAccountNumber: 1002, Amount: money("300.00")},
			wantErr: domain.ErrUsernameMismatch,
		},
		{
			name:    "self transfer",
			req:     TransferRequest{UserName: "alice", DestinationAccountNumber: 1001, Amount: money("300.00")},
			wantErr: domain.ErrSelfTransfer,
		},
		{
			name:    "amount zero",
			req:     TransferRequest{UserName: "alice", DestinationAccountNumber: 1002, Amount: money("0")},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "amount negative",
			req:     TransferRequest{UserName: "alice", DestinationAccountNumber: 1002, Amount: money("-10")},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "amount exceeds balance",
			req:     TransferRequest{UserName: "alice", DestinationAccountNumber: 1002, Amount: money("1000.01")},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name: "whole balance is allowed",
			req:  TransferRequest{UserName: "alice", DestinationAccountNumber: 1002, Amount: money("1000.00")},
		},
		{
			name:    "destination does not exist",
			req:     TransferRequest{UserName: "alice", DestinationAccountNumber: 9999, Amount: money("300.00")},
			wantErr: domain.ErrDestinationNotFound,
		},
		{
			// balance is checked before resolving the destination
			name:    "overdraft to missing destination",
			req:     TransferRequest{UserName: "alice", DestinationAccountNumber: 9999, Amount: money("5000.00")},
			wantErr: domain.ErrInsufficientFunds,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.validateTransfer(context.Background(), tc.req, initiator, sender)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
