package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "savings"
	AccountTypeCurrent AccountType = "current"
)

func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeCurrent:
		return true
	}
	return false
}

// Account is the sole mutable aggregate of the ledger. Its balance is only
// ever changed together with an appended Transaction, inside one commit.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountType   AccountType
	AccountNumber int64
	Balance       decimal.Decimal
	// MaximumWithdrawal is the per-operation limit of the account type,
	// joined in from account_types on every read.
	MaximumWithdrawal decimal.Decimal
	Version           int64
	CreatedAt         time.Time
}
