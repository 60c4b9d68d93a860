package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit          TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionTypeTransferSent     TransactionType = "TRANSFER_SENT"
	TransactionTypeTransferReceived TransactionType = "TRANSFER_RECEIVED"
)

// Transaction is an immutable ledger record. BalanceAfter is the account
// balance snapshot immediately after the transaction was applied and is the
// authoritative source for the account's balance history.
type Transaction struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Type         TransactionType
	// Counterparty is the other party's username on transfers, empty
	// otherwise.
	Counterparty *string
	CreatedAt    time.Time
}

// MoneyTransfer is the audit record written once per transfer, alongside the
// sender and receiver Transactions.
type MoneyTransfer struct {
	ID                       uuid.UUID
	UserName                 string
	DestinationAccountNumber int64
	Amount                   decimal.Decimal
	CreatedAt                time.Time
}
