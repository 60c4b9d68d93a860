package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

const transactionColumns = `id, account_id, amount, balance_after_transaction,
	transaction_type, counterparty_username, created_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a ledger record inside tx. Records are never updated or
// deleted afterwards.
func (r *TransactionRepository) Create(ctx context.Context, tx *sql.Tx, txn *domain.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (
			id, account_id, amount, balance_after_transaction,
			transaction_type, counterparty_username, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID, txn.AccountID, txn.Amount, txn.BalanceAfter,
		txn.Type, txn.Counterparty, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// ListByAccount returns transactions newest-first. A zero `since` means
// all-time.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, since time.Time, limit, offset int) ([]domain.Transaction, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = $1 AND created_at >= $2`,
		accountID, since,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ListByAccount: count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1 AND created_at >= $2
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`,
		accountID, since, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListByAccount: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ListByAccount: scan: %w", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListByAccount: rows: %w", err)
	}
	return txns, total, nil
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.Scan(
		&t.ID, &t.AccountID, &t.Amount, &t.BalanceAfter,
		&t.Type, &t.Counterparty, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
