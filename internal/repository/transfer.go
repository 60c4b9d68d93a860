package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Create appends the transfer audit record inside tx, in the same commit as
// the two Transaction rows and both balance updates.
func (r *TransferRepository) Create(ctx context.Context, tx *sql.Tx, mt *domain.MoneyTransfer) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO money_transfers (id, user_name, destination_account_number, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		mt.ID, mt.UserName, mt.DestinationAccountNumber, mt.Amount, mt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
