package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) CreateExpense(ctx context.Context, e *domain.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, owner_id, category, amount, description, due_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.OwnerID, e.Category, e.Amount, e.Description, e.DueDate, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateExpense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) CreateIncome(ctx context.Context, in *domain.Income) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (id, owner_id, source, amount, description, due_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.ID, in.OwnerID, in.Source, in.Amount, in.Description, in.DueDate, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateIncome: %w", err)
	}
	return nil
}

// SumExpensesByCategory totals expenses per category for due dates in
// [from, to].
func (r *ExpenseRepository) SumExpensesByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COALESCE(SUM(amount), 0) FROM expenses
		WHERE owner_id = $1 AND due_date >= $2 AND due_date <= $3
		GROUP BY category`,
		ownerID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("SumExpensesByCategory: %w", err)
	}
	defer rows.Close()

	return scanSums(rows, "SumExpensesByCategory")
}

func (r *ExpenseRepository) SumIncomesBySource(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT source, COALESCE(SUM(amount), 0) FROM incomes
		WHERE owner_id = $1 AND due_date >= $2 AND due_date <= $3
		GROUP BY source`,
		ownerID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("SumIncomesBySource: %w", err)
	}
	defer rows.Close()

	return scanSums(rows, "SumIncomesBySource")
}

// ListUpcomingExpenses returns expenses due between today and `to`,
// soonest first.
func (r *ExpenseRepository) ListUpcomingExpenses(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, category, amount, description, due_date, created_at
		FROM expenses
		WHERE owner_id = $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date`,
		ownerID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUpcomingExpenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Category, &e.Amount, &e.Description, &e.DueDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListUpcomingExpenses: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUpcomingExpenses: rows: %w", err)
	}
	return expenses, nil
}

func scanSums(rows *sql.Rows, op string) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var key string
		var amount decimal.Decimal
		if err := rows.Scan(&key, &amount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		sums[key] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return sums, nil
}
