package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
)

type expenseRepository interface {
	CreateExpense(ctx context.Context, e *domain.Expense) error
	CreateIncome(ctx context.Context, in *domain.Income) error
	SumExpensesByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)
	SumIncomesBySource(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)
	ListUpcomingExpenses(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Expense, error)
}

// DashboardService records expenses and incomes and aggregates them for the
// summary endpoints. It never touches the bank account balance.
type DashboardService struct {
	expenses expenseRepository
}

func NewDashboardService(expenses expenseRepository) *DashboardService {
	return &DashboardService{expenses: expenses}
}

func (s *DashboardService) AddExpense(ctx context.Context, ownerID uuid.UUID, category domain.ExpenseCategory, amount decimal.Decimal, description string, dueDate time.Time) (*domain.Expense, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("AddExpense: %w", domain.ErrInvalidAmount)
	}

	e := &domain.Expense{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Category:    category,
		Amount:      amount,
		Description: description,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.expenses.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("AddExpense: %w", err)
	}
	return e, nil
}

func (s *DashboardService) AddIncome(ctx context.Context, ownerID uuid.UUID, source string, amount decimal.Decimal, description string, dueDate time.Time) (*domain.Income, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("AddIncome: %w", domain.ErrInvalidAmount)
	}

	in := &domain.Income{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Source:      source,
		Amount:      amount,
		Description: description,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.expenses.CreateIncome(ctx, in); err != nil {
		return nil, fmt.Errorf("AddIncome: %w", err)
	}
	return in, nil
}

func (s *DashboardService) ExpensesCategorySummary(ctx context.Context, ownerID uuid.UUID, days int) (map[string]decimal.Decimal, error) {
	if days < 0 {
		return nil, fmt.Errorf("ExpensesCategorySummary: days: %w", domain.ErrInvalidRequest)
	}
	today := time.Now().UTC()
	from := today.AddDate(0, 0, -days)

	sums, err := s.expenses.SumExpensesByCategory(ctx, ownerID, from, today)
	if err != nil {
		return nil, fmt.Errorf("ExpensesCategorySummary: %w", err)
	}
	return sums, nil
}

func (s *DashboardService) IncomesSourceSummary(ctx context.Context, ownerID uuid.UUID, days int) (map[string]decimal.Decimal, error) {
	if days < 0 {
		return nil, fmt.Errorf("IncomesSourceSummary: days: %w", domain.ErrInvalidRequest)
	}
	today := time.Now().UTC()
	from := today.AddDate(0, 0, -days)

	sums, err := s.expenses.SumIncomesBySource(ctx, ownerID, from, today)
	if err != nil {
		return nil, fmt.Errorf("IncomesSourceSummary: %w", err)
	}
	return sums, nil
}

func (s *DashboardService) UpcomingExpenses(ctx context.Context, ownerID uuid.UUID, days int) ([]domain.Expense, error) {
	if days < 0 {
		return nil, fmt.Errorf("UpcomingExpenses: days: %w", domain.ErrInvalidRequest)
	}
	today := time.Now().UTC()
	to := today.AddDate(0, 0, days)

	expenses, err := s.expenses.ListUpcomingExpenses(ctx, ownerID, today, to)
	if err != nil {
		return nil, fmt.Errorf("UpcomingExpenses: %w", err)
	}
	return expenses, nil
}
