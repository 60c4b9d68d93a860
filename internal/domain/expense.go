package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseCategoryOnlineServices ExpenseCategory = "ONLINE_SERVICES"
	ExpenseCategoryBus            ExpenseCategory = "BUS"
	ExpenseCategoryFood           ExpenseCategory = "FOOD"
	ExpenseCategoryRent           ExpenseCategory = "RENT"
	ExpenseCategoryOthers         ExpenseCategory = "OTHERS"
)

type Expense struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Category    ExpenseCategory
	Amount      decimal.Decimal
	Description string
	DueDate     time.Time
	CreatedAt   time.Time
}

type Income struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Source      string
	Amount      decimal.Decimal
	Description string
	DueDate     time.Time
	CreatedAt   time.Time
}
