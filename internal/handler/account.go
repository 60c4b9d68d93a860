package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/domain"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
)

type accountService interface {
	GetAccountForUser(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountDTO struct {
	ID                uuid.UUID       `json:"id"`
	AccountNumber     int64           `json:"account_number"`
	AccountType       string          `json:"account_type"`
	Balance           decimal.Decimal `json:"balance"`
	MaximumWithdrawal decimal.Decimal `json:"maximum_withdrawal_amount"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Get returns the caller's own bank account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	account, err := h.accounts.GetAccountForUser(r.Context(), p.UserID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, accountDTO{
		ID:                account.ID,
		AccountNumber:     account.AccountNumber,
		AccountType:       string(account.AccountType),
		Balance:           account.Balance,
		MaximumWithdrawal: account.MaximumWithdrawal,
		CreatedAt:         account.CreatedAt,
	})
}
