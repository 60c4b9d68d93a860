package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucasDiasTavares/bankingAPI/internal/auth"
	"github.com/LucasDiasTavares/bankingAPI/internal/logging"
	"github.com/LucasDiasTavares/bankingAPI/internal/service/ledger"
)

type ledgerService interface {
	Deposit(ctx context.Context, req ledger.DepositRequest) (*ledger.Result, error)
	Withdraw(ctx context.Context, req ledger.WithdrawRequest) (*ledger.Result, error)
	Transfer(ctx context.Context, req ledger.TransferRequest) (*ledger.TransferResult, error)
}

type TransactionHandler struct {
	ledger ledgerService
}

func NewTransactionHandler(ledger ledgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r amountRequest) Validate() []FieldError {
	var errs []FieldError
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}
	return errs
}

type balanceChangeDTO struct {
	AccountID     uuid.UUID       `json:"account_id"`
	BalanceBefore decimal.Decimal `json:"balance_before_transaction"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after_transaction"`
	Type          string          `json:"transaction_type"`
}

func toBalanceChangeDTO(res *ledger.Result) balanceChangeDTO {
	return balanceChangeDTO{
		AccountID:     res.AccountID,
		BalanceBefore: res.BalanceBefore,
		Amount:        res.Amount,
		BalanceAfter:  res.BalanceAfter,
		Type:          string(res.Type),
	}
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	res, err := h.ledger.Deposit(r.Context(), ledger.DepositRequest{
		AccountID: p.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("deposit failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toBalanceChangeDTO(res))
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	res, err := h.ledger.Withdraw(r.Context(), ledger.WithdrawRequest{
		AccountID: p.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("withdrawal failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toBalanceChangeDTO(res))
}

type transferRequest struct {
	UserName                 string          `json:"user_name"`
	DestinationAccountNumber int64           `json:"destination_account_number"`
	Amount                   decimal.Decimal `json:"amount_to_be_transferred"`
}

func (r transferRequest) Validate() []FieldError {
	var errs []FieldError
	if r.UserName == "" {
		errs = append(errs, FieldError{Field: "user_name", Message: "required"})
	}
	if r.DestinationAccountNumber <= 0 {
		errs = append(errs, FieldError{Field: "destination_account_number", Message: "required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount_to_be_transferred", Message: "must be greater than 0"})
	}
	return errs
}

type transferDTO struct {
	Username                 string          `json:"username"`
	BalanceBefore            decimal.Decimal `json:"balance_before_transaction"`
	Amount                   decimal.Decimal `json:"amount"`
	BalanceAfter             decimal.Decimal `json:"balance_after_transaction"`
	DestinationAccountNumber int64           `json:"destination_account_number"`
	Type                     string          `json:"transaction_type"`
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	res, err := h.ledger.Transfer(r.Context(), ledger.TransferRequest{
		InitiatorUserID:          p.UserID,
		UserName:                 req.UserName,
		DestinationAccountNumber: req.DestinationAccountNumber,
		Amount:                   req.Amount,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("transfer failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, transferDTO{
		Username:                 res.Username,
		BalanceBefore:            res.BalanceBefore,
		Amount:                   res.Amount,
		BalanceAfter:             res.BalanceAfter,
		DestinationAccountNumber: res.DestinationAccountNumber,
		Type:                     string(res.Type),
	})
}
