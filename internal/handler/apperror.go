package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrEmailNotVerified   = &AppError{http.StatusUnauthorized, "EMAIL_NOT_VERIFIED", "Email is not verified"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	// Business rule violations are 406 Not Acceptable: the operation was
	// understood but refused, with no state change.
	ErrBelowMinimumDeposit     = &AppError{http.StatusNotAcceptable, "BELOW_MINIMUM_DEPOSIT", "Amount is below the minimum deposit"}
	ErrBelowMinimumWithdrawal  = &AppError{http.StatusNotAcceptable, "BELOW_MINIMUM_WITHDRAWAL", "Amount is below the minimum withdrawal"}
	ErrWithdrawalLimitExceeded = &AppError{http.StatusNotAcceptable, "WITHDRAWAL_LIMIT_EXCEEDED", "Amount exceeds the account type's withdrawal limit"}
	ErrInsufficientFunds       = &AppError{http.StatusNotAcceptable, "INSUFFICIENT_FUNDS", "You don't have enough money"}
	ErrSelfTransfer            = &AppError{http.StatusNotAcceptable, "SELF_TRANSFER_NOT_ALLOWED", "Please check the destination account number"}
	ErrDestinationNotFound     = &AppError{http.StatusNotAcceptable, "WRONG_DESTINATION_ACCOUNT", "Wrong destination account number"}
	ErrUsernameMismatch        = &AppError{http.StatusNotAcceptable, "USERNAME_MISMATCH", "Please check your user name"}
	ErrInvalidAmount           = &AppError{http.StatusNotAcceptable, "INVALID_AMOUNT", "Amount must be greater than zero"}

	ErrConflict                = &AppError{http.StatusConflict, "CONFLICT", "Resource was modified concurrently, please retry"}
	ErrMissingIdempotencyKey   = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict     = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
)
