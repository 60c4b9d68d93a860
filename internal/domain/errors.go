package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrBelowMinimumDeposit     = errors.New("amount below minimum deposit")
	ErrBelowMinimumWithdrawal  = errors.New("amount below minimum withdrawal")
	ErrWithdrawalLimitExceeded = errors.New("withdrawal limit exceeded")
	ErrSelfTransfer            = errors.New("cannot transfer to own account")
	ErrDestinationNotFound     = errors.New("destination account not found")
	ErrUsernameMismatch        = errors.New("user name does not match")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrAccountNotFound         = errors.New("account not found")
	ErrConflict                = errors.New("concurrent modification detected")
	ErrInvalidRequest          = errors.New("invalid request")
	ErrEmailNotVerified        = errors.New("email is not verified")
	ErrUserExists              = errors.New("user already exists")
)
