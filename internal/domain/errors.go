package domain

import "errors"

// Sentinel errors for business-rule violations. Repositories and usecases
// return these (possibly wrapped); the HTTP layer maps them to status codes.
var (
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrBotNotFound           = errors.New("bot not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionNotPending = errors.New("transaction is not pending")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameTaken         = errors.New("username already taken")
)
