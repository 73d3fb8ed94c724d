package models

import "errors"

var (
	// Ledger taxonomy. Handlers map these to client errors; everything
	// else surfaces as a server error.
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrNoBalanceRecord   = errors.New("no balance record")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidUsageType  = errors.New("invalid personal usage type")

	// ErrStoreUnavailable wraps transaction timeouts, serialization
	// conflicts and connection failures at the repository boundary.
	// Nothing is persisted when it is returned.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrNotFound           = errors.New("record not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
