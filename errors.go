package reit

import "errors"

// Errors reported by trades. None of them leaves a partial mutation behind:
// accounts, properties and the chain are untouched when one is returned.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidShareCount  = errors.New("share count must be positive")
	ErrSupplyExceeded     = errors.New("remaining shares would exceed supply")
)

// Errors reported by the market registry.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrDuplicate        = errors.New("name already registered")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingName      = errors.New("name is missing")
)

// ErrBrokenChain is returned when a chain fails verification.
var ErrBrokenChain = errors.New("broken chain")
