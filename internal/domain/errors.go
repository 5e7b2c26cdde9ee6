package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidToken      = errors.New("invalid token")
	ErrForbidden         = errors.New("forbidden")
	ErrPartNotFound      = errors.New("part not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidState      = errors.New("invalid order state")
	ErrEmailRequired     = errors.New("email required")
	ErrInvalidID         = errors.New("invalid id")
)

// PaymentProviderError wraps an upstream payment processor failure. It is
// surfaced to the caller and never retried, so a charge is attempted at most
// once per request.
type PaymentProviderError struct {
	Op  string
	Err error
}

func (e *PaymentProviderError) Error() string {
	return fmt.Sprintf("payment provider: %s: %v", e.Op, e.Err)
}

func (e *PaymentProviderError) Unwrap() error { return e.Err }
