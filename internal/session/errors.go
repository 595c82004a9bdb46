package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no session exists for a requested order ID
	ErrNotFound = errors.New("no session exists for the given order")

	// ErrNotBound is returned when an operation requires a session that is already
	// bound to a transaction, but the session is not
	ErrNotBound = errors.New("the session is not bound to a transaction")

	// ErrMethodNotEnabled is returned when a session is requested for a payment method
	// that exists but is not enabled
	ErrMethodNotEnabled = errors.New("the payment method is not enabled")
)

// UnsupportedMethodError is returned when a payment method cannot be rendered as a hosted form
type UnsupportedMethodError struct {
	Name string
}

func (err *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("payment method '%s' does not support hosted card entry", err.Name)
}

// AlreadyBoundError is returned when a session that is already bound to a transaction
// is requested to be bound to another one
type AlreadyBoundError struct {
	OrderID                string
	ExistingTransactionID  string
	RequestedTransactionID string
}

func (err *AlreadyBoundError) Error() string {
	return fmt.Sprintf(
		"session for order '%s' is already bound to transaction '%s' (requested: '%s')",
		err.OrderID, err.ExistingTransactionID, err.RequestedTransactionID,
	)
}

// TokenMismatchError is returned when the security token supplied for a session
// does not match the stored one
type TokenMismatchError struct {
	OrderID       string
	TransactionID string
}

func (err *TokenMismatchError) Error() string {
	return fmt.Sprintf("mismatched security token for order '%s'", err.OrderID)
}
