package paymentmethod

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no payment method exists for a requested ID
	ErrNotFound = errors.New("payment method not found")

	// ErrNameInUse is returned when a payment method with the requested name already exists
	ErrNameInUse = errors.New("payment method name already in use")
)

// Method represents a payment method offered at checkout
type Method struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	TypeCode    string    `json:"payment_type_code"`
	Asset       string    `json:"asset"`
	Ranges      []Range   `json:"ranges"`
}

// Range represents an amount range (inclusive bounds) a payment method is applicable to
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains returns whether the given amount falls into the range
func (r Range) Contains(amount int64) bool {
	return r.Min <= amount && amount <= r.Max
}

// AppliesTo returns whether any of the method's amount ranges brackets the given amount
func (method *Method) AppliesTo(amount int64) bool {
	for _, r := range method.Ranges {
		if r.Contains(amount) {
			return true
		}
	}
	return false
}
