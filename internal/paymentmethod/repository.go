package paymentmethod

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the payment method repository API
type Repository interface {
	// GetByFilter retrieves all payment methods, ordered by their name.
	// If amount is non-nil, only methods with at least one amount range bracketing it are returned.
	GetByFilter(ctx context.Context, amount *int64) ([]*Method, error)

	// GetByID retrieves a payment method by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Method, error)

	// GetTypeCodes retrieves the payment type codes of all methods with the given status
	GetTypeCodes(ctx context.Context, status Status) ([]string, error)

	// Create creates a new payment method.
	// It returns ErrNameInUse if a method with the same name already exists.
	Create(ctx context.Context, create *Create) (*Method, error)

	// UpdateStatus updates the status of an existing payment method
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Method, error)
}

// Create is used to create a new payment method
type Create struct {
	Name        string
	Description string
	TypeCode    string
	Asset       string
	Ranges      []Range
}
