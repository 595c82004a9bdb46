package storage

import (
	"context"

	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/psp"
)

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// PaymentMethods provides a payment method repository implementation
	PaymentMethods() paymentmethod.Repository

	// PSPs provides a PSP repository implementation
	PSPs() psp.Repository

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
