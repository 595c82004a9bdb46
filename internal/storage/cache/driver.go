package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veldpay/methods-server/internal/hashmap"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/psp"
	"github.com/veldpay/methods-server/internal/storage"
)

// Driver represents a storage driver implementation that wraps another one in order to implement in-memory caching.
// Only payment methods are cached; every session and fee operation performs a method lookup, while the PSP catalog
// is read rarely and replaced wholesale by the registry refresh.
type Driver struct {
	underlying     storage.Driver
	paymentMethods *PaymentMethodRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver
func New(underlying storage.Driver) *Driver {
	return &Driver{
		underlying: underlying,
	}
}

// Initialize initializes the caching repositories
func (driver *Driver) Initialize(_ context.Context) error {
	methodCache := hashmap.NewExpiring[uuid.UUID, *paymentmethod.Method](5 * time.Minute)
	methodCache.ScheduleCleanupTask(10 * time.Second)
	driver.paymentMethods = &PaymentMethodRepository{
		repo:  driver.underlying.PaymentMethods(),
		cache: methodCache,
	}

	return nil
}

// PaymentMethods provides the caching payment method repository implementation
func (driver *Driver) PaymentMethods() paymentmethod.Repository {
	return driver.paymentMethods
}

// PSPs provides the underlying PSP repository implementation
func (driver *Driver) PSPs() psp.Repository {
	return driver.underlying.PSPs()
}

// Close closes the caching repositories and disposes their instances
func (driver *Driver) Close() {
	driver.paymentMethods.cache.StopCleanupTask()
	driver.paymentMethods = nil
}
