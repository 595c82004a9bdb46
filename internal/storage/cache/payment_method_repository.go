package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/veldpay/methods-server/internal/hashmap"
	"github.com/veldpay/methods-server/internal/paymentmethod"
)

// PaymentMethodRepository implements the paymentmethod.Repository interface in order to implement caching
type PaymentMethodRepository struct {
	repo  paymentmethod.Repository
	cache *hashmap.ExpiringMap[uuid.UUID, *paymentmethod.Method]
}

var _ paymentmethod.Repository = (*PaymentMethodRepository)(nil)

// GetByFilter retrieves all payment methods, ordered by their name.
// If amount is non-nil, only methods with at least one amount range bracketing it are returned.
func (repo *PaymentMethodRepository) GetByFilter(ctx context.Context, amount *int64) ([]*paymentmethod.Method, error) {
	methods, err := repo.repo.GetByFilter(ctx, amount)
	if err != nil {
		return nil, err
	}
	for _, obj := range methods {
		repo.cache.Set(obj.ID, obj)
	}
	return methods, nil
}

// GetByID retrieves a payment method by its ID
func (repo *PaymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*paymentmethod.Method, error) {
	cached, ok := repo.cache.Lookup(id)
	if ok {
		return cached, nil
	}
	obj, err := repo.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.cache.Set(obj.ID, obj)
	}
	return obj, nil
}

// GetTypeCodes retrieves the payment type codes of all methods with the given status.
// The enabled set is a point-in-time snapshot, so this always hits the underlying repository.
func (repo *PaymentMethodRepository) GetTypeCodes(ctx context.Context, status paymentmethod.Status) ([]string, error) {
	return repo.repo.GetTypeCodes(ctx, status)
}

// Create creates a new payment method
func (repo *PaymentMethodRepository) Create(ctx context.Context, create *paymentmethod.Create) (*paymentmethod.Method, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(obj.ID, obj)
	return obj, nil
}

// UpdateStatus updates the status of an existing payment method
func (repo *PaymentMethodRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status paymentmethod.Status) (*paymentmethod.Method, error) {
	obj, err := repo.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.cache.Set(obj.ID, obj)
	}
	return obj, nil
}
