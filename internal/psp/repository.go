package psp

import "context"

// Repository defines the PSP repository API
type Repository interface {
	// GetByFilter retrieves multiple PSPs following a filter, ordered by their code.
	// An amount filter matches PSPs whose min/max amount bounds bracket the amount.
	GetByFilter(ctx context.Context, filter *Filter) ([]*PSP, error)

	// ReplaceAll atomically replaces the whole PSP catalog with a new snapshot
	ReplaceAll(ctx context.Context, psps []*PSP) error
}
