package session

import "context"

// Store defines the session store API.
// Save is a plain upsert (last writer wins); the store offers no conditional write,
// so at-most-once guarantees are enforced by read-then-check-then-write in the Manager.
type Store interface {
	// GetByOrderID retrieves a session by its order ID
	GetByOrderID(ctx context.Context, orderID string) (*Session, error)

	// Save inserts or replaces a session
	Save(ctx context.Context, session *Session) error

	// PurgeExpired removes all sessions whose deadline has passed
	PurgeExpired(ctx context.Context) (int, error)
}
