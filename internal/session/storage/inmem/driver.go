package inmem

import (
	"context"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/veldpay/methods-server/internal/session"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"sessions": {
			Name: "sessions",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "OrderID"},
				},
				"expires": {
					Name:         "expires",
					Unique:       false,
					AllowMissing: false,
					Indexer:      &memdb.IntFieldIndex{Field: "Expires"},
				},
			},
		},
	},
}

// Driver represents the in-memory session store built using hashicorp/go-memdb.
// Writes are plain upserts; the driver intentionally exposes no conditional write.
type Driver struct {
	db *memdb.MemDB
}

var _ session.Store = (*Driver)(nil)

// New creates a new empty in-memory session store
func New() (*Driver, error) {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return nil, err
	}
	return &Driver{db}, nil
}

// GetByOrderID retrieves a session by its order ID
func (driver *Driver) GetByOrderID(_ context.Context, orderID string) (*session.Session, error) {
	txn := driver.db.Txn(false)
	obj, err := txn.First("sessions", "id", orderID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}

	// Hand out a copy so callers cannot mutate the stored record without a Save
	ses := *obj.(*session.Session)
	return &ses, nil
}

// Save inserts or replaces a session
func (driver *Driver) Save(_ context.Context, ses *session.Session) error {
	obj := *ses

	txn := driver.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("sessions", &obj); err != nil {
		return err
	}
	txn.Commit()

	return nil
}

// PurgeExpired removes all sessions whose deadline has passed
func (driver *Driver) PurgeExpired(_ context.Context) (int, error) {
	txn := driver.db.Txn(true)
	defer txn.Abort()

	it, err := txn.LowerBound("sessions", "expires", int64(0))
	if err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	deleted := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		ses := obj.(*session.Session)
		if ses.Expires > now {
			break
		}
		if err := txn.Delete("sessions", ses); err != nil {
			return 0, err
		}
		deleted++
	}

	txn.Commit()
	return deleted, nil
}
