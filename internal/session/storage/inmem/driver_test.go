package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/veldpay/methods-server/internal/session"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	driver, err := New()
	if err != nil {
		t.Fatalf("could not create the driver: %v", err)
	}
	return driver
}

func TestDriverSaveAndGet(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	ses, err := driver.GetByOrderID(ctx, "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ses != nil {
		t.Fatalf("got %+v for an unknown order, want nil", ses)
	}

	original := &session.Session{
		OrderID:       "order-1",
		SessionID:     "sid-1",
		SecurityToken: "token-1",
		Expires:       time.Now().Add(time.Hour).Unix(),
	}
	if err := driver.Save(ctx, original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ses, err = driver.GetByOrderID(ctx, "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ses == nil || ses.SessionID != "sid-1" {
		t.Fatalf("got %+v, want the stored session", ses)
	}

	// Mutating the returned copy must not leak into the store
	ses.SecurityToken = "tampered"
	again, err := driver.GetByOrderID(ctx, "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.SecurityToken != "token-1" {
		t.Error("mutation of a returned session leaked into the store")
	}

	// Saving again replaces the record
	original.SessionID = "sid-2"
	if err := driver.Save(ctx, original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err = driver.GetByOrderID(ctx, "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.SessionID != "sid-2" {
		t.Error("saving an existing order ID did not replace the record")
	}
}

func TestDriverPurgeExpired(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	now := time.Now().Unix()
	sessions := []*session.Session{
		{OrderID: "expired-1", Expires: now - 120},
		{OrderID: "expired-2", Expires: now - 60},
		{OrderID: "alive-1", Expires: now + 3600},
	}
	for _, ses := range sessions {
		if err := driver.Save(ctx, ses); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	deleted, err := driver.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("got %d deleted sessions, want 2", deleted)
	}

	for _, test := range []struct {
		orderID string
		want    bool
	}{
		{"expired-1", false},
		{"expired-2", false},
		{"alive-1", true},
	} {
		ses, err := driver.GetByOrderID(ctx, test.orderID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if (ses != nil) != test.want {
			t.Errorf("order %q: present = %v, want %v", test.orderID, ses != nil, test.want)
		}
	}
}
