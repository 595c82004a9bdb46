package session

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/veldpay/methods-server/internal/gateway"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/transaction"
)

type fakeMethodRepo struct {
	methods map[uuid.UUID]*paymentmethod.Method
}

func (repo *fakeMethodRepo) GetByFilter(_ context.Context, _ *int64) ([]*paymentmethod.Method, error) {
	return nil, nil
}

func (repo *fakeMethodRepo) GetByID(_ context.Context, id uuid.UUID) (*paymentmethod.Method, error) {
	return repo.methods[id], nil
}

func (repo *fakeMethodRepo) GetTypeCodes(_ context.Context, _ paymentmethod.Status) ([]string, error) {
	return nil, nil
}

func (repo *fakeMethodRepo) Create(_ context.Context, _ *paymentmethod.Create) (*paymentmethod.Method, error) {
	return nil, nil
}

func (repo *fakeMethodRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ paymentmethod.Status) (*paymentmethod.Method, error) {
	return nil, nil
}

type fakeStore struct {
	sessions map[string]*Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]*Session{}}
}

func (store *fakeStore) GetByOrderID(_ context.Context, orderID string) (*Session, error) {
	ses, ok := store.sessions[orderID]
	if !ok {
		return nil, nil
	}
	copied := *ses
	return &copied, nil
}

func (store *fakeStore) Save(_ context.Context, ses *Session) error {
	copied := *ses
	store.sessions[ses.OrderID] = &copied
	return nil
}

func (store *fakeStore) PurgeExpired(_ context.Context) (int, error) {
	return 0, nil
}

type fakeGateway struct {
	form            *gateway.Form
	cardData        *gateway.CardData
	buildCalls      int
	cardDataCalls   int
	lastFormRequest *gateway.FormRequest
}

func (gw *fakeGateway) BuildForm(_ context.Context, form *gateway.FormRequest) (*gateway.Form, error) {
	gw.buildCalls++
	gw.lastFormRequest = form
	return gw.form, nil
}

func (gw *fakeGateway) GetCardData(_ context.Context, _ uuid.UUID, _ string) (*gateway.CardData, error) {
	gw.cardDataCalls++
	return gw.cardData, nil
}

var testURLs = URLConfig{
	CheckoutBase:         "https://checkout.example.org",
	OutcomeSuffix:        "/outcome",
	CancelSuffix:         "/cancel",
	NotificationTemplate: "https://api.example.org/notify/{orderId}/method/{paymentMethodId}",
}

func newTestManager(t *testing.T) (*Manager, uuid.UUID, *fakeStore, *fakeGateway) {
	t.Helper()

	methodID := uuid.New()
	repo := &fakeMethodRepo{methods: map[uuid.UUID]*paymentmethod.Method{
		methodID: {
			ID:       methodID,
			Name:     "CARDS",
			Status:   paymentmethod.StatusEnabled,
			TypeCode: "CP",
		},
	}}
	store := newFakeStore()
	gw := &fakeGateway{
		form: &gateway.Form{
			SessionID:     "sid-1",
			SecurityToken: "token-1",
			Fields:        []gateway.Field{{ID: "CARD_NUMBER", Type: "TEXT"}},
		},
		cardData: &gateway.CardData{
			Bin:            "401234",
			LastFourDigits: "5678",
			ExpiryDate:     "1227",
			Circuit:        "VISA",
		},
	}
	return NewManager(repo, store, gw, testURLs, 15*time.Minute), methodID, store, gw
}

func TestManagerCreate(t *testing.T) {
	t.Run("unknownMethod", func(t *testing.T) {
		manager, _, _, _ := newTestManager(t)
		_, err := manager.Create(context.Background(), uuid.New(), "order-1")
		if !errors.Is(err, paymentmethod.ErrNotFound) {
			t.Fatalf("got error %v, want %v", err, paymentmethod.ErrNotFound)
		}
	})

	t.Run("disabledMethod", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		manager.methods.(*fakeMethodRepo).methods[methodID].Status = paymentmethod.StatusDisabled
		_, err := manager.Create(context.Background(), methodID, "order-1")
		if !errors.Is(err, ErrMethodNotEnabled) {
			t.Fatalf("got error %v, want %v", err, ErrMethodNotEnabled)
		}
	})

	t.Run("methodWithoutHostedFormSupport", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		manager.methods.(*fakeMethodRepo).methods[methodID].Name = "PayPal"
		_, err := manager.Create(context.Background(), methodID, "order-1")
		var unsupported *UnsupportedMethodError
		if !errors.As(err, &unsupported) || unsupported.Name != "PayPal" {
			t.Fatalf("got error %v, want an unsupported-method error for PayPal", err)
		}
	})

	t.Run("persistsSessionAndResolvesURLs", func(t *testing.T) {
		manager, methodID, store, gw := newTestManager(t)
		result, err := manager.Create(context.Background(), methodID, "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.OrderID != "order-1" || result.PaymentMethod != "CARDS" || len(result.Fields) != 1 {
			t.Errorf("unexpected result: %+v", result)
		}

		ses := store.sessions["order-1"]
		if ses == nil {
			t.Fatal("session was not persisted")
		}
		if ses.SessionID != "sid-1" || ses.SecurityToken != "token-1" {
			t.Errorf("unexpected persisted session: %+v", ses)
		}
		if ses.Expires <= time.Now().Unix() {
			t.Errorf("session expiry %d is not in the future", ses.Expires)
		}

		form := gw.lastFormRequest
		if form.ResultURL != "https://checkout.example.org/outcome" || form.CancelURL != "https://checkout.example.org/cancel" {
			t.Errorf("checkout URLs not resolved: %+v", form)
		}
		wantNotification := "https://api.example.org/notify/order-1/method/" + methodID.String()
		if form.NotificationURL != wantNotification {
			t.Errorf("got notification URL %q, want %q", form.NotificationURL, wantNotification)
		}
		if len(form.CustomerID) != 15 {
			t.Errorf("got customer ID of length %d, want 15", len(form.CustomerID))
		}
	})

	t.Run("replacesExistingSession", func(t *testing.T) {
		manager, methodID, store, gw := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		gw.form = &gateway.Form{SessionID: "sid-2", SecurityToken: "token-2"}
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.sessions["order-1"].SessionID != "sid-2" {
			t.Error("second session did not replace the first one")
		}
	})
}

func TestManagerCardData(t *testing.T) {
	t.Run("missingSession", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		_, err := manager.CardData(context.Background(), methodID, "order-1")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("got error %v, want %v", err, ErrNotFound)
		}
	})

	t.Run("fetchesOnceAndCaches", func(t *testing.T) {
		manager, methodID, store, gw := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		first, err := manager.CardData(context.Background(), methodID, "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Bin != "401234" || first.LastFourDigits != "5678" || first.Brand != "VISA" {
			t.Errorf("unexpected card data: %+v", first)
		}
		if store.sessions["order-1"].CardData == nil {
			t.Fatal("card data was not written back to the session")
		}

		second, err := manager.CardData(context.Background(), methodID, "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gw.cardDataCalls != 1 {
			t.Errorf("gateway was queried %d times, want exactly 1", gw.cardDataCalls)
		}
		if *second != *first {
			t.Errorf("cache hit returned different data: %+v vs %+v", second, first)
		}
	})

	t.Run("ignoresMethodStatus", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		manager.methods.(*fakeMethodRepo).methods[methodID].Status = paymentmethod.StatusDisabled
		if _, err := manager.CardData(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestManagerBind(t *testing.T) {
	transactionID := uuid.NewString()

	t.Run("bindsOnceAndCanonicalizes", func(t *testing.T) {
		manager, methodID, store, _ := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ses, err := manager.Bind(context.Background(), methodID, "order-1", strings.ToUpper(transactionID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ses.TransactionID == nil || *ses.TransactionID != transactionID {
			t.Errorf("got transaction ID %v, want the canonical %q", ses.TransactionID, transactionID)
		}
		if store.sessions["order-1"].TransactionID == nil {
			t.Error("binding was not persisted")
		}
	})

	t.Run("rejectsSecondBinding", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := manager.Bind(context.Background(), methodID, "order-1", transactionID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		other := uuid.NewString()
		_, err := manager.Bind(context.Background(), methodID, "order-1", other)
		var alreadyBound *AlreadyBoundError
		if !errors.As(err, &alreadyBound) {
			t.Fatalf("got error %v, want an already-bound error", err)
		}
		if alreadyBound.ExistingTransactionID != transactionID || alreadyBound.RequestedTransactionID != other {
			t.Errorf("already-bound error carries wrong IDs: %+v", alreadyBound)
		}
	})

	t.Run("rejectsMalformedTransactionID", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := manager.Bind(context.Background(), methodID, "order-1", "not-a-uuid")
		if !errors.Is(err, transaction.ErrInvalidID) {
			t.Fatalf("got error %v, want %v", err, transaction.ErrInvalidID)
		}
	})

	t.Run("missingSession", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		_, err := manager.Bind(context.Background(), methodID, "order-1", transactionID)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("got error %v, want %v", err, ErrNotFound)
		}
	})
}

func TestManagerValidate(t *testing.T) {
	transactionID := uuid.NewString()

	setup := func(t *testing.T) (*Manager, uuid.UUID) {
		t.Helper()
		manager, methodID, _, _ := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := manager.Bind(context.Background(), methodID, "order-1", transactionID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return manager, methodID
	}

	t.Run("returnsEncodedTransactionID", func(t *testing.T) {
		manager, methodID := setup(t)
		encoded, err := manager.Validate(context.Background(), methodID, "order-1", "token-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := base64.StdEncoding.EncodeToString([]byte(transactionID))
		if encoded != want {
			t.Errorf("got %q, want %q", encoded, want)
		}
	})

	t.Run("unknownMethodCheckedFirst", func(t *testing.T) {
		manager, _ := setup(t)
		_, err := manager.Validate(context.Background(), uuid.New(), "missing-order", "bad-token")
		if !errors.Is(err, paymentmethod.ErrNotFound) {
			t.Fatalf("got error %v, want %v", err, paymentmethod.ErrNotFound)
		}
	})

	t.Run("missingSessionCheckedBeforeBinding", func(t *testing.T) {
		manager, methodID := setup(t)
		_, err := manager.Validate(context.Background(), methodID, "missing-order", "bad-token")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("got error %v, want %v", err, ErrNotFound)
		}
	})

	t.Run("unboundSessionCheckedBeforeToken", func(t *testing.T) {
		manager, methodID, _, _ := newTestManager(t)
		if _, err := manager.Create(context.Background(), methodID, "order-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := manager.Validate(context.Background(), methodID, "order-1", "bad-token")
		if !errors.Is(err, ErrNotBound) {
			t.Fatalf("got error %v, want %v", err, ErrNotBound)
		}
	})

	t.Run("mismatchedToken", func(t *testing.T) {
		manager, methodID := setup(t)
		_, err := manager.Validate(context.Background(), methodID, "order-1", "bad-token")
		var mismatch *TokenMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("got error %v, want a token-mismatch error", err)
		}
	})
}
