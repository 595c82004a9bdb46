package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/veldpay/methods-server/internal/gateway"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/random"
	"github.com/veldpay/methods-server/internal/transaction"
)

// hostedFormMethod is the only payment method value the gateway's hosted form supports
const hostedFormMethod = "CARDS"

// customerIDLength is the length of the pseudo-random customer identifier sent to the gateway
const customerIDLength = 15

// Gateway defines the card gateway operations the session lifecycle depends on
type Gateway interface {
	// BuildForm creates a new hosted-field session at the gateway
	BuildForm(ctx context.Context, form *gateway.FormRequest) (*gateway.Form, error)

	// GetCardData retrieves the masked card data the client entered for an order
	GetCardData(ctx context.Context, correlationID uuid.UUID, orderID string) (*gateway.CardData, error)
}

// URLConfig carries the URLs woven into every hosted-field session.
// The outcome and cancel suffixes are appended to the checkout base URL; the notification
// template contains '{orderId}' and '{paymentMethodId}' placeholders.
type URLConfig struct {
	CheckoutBase         string
	OutcomeSuffix        string
	CancelSuffix         string
	NotificationTemplate string
}

// Manager orchestrates the hosted session lifecycle: creation, masked card data
// retrieval with caching, transaction binding and authenticity validation.
type Manager struct {
	methods paymentmethod.Repository
	store   Store
	gateway Gateway
	urls    URLConfig
	ttl     time.Duration
}

// NewManager creates a new session lifecycle manager
func NewManager(methods paymentmethod.Repository, store Store, gw Gateway, urls URLConfig, ttl time.Duration) *Manager {
	return &Manager{
		methods: methods,
		store:   store,
		gateway: gw,
		urls:    urls,
		ttl:     ttl,
	}
}

// CreateResult represents a freshly created hosted session
type CreateResult struct {
	OrderID       string
	MethodID      uuid.UUID
	PaymentMethod string
	Fields        []gateway.Field
}

// CardDataResult represents the masked card data of a session
type CardDataResult struct {
	SessionID      string
	Bin            string
	LastFourDigits string
	ExpiryDate     string
	Brand          string
}

// Create creates a new hosted session for an order.
// The payment method has to exist, be enabled and support hosted card entry.
// Creating a second session for the same order ID replaces the stored one.
func (manager *Manager) Create(ctx context.Context, methodID uuid.UUID, orderID string) (*CreateResult, error) {
	method, err := manager.methods.GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, paymentmethod.ErrNotFound
	}
	if method.Status != paymentmethod.StatusEnabled {
		return nil, ErrMethodNotEnabled
	}
	if !strings.EqualFold(method.Name, hostedFormMethod) {
		return nil, &UnsupportedMethodError{Name: method.Name}
	}

	correlationID := uuid.New()
	customerID := random.String(customerIDLength, random.CharsetAlphanumeric)
	notificationURL := strings.NewReplacer(
		"{orderId}", orderID,
		"{paymentMethodId}", methodID.String(),
	).Replace(manager.urls.NotificationTemplate)

	log.Debug().
		Str("order_id", orderID).
		Str("correlation_id", correlationID.String()).
		Msg("creating hosted session")

	form, err := manager.gateway.BuildForm(ctx, &gateway.FormRequest{
		CorrelationID:   correlationID,
		MerchantURL:     manager.urls.CheckoutBase,
		ResultURL:       manager.urls.CheckoutBase + manager.urls.OutcomeSuffix,
		NotificationURL: notificationURL,
		CancelURL:       manager.urls.CheckoutBase + manager.urls.CancelSuffix,
		OrderID:         orderID,
		CustomerID:      customerID,
		PaymentMethod:   hostedFormMethod,
	})
	if err != nil {
		return nil, err
	}

	err = manager.store.Save(ctx, &Session{
		OrderID:       orderID,
		SessionID:     form.SessionID,
		SecurityToken: form.SecurityToken,
		Expires:       time.Now().Add(manager.ttl).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &CreateResult{
		OrderID:       orderID,
		MethodID:      methodID,
		PaymentMethod: hostedFormMethod,
		Fields:        form.Fields,
	}, nil
}

// CardData returns the masked card data of a session, filling the session's cache on first retrieval.
// The payment method only has to exist; its status is deliberately not checked here.
func (manager *Manager) CardData(ctx context.Context, methodID uuid.UUID, orderID string) (*CardDataResult, error) {
	method, err := manager.methods.GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, paymentmethod.ErrNotFound
	}

	ses, err := manager.store.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ses == nil {
		return nil, ErrNotFound
	}

	if ses.CardData != nil {
		log.Debug().Str("order_id", orderID).Msg("card data cache hit")
		return &CardDataResult{
			SessionID:      ses.SessionID,
			Bin:            ses.CardData.Bin,
			LastFourDigits: ses.CardData.LastFourDigits,
			ExpiryDate:     ses.CardData.ExpiryDate,
			Brand:          ses.CardData.Circuit,
		}, nil
	}

	correlationID := uuid.New()
	log.Debug().
		Str("order_id", orderID).
		Str("correlation_id", correlationID.String()).
		Msg("card data cache miss")

	data, err := manager.gateway.GetCardData(ctx, correlationID, orderID)
	if err != nil {
		return nil, err
	}

	ses.CardData = &CardData{
		Bin:            data.Bin,
		LastFourDigits: data.LastFourDigits,
		ExpiryDate:     data.ExpiryDate,
		Circuit:        data.Circuit,
	}
	if err := manager.store.Save(ctx, ses); err != nil {
		return nil, err
	}

	return &CardDataResult{
		SessionID:      ses.SessionID,
		Bin:            data.Bin,
		LastFourDigits: data.LastFourDigits,
		ExpiryDate:     data.ExpiryDate,
		Brand:          data.Circuit,
	}, nil
}

// Bind binds a session to a downstream payment transaction.
// A session may be bound exactly once; binding an already bound session fails with an
// AlreadyBoundError reporting both transaction IDs. The store offers no conditional write,
// so two concurrent calls for the same order may both pass the check (last writer wins).
func (manager *Manager) Bind(ctx context.Context, methodID uuid.UUID, orderID, transactionID string) (*Session, error) {
	method, err := manager.methods.GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, paymentmethod.ErrNotFound
	}

	ses, err := manager.store.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ses == nil {
		return nil, ErrNotFound
	}

	if ses.TransactionID != nil {
		return nil, &AlreadyBoundError{
			OrderID:                orderID,
			ExistingTransactionID:  *ses.TransactionID,
			RequestedTransactionID: transactionID,
		}
	}

	id, err := transaction.Parse(transactionID)
	if err != nil {
		return nil, err
	}
	canonical := id.String()

	ses.TransactionID = &canonical
	if err := manager.store.Save(ctx, ses); err != nil {
		return nil, err
	}

	log.Debug().Str("order_id", orderID).Str("transaction_id", canonical).Msg("session bound to transaction")
	return ses, nil
}

// Validate checks the authenticity of a session and returns its bound transaction ID
// encoded for external consumption. The preconditions are checked strictly in order:
// the payment method has to exist, the session has to exist, the session has to be
// bound to a transaction, and the supplied security token has to match the stored one.
func (manager *Manager) Validate(ctx context.Context, methodID uuid.UUID, orderID, securityToken string) (string, error) {
	method, err := manager.methods.GetByID(ctx, methodID)
	if err != nil {
		return "", err
	}
	if method == nil {
		return "", paymentmethod.ErrNotFound
	}

	ses, err := manager.store.GetByOrderID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if ses == nil {
		return "", ErrNotFound
	}

	if ses.TransactionID == nil {
		return "", ErrNotBound
	}

	if ses.SecurityToken != securityToken {
		log.Warn().Str("order_id", orderID).Msg("mismatched security token")
		return "", &TokenMismatchError{OrderID: orderID, TransactionID: *ses.TransactionID}
	}

	id, err := transaction.Parse(*ses.TransactionID)
	if err != nil {
		return "", err
	}
	return id.Base64(), nil
}
