package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/veldpay/methods-server/internal/api/schema"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/remote"
	"github.com/veldpay/methods-server/internal/session"
	"github.com/veldpay/methods-server/internal/transaction"
)

var (
	errPaymentMethodNotFound = &schema.Error{
		Type:    "paymentMethods.notFound",
		Message: "Payment method not found.",
	}
	errPaymentMethodNameInUse = &schema.Error{
		Type:    "paymentMethods.nameInUse",
		Message: "A payment method with this name already exists.",
	}
	errSessionNotFound = &schema.Error{
		Type:    "sessions.notFound",
		Message: "No session exists for the given order.",
	}
	errSessionNotBound = &schema.Error{
		Type:    "sessions.notBound",
		Message: "The session is not bound to a transaction.",
	}
	errSessionMethodNotEnabled = &schema.Error{
		Type:    "sessions.methodNotEnabled",
		Message: "The payment method is not enabled.",
	}
	errSessionTokenMismatch = &schema.Error{
		Type:    "sessions.securityTokenMismatch",
		Message: "The supplied security token does not match.",
	}
	errInvalidTransactionID = &schema.Error{
		Type:    "sessions.invalidTransactionId",
		Message: "The supplied transaction ID is not in its canonical form.",
	}
	errSessionAlreadyBound = func(existing, requested string) *schema.Error {
		return &schema.Error{
			Type:    "sessions.alreadyBound",
			Message: "The session is already bound to a transaction.",
			Details: map[string]interface{}{
				"existing_transaction_id":  existing,
				"requested_transaction_id": requested,
			},
		}
	}
	errSessionUnsupportedMethod = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "sessions.unsupportedMethod",
			Message: fmt.Sprintf("The payment method '%s' does not support hosted card entry.", name),
			Details: map[string]interface{}{
				"payment_method_name": name,
			},
		}
	}
	errStatusParse = func(value string) *schema.Error {
		return &schema.Error{
			Type:    "paymentMethods.invalidStatus",
			Message: fmt.Sprintf("'%s' is not a valid payment method status.", value),
			Details: map[string]interface{}{
				"value": value,
			},
		}
	}
	errRemote = func(err *remote.Error) *schema.Error {
		return &schema.Error{
			Type:    "remote.serviceError",
			Message: fmt.Sprintf("The %s reported an error.", err.Service),
			Details: map[string]interface{}{
				"service": err.Service,
				"status":  err.Status,
				"reason":  err.Reason,
			},
		}
	}
)

// writeDomainError maps a domain error to its stable external representation.
// Unknown errors end up as internal server errors with the cause logged, never disclosed.
func (service *Service) writeDomainError(writer http.ResponseWriter, err error) {
	var alreadyBound *session.AlreadyBoundError
	var tokenMismatch *session.TokenMismatchError
	var unsupported *session.UnsupportedMethodError
	var statusParse *paymentmethod.StatusParseError
	var remoteErr *remote.Error

	switch {
	case errors.Is(err, paymentmethod.ErrNotFound):
		service.writer.WriteErrors(writer, http.StatusNotFound, errPaymentMethodNotFound)
	case errors.Is(err, session.ErrNotFound):
		service.writer.WriteErrors(writer, http.StatusNotFound, errSessionNotFound)
	case errors.Is(err, paymentmethod.ErrNameInUse):
		service.writer.WriteErrors(writer, http.StatusConflict, errPaymentMethodNameInUse)
	case errors.Is(err, session.ErrNotBound):
		service.writer.WriteErrors(writer, http.StatusConflict, errSessionNotBound)
	case errors.Is(err, session.ErrMethodNotEnabled):
		service.writer.WriteErrors(writer, http.StatusConflict, errSessionMethodNotEnabled)
	case errors.Is(err, transaction.ErrInvalidID):
		service.writer.WriteErrors(writer, http.StatusBadRequest, errInvalidTransactionID)
	case errors.As(err, &alreadyBound):
		service.writer.WriteErrors(writer, http.StatusConflict,
			errSessionAlreadyBound(alreadyBound.ExistingTransactionID, alreadyBound.RequestedTransactionID))
	case errors.As(err, &tokenMismatch):
		service.writer.WriteErrors(writer, http.StatusUnauthorized, errSessionTokenMismatch)
	case errors.As(err, &unsupported):
		service.writer.WriteErrors(writer, http.StatusBadRequest, errSessionUnsupportedMethod(unsupported.Name))
	case errors.As(err, &statusParse):
		service.writer.WriteErrors(writer, http.StatusBadRequest, errStatusParse(statusParse.Value))
	case errors.As(err, &remoteErr):
		service.writer.WriteErrors(writer, remoteErr.Status, errRemote(remoteErr))
	default:
		service.writer.WriteInternalError(writer, err)
	}
}
