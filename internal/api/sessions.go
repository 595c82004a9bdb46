package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/veldpay/methods-server/internal/api/schema"
	"github.com/veldpay/methods-server/internal/api/validation"
	"github.com/veldpay/methods-server/internal/gateway"
)

// securityTokenHeader carries the session security token on validation requests
const securityTokenHeader = "X-Session-Token"

var errSecurityTokenMissing = &schema.Error{
	Type:    "validation.header.missing",
	Message: "The '" + securityTokenHeader + "' header is required but was not present in the request.",
	Details: map[string]interface{}{
		"header": securityTokenHeader,
	},
}

type endpointCreateSessionRequestPayload struct {
	OrderID *string `json:"order_id" required:"true"`
}

type endpointCreateSessionResponse struct {
	OrderID         string          `json:"order_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	PaymentMethod   string          `json:"payment_method"`
	Fields          []gateway.Field `json:"fields"`
}

// EndpointCreateSession handles the 'POST /v1/payment-methods/{id}/sessions' endpoint
func (service *Service) EndpointCreateSession(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.uuidParam(writer, request, "id")
	if !ok {
		return
	}

	payload, validationErrs, err := validation.UnmarshalBody[endpointCreateSessionRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	result, err := service.Sessions.Create(request.Context(), id, *payload.OrderID)
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	service.writer.WriteJSONCode(writer, http.StatusCreated, &endpointCreateSessionResponse{
		OrderID:         result.OrderID,
		PaymentMethodID: result.MethodID.String(),
		PaymentMethod:   result.PaymentMethod,
		Fields:          result.Fields,
	})
}

type endpointGetSessionCardDataResponse struct {
	SessionID      string `json:"session_id"`
	Bin            string `json:"bin"`
	LastFourDigits string `json:"last_four_digits"`
	ExpiryDate     string `json:"expiry_date"`
	Brand          string `json:"brand"`
}

// EndpointGetSessionCardData handles the 'GET /v1/payment-methods/{id}/sessions/{orderId}' endpoint
func (service *Service) EndpointGetSessionCardData(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.uuidParam(writer, request, "id")
	if !ok {
		return
	}

	result, err := service.Sessions.CardData(request.Context(), id, chi.URLParam(request, "orderId"))
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &endpointGetSessionCardDataResponse{
		SessionID:      result.SessionID,
		Bin:            result.Bin,
		LastFourDigits: result.LastFourDigits,
		ExpiryDate:     result.ExpiryDate,
		Brand:          result.Brand,
	})
}

type endpointBindSessionRequestPayload struct {
	TransactionID *string `json:"transaction_id" required:"true"`
}

type endpointBindSessionResponse struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

// EndpointBindSession handles the 'PATCH /v1/payment-methods/{id}/sessions/{orderId}' endpoint
func (service *Service) EndpointBindSession(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.uuidParam(writer, request, "id")
	if !ok {
		return
	}

	payload, validationErrs, err := validation.UnmarshalBody[endpointBindSessionRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	ses, err := service.Sessions.Bind(request.Context(), id, chi.URLParam(request, "orderId"), *payload.TransactionID)
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &endpointBindSessionResponse{
		OrderID:       ses.OrderID,
		TransactionID: *ses.TransactionID,
	})
}

type endpointValidateSessionResponse struct {
	TransactionID string `json:"transaction_id"`
}

// EndpointValidateSession handles the 'GET /v1/payment-methods/{id}/sessions/{orderId}/validate' endpoint
func (service *Service) EndpointValidateSession(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.uuidParam(writer, request, "id")
	if !ok {
		return
	}

	token := request.Header.Get(securityTokenHeader)
	if token == "" {
		service.writer.WriteErrors(writer, http.StatusBadRequest, errSecurityTokenMissing)
		return
	}

	encoded, err := service.Sessions.Validate(request.Context(), id, chi.URLParam(request, "orderId"), token)
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &endpointValidateSessionResponse{
		TransactionID: encoded,
	})
}
