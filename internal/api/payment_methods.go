package api

import (
	"fmt"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/veldpay/methods-server/internal/api/schema"
	"github.com/veldpay/methods-server/internal/api/validation"
	"github.com/veldpay/methods-server/internal/paymentmethod"
)

var errPathParameterInvalidUUID = func(name, value string) *schema.Error {
	return &schema.Error{
		Type:    "validation.path.parameter.invalidType",
		Message: fmt.Sprintf("The path parameter '%s' ('%s') could not be assigned to the required type (uuid).", name, value),
		Details: map[string]interface{}{
			"parameter":     name,
			"value":         value,
			"expected_type": "uuid",
		},
	}
}

// uuidParam extracts and parses a UUID path parameter.
// If the value is malformed, the validation error is written and ok is false.
func (service *Service) uuidParam(writer http.ResponseWriter, request *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(request, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, errPathParameterInvalidUUID(name, raw))
		return uuid.UUID{}, false
	}
	return id, true
}

// EndpointGetPaymentMethods handles the 'GET /v1/payment-methods?amount={number?}' endpoint
func (service *Service) EndpointGetPaymentMethods(writer http.ResponseWriter, request *http.Request) {
	amount, validationErr := validation.QueryNumber(request, "amount", false, -1, 0, math.MaxInt64)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	var filter *int64
	if amount >= 0 {
		filter = &amount
	}

	methods, err := service.Storage.PaymentMethods().GetByFilter(request.Context(), filter)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, methods)
}

// EndpointGetPaymentMethod handles the 'GET /v1/payment-methods/{id}' endpoint
func (service *Service) EndpointGetPaymentMethod(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.uuidParam(writer, request, "id")
	if !ok {
		return
	}

	obj, err := service.Storage.PaymentMethods().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, errPaymentMethodNotFound)
		return
	}

	service.writer.WriteJSON(writer, obj)
}

type endpointCreatePaymentMethodRequestPayload struct {
	Name        *string `json:"name" required:"true"`
	Description string  `json:"description"`
	TypeCode    *string `json:"payment_type_code" required:"true"`
	Asset       string  `json:"asset"`
	Ranges      []struct {
		Min int64 `json:"min"`
		Max int64 `json:"max"`
	} `json:"ranges"`
}

// EndpointCreatePaymentMethod handles the 'POST /v1/payment-methods' endpoint
func (service *Service) EndpointCreatePaymentMethod(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := validation.UnmarshalBody[endpointCreatePaymentMethodRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	ranges := make([]paymentmethod.Range, 0, len(payload.Ranges))
	for _, r := range payload.Ranges {
		ranges = append(ranges, paymentmethod.Range{Min: r.Min, Max: r.Max})
	}

	obj, err := service.Storage.PaymentMethods().Create(request.Context(), &paymentmethod.Create{
		Name:        *payload.Name,
		Description: payload.Description,
		TypeCode:    *payload.TypeCode,
		Asset:       payload.Asset,
		Ranges:      ranges,
	})
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	service.writer.WriteJSONCode(writer, http.StatusCreated, obj)
}

type endpointUpdatePaymentMethodStatusRequestPayload struct {
	Status *string `json:"status" required:"true"`
}

// EndpointUpdatePaymentMethodStatus handles the 'PATCH /v1/payment-methods/{id}' endpoint
func (service *Service) EndpointUpdatePaymentMethodStatus(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.uuidParam(writer, request, "id")
	if !ok {
		return
	}

	payload, validationErrs, err := validation.UnmarshalBody[endpointUpdatePaymentMethodStatusRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	status, err := paymentmethod.ParseStatus(*payload.Status)
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	obj, err := service.Storage.PaymentMethods().UpdateStatus(request.Context(), id, status)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, errPaymentMethodNotFound)
		return
	}

	service.writer.WriteJSON(writer, obj)
}
