package api

import (
	"net/http"

	"github.com/veldpay/methods-server/internal/api/validation"
	"github.com/veldpay/methods-server/internal/feequote"
	"github.com/veldpay/methods-server/internal/fees"
)

// defaultMaxBundleOccurrences is the amount of fee bundles requested when the client does not specify one
const defaultMaxBundleOccurrences = 10

type endpointCalculateFeesRequestPayload struct {
	Bin                        *string  `json:"bin"`
	PaymentAmount              *int64   `json:"payment_amount" required:"true" min:"0"`
	IDPSPList                  []string `json:"id_psp_list"`
	PaymentMethod              string   `json:"payment_method"`
	PrimaryCreditorInstitution string   `json:"primary_creditor_institution"`
	Touchpoint                 string   `json:"touchpoint"`
	TransferList               []struct {
		CreditorInstitution string `json:"creditor_institution"`
		DigitalStamp        bool   `json:"digital_stamp"`
		TransferCategory    string `json:"transfer_category"`
	} `json:"transfer_list"`
	IsAllCCP bool `json:"is_all_ccp"`
}

func (payload *endpointCalculateFeesRequestPayload) toRequest() *fees.Request {
	request := &fees.Request{
		PaymentAmount:              *payload.PaymentAmount,
		IDPSPList:                  payload.IDPSPList,
		PaymentMethod:              payload.PaymentMethod,
		PrimaryCreditorInstitution: payload.PrimaryCreditorInstitution,
		Touchpoint:                 payload.Touchpoint,
		IsAllCCP:                   payload.IsAllCCP,
	}
	if payload.Bin != nil {
		request.Bin = *payload.Bin
	}
	for _, transfer := range payload.TransferList {
		request.TransferList = append(request.TransferList, feequote.TransferListItem{
			CreditorInstitution: transfer.CreditorInstitution,
			DigitalStamp:        transfer.DigitalStamp,
			TransferCategory:    transfer.TransferCategory,
		})
	}
	return request
}

// EndpointCalculateFees handles the 'POST /v1/payment-methods/fees?max_occurrences={number?}' endpoint
func (service *Service) EndpointCalculateFees(writer http.ResponseWriter, request *http.Request) {
	maxOccurrences, validationErr := validation.QueryNumber(request, "max_occurrences", false, defaultMaxBundleOccurrences, 1, 1000)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	payload, validationErrs, err := validation.UnmarshalBody[endpointCalculateFeesRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	response, err := service.Fees.Compute(request.Context(), payload.toRequest(), int(maxOccurrences))
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, response)
}

// EndpointCalculateMethodFees handles the 'POST /v1/payment-methods/{id}/fees?max_occurrences={number?}' endpoint
func (service *Service) EndpointCalculateMethodFees(writer http.ResponseWriter, request *http.Request) {
	id, ok := service.uuidParam(writer, request, "id")
	if !ok {
		return
	}

	maxOccurrences, validationErr := validation.QueryNumber(request, "max_occurrences", false, defaultMaxBundleOccurrences, 1, 1000)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	payload, validationErrs, err := validation.UnmarshalBody[endpointCalculateFeesRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	response, err := service.Fees.ComputeForMethod(request.Context(), payload.toRequest(), id, int(maxOccurrences))
	if err != nil {
		service.writeDomainError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, response)
}
