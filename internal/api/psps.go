package api

import (
	"math"
	"net/http"
	"strings"

	"github.com/veldpay/methods-server/internal/api/schema"
	"github.com/veldpay/methods-server/internal/api/validation"
	"github.com/veldpay/methods-server/internal/psp"
)

// EndpointGetPSPs handles the 'GET /v1/psps?amount={number?}&lang={string?}&payment_type_code={string?}&offset={number?}&limit={number?}' endpoint
func (service *Service) EndpointGetPSPs(writer http.ResponseWriter, request *http.Request) {
	offset, validationErr := validation.QueryNumber(request, "offset", false, 0, 0, math.MaxInt64)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}
	limit, validationErr := validation.QueryNumber(request, "limit", false, 20, 1, 100)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}
	amount, validationErr := validation.QueryNumber(request, "amount", false, -1, 0, math.MaxInt64)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	filter := &psp.Filter{}
	if amount >= 0 {
		filter.Amount = &amount
	}
	if lang := request.URL.Query().Get("lang"); lang != "" {
		normalized := strings.ToUpper(lang)
		filter.Language = &normalized
	}
	if typeCode := request.URL.Query().Get("payment_type_code"); typeCode != "" {
		filter.TypeCode = &typeCode
	}

	psps, err := service.Storage.PSPs().GetByFilter(request.Context(), filter)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	// The catalog is small and replaced wholesale on refresh, so pagination happens here
	total := uint64(len(psps))
	page := []*psp.PSP{}
	if offset < int64(len(psps)) {
		end := offset + limit
		if end > int64(len(psps)) {
			end = int64(len(psps))
		}
		page = psps[offset:end]
	}

	service.writer.WriteJSON(writer, schema.BuildPaginatedResponse(uint64(offset), uint64(limit), total, page))
}
