package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/veldpay/methods-server/internal/api/schema"
)

// managementKeyHeader carries the management API key on catalog mutation requests
const managementKeyHeader = "X-Management-Key"

var errManagementKeyInvalid = &schema.Error{
	Type:    "management.invalidKey",
	Message: "The given management API key is invalid.",
}

// MiddlewareVerifyManagementKey verifies that the request carries the configured management API key
func (service *Service) MiddlewareVerifyManagementKey(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		key := request.Header.Get(managementKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(service.Config.ManagementAPIKey)) != 1 {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, errManagementKeyInvalid)
			return
		}
		next(writer, request)
	}
}
