package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/veldpay/methods-server/internal/api/schema"
	"github.com/veldpay/methods-server/internal/config"
	"github.com/veldpay/methods-server/internal/fees"
	"github.com/veldpay/methods-server/internal/function"
	"github.com/veldpay/methods-server/internal/session"
	"github.com/veldpay/methods-server/internal/storage"
)

// Service represents the checkout methods API service
type Service struct {
	server *http.Server

	Config   *config.Config
	Storage  storage.Driver
	Sessions *session.Manager
	Fees     *fees.Engine

	writer *schema.Writer
}

// Startup starts up the API.
// Unexpected runtime errors are reported through the given channel.
func (service *Service) Startup(errs chan<- error) {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.APIAllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the API endpoint handlers
	service.registerEndpoints(router)

	// Start up the server
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: router,
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()
}

// Shutdown shuts down the API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

func (service *Service) registerEndpoints(router chi.Router) {
	// Register the payment method controller endpoints
	router.Get("/v1/payment-methods", service.EndpointGetPaymentMethods)
	router.Post("/v1/payment-methods", function.Nest[http.HandlerFunc](
		service.EndpointCreatePaymentMethod,
		service.MiddlewareVerifyManagementKey,
	))
	router.Get("/v1/payment-methods/{id}", service.EndpointGetPaymentMethod)
	router.Patch("/v1/payment-methods/{id}", function.Nest[http.HandlerFunc](
		service.EndpointUpdatePaymentMethodStatus,
		service.MiddlewareVerifyManagementKey,
	))

	// Register the fee controller endpoints
	router.Post("/v1/payment-methods/fees", service.EndpointCalculateFees)
	router.Post("/v1/payment-methods/{id}/fees", service.EndpointCalculateMethodFees)

	// Register the session controller endpoints
	router.Post("/v1/payment-methods/{id}/sessions", service.EndpointCreateSession)
	router.Get("/v1/payment-methods/{id}/sessions/{orderId}", service.EndpointGetSessionCardData)
	router.Patch("/v1/payment-methods/{id}/sessions/{orderId}", service.EndpointBindSession)
	router.Get("/v1/payment-methods/{id}/sessions/{orderId}/validate", service.EndpointValidateSession)

	// Register the PSP controller endpoints
	router.Get("/v1/psps", service.EndpointGetPSPs)
}
