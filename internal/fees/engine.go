package fees

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/veldpay/methods-server/internal/feequote"
	"github.com/veldpay/methods-server/internal/paymentmethod"
)

// Quoter defines the fee calculator operations the engine depends on
type Quoter interface {
	// GetFees quotes the fee bundles applicable to the given payment option
	GetFees(ctx context.Context, option *feequote.PaymentOption, maxOccurrences int, allCCP bool) (*feequote.BundleOption, error)
}

// Request represents a payment option request as submitted by a client
type Request struct {
	Bin                        string
	PaymentAmount              int64
	IDPSPList                  []string
	PaymentMethod              string
	PrimaryCreditorInstitution string
	Touchpoint                 string
	TransferList               []feequote.TransferListItem
	IsAllCCP                   bool
}

// Response represents an aggregated, deduplicated set of fee bundles
type Response struct {
	BelowThreshold bool               `json:"below_threshold"`
	Bundles        []*feequote.Bundle `json:"bundles"`
}

// MethodResponse represents an aggregated set of fee bundles anchored to a payment method
type MethodResponse struct {
	BelowThreshold    bool                 `json:"below_threshold"`
	MethodName        string               `json:"payment_method_name"`
	MethodDescription string               `json:"payment_method_description"`
	MethodStatus      paymentmethod.Status `json:"payment_method_status"`
	Bundles           []*feequote.Bundle   `json:"bundles"`
}

// Engine translates a payment option request into a ranked, deduplicated,
// policy-filtered set of PSP fee bundles.
type Engine struct {
	methods paymentmethod.Repository
	quotes  Quoter
}

// NewEngine creates a new fee aggregation engine
func NewEngine(methods paymentmethod.Repository, quotes Quoter) *Engine {
	return &Engine{
		methods: methods,
		quotes:  quotes,
	}
}

// ComputeForMethod aggregates the fee bundles applicable to a payment option under a specific payment method.
// The method's type code overrides whatever the caller supplied in the request. Bundles without a payment
// method code are projected with the anchoring method's type code in the response (the quote itself is
// conceptually unchanged). Remote failures surface untouched.
func (engine *Engine) ComputeForMethod(ctx context.Context, request *Request, methodID uuid.UUID, maxOccurrences int) (*MethodResponse, error) {
	method, err := engine.methods.GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, paymentmethod.ErrNotFound
	}

	quote, err := engine.quotes.GetFees(ctx, buildOption(request, method.TypeCode), maxOccurrences, request.IsAllCCP)
	if err != nil {
		return nil, err
	}

	bundles := dedupeByPSP(quote.Bundles)
	for i, bundle := range bundles {
		if bundle.PaymentMethod == nil {
			// A missing method code means "any" to the calculator; annotate the response view only
			annotated := *bundle
			code := method.TypeCode
			annotated.PaymentMethod = &code
			bundles[i] = &annotated
		}
	}

	log.Debug().
		Str("method_id", methodID.String()).
		Int("bundles", len(bundles)).
		Msg("aggregated fee bundles")

	return &MethodResponse{
		BelowThreshold:    quote.BelowThreshold,
		MethodName:        method.Name,
		MethodDescription: method.Description,
		MethodStatus:      method.Status,
		Bundles:           bundles,
	}, nil
}

// Compute aggregates the fee bundles applicable to a payment option without a payment method anchor.
// On top of the PSP deduplication, bundles whose method type code is not currently enabled in the
// payment method catalog are removed. The enabled set is a point-in-time snapshot per call.
func (engine *Engine) Compute(ctx context.Context, request *Request, maxOccurrences int) (*Response, error) {
	quote, err := engine.quotes.GetFees(ctx, buildOption(request, request.PaymentMethod), maxOccurrences, request.IsAllCCP)
	if err != nil {
		return nil, err
	}

	enabledCodes, err := engine.methods.GetTypeCodes(ctx, paymentmethod.StatusEnabled)
	if err != nil {
		return nil, err
	}
	enabled := make(map[string]struct{}, len(enabledCodes))
	for _, code := range enabledCodes {
		enabled[code] = struct{}{}
	}

	bundles := []*feequote.Bundle{}
	for _, bundle := range dedupeByPSP(quote.Bundles) {
		if bundle.PaymentMethod == nil {
			continue
		}
		if _, ok := enabled[*bundle.PaymentMethod]; ok {
			bundles = append(bundles, bundle)
		}
	}

	return &Response{
		BelowThreshold: quote.BelowThreshold,
		Bundles:        bundles,
	}, nil
}

// buildOption normalizes a client request into the outbound quote request.
// The resolved payment method type code replaces whatever the caller supplied.
func buildOption(request *Request, typeCode string) *feequote.PaymentOption {
	pspList := make([]feequote.PSPSearchItem, 0, len(request.IDPSPList))
	for _, id := range request.IDPSPList {
		pspList = append(pspList, feequote.PSPSearchItem{IDPSP: id})
	}

	transfers := request.TransferList
	if transfers == nil {
		transfers = []feequote.TransferListItem{}
	}

	return &feequote.PaymentOption{
		Bin:                        request.Bin,
		PaymentAmount:              request.PaymentAmount,
		IDPSPList:                  pspList,
		PaymentMethod:              typeCode,
		PrimaryCreditorInstitution: request.PrimaryCreditorInstitution,
		Touchpoint:                 request.Touchpoint,
		TransferList:               transfers,
	}
}

// dedupeByPSP keeps the first bundle seen per PSP identifier, preserving the order the
// calculator returned. Bundles without a PSP identifier bypass deduplication and are all kept.
func dedupeByPSP(bundles []*feequote.Bundle) []*feequote.Bundle {
	seen := make(map[string]struct{}, len(bundles))
	result := make([]*feequote.Bundle, 0, len(bundles))
	for _, bundle := range bundles {
		if bundle.IDPSP == nil {
			result = append(result, bundle)
			continue
		}
		if _, ok := seen[*bundle.IDPSP]; ok {
			continue
		}
		seen[*bundle.IDPSP] = struct{}{}
		result = append(result, bundle)
	}
	return result
}
