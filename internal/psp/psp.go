package psp

import (
	"github.com/veldpay/methods-server/internal/paymentmethod"
)

// PSP represents one payment service provider offer in the catalog.
// A provider is listed once per (code, payment type, channel, language) combination.
type PSP struct {
	Code         string               `json:"code"`
	TypeCode     string               `json:"payment_type_code"`
	ChannelCode  string               `json:"channel_code"`
	Language     string               `json:"language"`
	Status       paymentmethod.Status `json:"status"`
	BusinessName string               `json:"business_name"`
	BrokerName   string               `json:"broker_name"`
	Description  string               `json:"description"`
	MinAmount    int64                `json:"min_amount"`
	MaxAmount    int64                `json:"max_amount"`
	FixedCost    int64                `json:"fixed_cost"`
}

// Filter is used to query PSPs based on a filter
type Filter struct {
	Amount   *int64
	Language *string
	TypeCode *string
}
