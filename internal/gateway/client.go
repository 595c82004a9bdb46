package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/veldpay/methods-server/internal/remote"
)

const serviceName = "card gateway"

// Client talks to the hosted card-entry gateway.
// It creates hosted-field sessions and retrieves masked card data for them.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a new card gateway client
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// FormRequest carries the parameters of a hosted-field session creation
type FormRequest struct {
	CorrelationID   uuid.UUID `json:"-"`
	MerchantURL     string    `json:"merchantUrl"`
	ResultURL       string    `json:"resultUrl"`
	NotificationURL string    `json:"notificationUrl"`
	CancelURL       string    `json:"cancelUrl"`
	OrderID         string    `json:"orderId"`
	CustomerID      string    `json:"customerId"`
	PaymentMethod   string    `json:"paymentMethod"`
}

// Form represents a created hosted-field session
type Form struct {
	SessionID     string  `json:"sessionId"`
	SecurityToken string  `json:"securityToken"`
	Fields        []Field `json:"fields"`
}

// Field describes one input field the checkout frontend has to render
type Field struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Class string `json:"propertyClass"`
	Src   string `json:"src"`
}

// CardData represents the masked card data of a completed hosted-field session
type CardData struct {
	Bin            string `json:"bin"`
	LastFourDigits string `json:"lastFourDigits"`
	ExpiryDate     string `json:"expiringDate"`
	Circuit        string `json:"circuit"`
}

// BuildForm creates a new hosted-field session at the gateway
func (client *Client) BuildForm(ctx context.Context, form *FormRequest) (*Form, error) {
	result := new(Form)
	if err := client.do(ctx, http.MethodPost, "/v1/orders/build", form.CorrelationID, form, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetCardData retrieves the masked card data the client entered for an order
func (client *Client) GetCardData(ctx context.Context, correlationID uuid.UUID, orderID string) (*CardData, error) {
	result := new(CardData)
	if err := client.do(ctx, http.MethodGet, "/v1/orders/"+orderID+"/card_data", correlationID, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) do(ctx context.Context, method, path string, correlationID uuid.UUID, payload, result any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Api-Key", client.apiKey)
	request.Header.Set("Correlation-Id", correlationID.String())

	response, err := client.http.Do(request)
	if err != nil {
		return &remote.Error{Service: serviceName, Status: http.StatusBadGateway, Reason: err.Error()}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &remote.Error{Service: serviceName, Status: response.StatusCode, Reason: readReason(response.Body)}
	}

	return json.NewDecoder(response.Body).Decode(result)
}

// readReason extracts a human-readable reason from an error response body.
// Bodies following the gateway's problem schema expose a 'detail' field; anything else is returned verbatim.
func readReason(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no error details provided"
	}
	problem := struct {
		Detail string `json:"detail"`
	}{}
	if err := json.Unmarshal(raw, &problem); err == nil && problem.Detail != "" {
		return problem.Detail
	}
	return string(raw)
}
