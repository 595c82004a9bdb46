package apiconfig

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/veldpay/methods-server/internal/remote"
)

const serviceName = "psp registry"

// Service represents one PSP service entry as reported by the registry
type Service struct {
	PSPCode            string `json:"pspCode"`
	PSPBusinessName    string `json:"pspBusinessName"`
	BrokerPSPCode      string `json:"brokerPspCode"`
	ServiceDescription string `json:"serviceDescription"`
	PaymentTypeCode    string `json:"paymentTypeCode"`
	ChannelCode        string `json:"channelCode"`
	LanguageCode       string `json:"languageCode"`
	MinimumAmount      int64  `json:"minimumAmount"`
	MaximumAmount      int64  `json:"maximumAmount"`
	FixedCost          int64  `json:"fixedCost"`
}

// Client talks to the registry service listing the PSP services available to the platform
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new PSP registry client
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Services lists all PSP services currently known to the registry
func (client *Client) Services(ctx context.Context) ([]*Service, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/services", nil)
	if err != nil {
		return nil, err
	}

	response, err := client.http.Do(request)
	if err != nil {
		return nil, &remote.Error{Service: serviceName, Status: http.StatusBadGateway, Reason: err.Error()}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		reason, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return nil, &remote.Error{Service: serviceName, Status: response.StatusCode, Reason: string(reason)}
	}

	result := struct {
		Services []*Service `json:"services"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Services, nil
}
