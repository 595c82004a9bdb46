package feequote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/veldpay/methods-server/internal/remote"
)

const serviceName = "fee calculator"

// Client talks to the fee calculator service that quotes PSP fee bundles
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new fee calculator client
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetFees quotes the fee bundles applicable to the given payment option.
// maxOccurrences bounds how many bundles the calculator returns per internal grouping and is passed through opaquely.
func (client *Client) GetFees(ctx context.Context, option *PaymentOption, maxOccurrences int, allCCP bool) (*BundleOption, error) {
	raw, err := json.Marshal(option)
	if err != nil {
		return nil, err
	}

	url := client.baseURL + "/fees?maxOccurrences=" + strconv.Itoa(maxOccurrences) + "&allCcp=" + strconv.FormatBool(allCCP)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.http.Do(request)
	if err != nil {
		return nil, &remote.Error{Service: serviceName, Status: http.StatusBadGateway, Reason: err.Error()}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		reason, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return nil, &remote.Error{Service: serviceName, Status: response.StatusCode, Reason: string(reason)}
	}

	result := new(BundleOption)
	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return nil, err
	}
	return result, nil
}
