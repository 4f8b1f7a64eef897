package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"payments-pipeline/config"
	"payments-pipeline/internal/core/domain"
	"payments-pipeline/internal/core/ports"
	"payments-pipeline/pkg/apperror"
)

// Client implements ports.ProviderClient over HTTP. One confirm call is one
// POST to the rail provider's confirm endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a provider HTTP client with a per-call timeout.
func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Confirm posts the payment to the provider and decodes the confirmation.
// Timeouts, unreachable providers and 5xx responses classify as transient;
// other failure modes are terminal.
func (c *Client) Confirm(ctx context.Context, strategy domain.ProviderStrategy, req ports.ProviderRequest) (*ports.ProviderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("marshal provider request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+strategy.Path, bytes.NewReader(body))
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("build provider request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, apperror.ProviderTimeout(err)
		}
		// Transport failure without a response: the provider side is down,
		// not slow.
		return nil, apperror.Provider5xx(fmt.Sprintf("Provider %s unreachable", strategy.ProviderName))
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, apperror.Provider5xx(fmt.Sprintf("Provider %s returned %d", strategy.ProviderName, httpResp.StatusCode))
	}
	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, apperror.Validation(fmt.Sprintf("Provider %s rejected request with %d", strategy.ProviderName, httpResp.StatusCode))
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("read provider response: %w", err))
	}
	resp := &ports.ProviderResponse{}
	if err := json.Unmarshal(raw, resp); err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode provider response: %w", err))
	}
	return resp, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
