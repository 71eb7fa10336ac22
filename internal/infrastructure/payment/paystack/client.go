// Package paystack implements the payment gateway port against the Paystack
// REST API.
package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/oysterbuild/backend/internal/application/billing/gateway"
	"github.com/oysterbuild/backend/internal/shared/config"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

const (
	defaultBaseURL = "https://api.paystack.co"
	// Maximum response body size accepted from the provider (256KB)
	maxResponseSize = 256 << 10
)

// initializeRequest is the /transaction/initialize payload. Paystack expects
// amounts in the currency subunit (kobo for NGN).
type initializeRequest struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type errorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Client talks to the Paystack API and verifies its webhook signatures.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

// NewClient creates a Paystack client from configuration.
func NewClient(cfg *config.PaystackConfig, logger logger.Interface) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	connectTimeout := time.Duration(cfg.ConnectSeconds) * time.Second
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	return &Client{
		secretKey: cfg.SecretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
			},
		},
		logger: logger,
	}
}

var _ gateway.PaymentGateway = (*Client)(nil)

// Name returns the provider identifier stored on transactions.
func (c *Client) Name() string {
	return constants.ProviderPaystack
}

// Initialize opens a checkout session. Amount arrives in major units and is
// converted to the subunit Paystack expects.
func (c *Client) Initialize(ctx context.Context, email string, amount int64, currency, reference string) (*gateway.InitializeResult, error) {
	payload := initializeRequest{
		Email:     email,
		Amount:    amount * 100,
		Currency:  currency,
		Reference: reference,
	}

	var resp initializeResponse
	if err := c.post(ctx, "/transaction/initialize", payload, &resp); err != nil {
		return nil, err
	}

	if !resp.Status {
		c.logger.Warnw("paystack rejected transaction initialization",
			"message", resp.Message,
			"reference", reference,
		)
		return nil, errors.NewUpstreamRejectedError(c.Name(), http.StatusBadRequest, resp.Message)
	}

	return &gateway.InitializeResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		Reference:        resp.Data.Reference,
		AccessCode:       resp.Data.AccessCode,
	}, nil
}

// VerifySignature authenticates a webhook delivery. Paystack signs the raw
// body with HMAC-SHA512 under the account secret key.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("paystack request failed",
			"url", url,
			"error", err,
		)
		return c.transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
		return nil
	}

	return c.handleErrorStatus(resp.StatusCode, respBody, url)
}

// transportError classifies a failed round trip. Timeouts and connection
// failures get distinct types so callers can decide whether a retry is worth it.
func (c *Client) transportError(err error) error {
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.NewUpstreamTimeoutError(c.Name(), "payment provider request timed out")
	}
	return errors.NewUpstreamUnavailableError(c.Name(), "payment provider is unreachable")
}

// handleErrorStatus maps a non-2xx provider response onto the upstream error
// taxonomy so handlers can relay a meaningful status plus the provider name.
func (c *Client) handleErrorStatus(statusCode int, body []byte, url string) error {
	message := string(body)
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		message = errResp.Message
	}

	switch {
	case statusCode == http.StatusBadRequest || statusCode == http.StatusNotFound:
		c.logger.Warnw("paystack rejected request", "url", url, "status_code", statusCode, "message", message)
	case statusCode == http.StatusTooManyRequests:
		c.logger.Warnw("paystack rate limit hit", "url", url)
	default:
		c.logger.Errorw("paystack request failed with error status",
			"url", url,
			"status_code", statusCode,
			"message", message,
		)
	}

	return errors.NewUpstreamRejectedError(c.Name(), statusCode, message)
}
