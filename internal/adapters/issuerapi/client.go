// Package issuerapi provides the HTTP client for the external
// credential-issuance endpoint.
package issuerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/credkit/issuerd/internal/domain/model"
)

const (
	apiKeyHeader = "X-API-Key"

	// maxResponseBodyBytes caps how much of the response body is captured
	// into the attempt log.
	maxResponseBodyBytes = 4 * 1024
)

// transportFailureCode is the synthesized status for transport-level
// failures (connect error, timeout, unreadable or non-JSON body). It routes
// the attempt into the retryable branch of the worker state machine.
const transportFailureCode = http.StatusInternalServerError

// ClientOptions configures the issuance client.
type ClientOptions struct {
	// Endpoint is the full URL credentials are POSTed to.
	Endpoint string
	// APIKey is sent in the X-API-Key header.
	APIKey string
	// HTTPClient overrides the default client (mainly for tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client posts credential payloads to the issuance endpoint. It implements
// core.IssuerClient.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient constructs a Client.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("issuance endpoint is required")
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: opts.Endpoint,
		apiKey:   opts.APIKey,
		http:     hc,
		logger:   logger,
	}, nil
}

// Issue POSTs the payload and captures the outcome. Transport failures and
// unparseable bodies never surface as errors: they are folded into the
// response with a synthesized 500 so the worker can log and retry them like
// any other server-side failure.
func (c *Client) Issue(ctx context.Context, payload json.RawMessage) model.AttemptResponse {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return transportFailure("build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "issuance request failed", "error", err)
		return transportFailure(err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return transportFailure("read response body: " + err.Error())
	}

	if len(body) == 0 {
		return model.AttemptResponse{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	if !json.Valid(body) {
		c.logger.WarnContext(ctx, "issuance response body is not JSON",
			"status_code", resp.StatusCode)
		return transportFailure("non-JSON response body")
	}

	return model.AttemptResponse{
		StatusCode: resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       json.RawMessage(body),
	}
}

func transportFailure(message string) model.AttemptResponse {
	return model.AttemptResponse{
		StatusCode: transportFailureCode,
		StatusText: http.StatusText(transportFailureCode),
		Error:      message,
	}
}
