// Package client provides the ledger HTTP client: JSON request dispatch,
// response decoding, error classification, and transport-level retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for ledger client operations.
var (
	ledgerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_requests_total",
		Help: "Total ledger requests by endpoint path and status",
	}, []string{"path", "status"})

	ledgerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_request_duration_seconds",
		Help:    "Ledger request duration in seconds by endpoint path",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"path"})

	ledgerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_errors_total",
		Help: "Total ledger errors by class",
	}, []string{"class"})
)

// Client is the ledger API connection object. It is stateless aside from
// connection configuration and may be shared across goroutines; builders
// and iterators dispatch through it concurrently.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the ledger API, e.g. "https://ledger.example.com".
	BaseURL string

	// Credential is sent as a bearer token on every request. Issuance
	// and rotation are out of scope; the client holds it opaquely.
	Credential string

	// Timeout per HTTP request.
	Timeout time.Duration

	// Retry behaviour for connectivity failures. API errors are never
	// retried.
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64

	// HTTPClient overrides the default transport (for testing).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, credential string) Config {
	return Config{
		BaseURL:           baseURL,
		Credential:        credential,
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// New creates a new ledger client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https (got %q)", base.Scheme)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 1 * time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.BackoffMultiplier <= 0 {
		cfg.BackoffMultiplier = 2.0
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := log.With().Str("component", "ledger-client").Logger()

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		config:     cfg,
		logger:     logger,
	}, nil
}

// Request posts body as JSON to the given endpoint path and decodes the
// response into result. A nil body sends an empty JSON object; a nil
// result discards the response body.
//
// It returns an *APIError for structured server error payloads, a
// *ConnectivityError for transport failures (retried with backoff before
// surfacing), and a *DecodeError for malformed responses.
func (c *Client) Request(ctx context.Context, path string, body, result interface{}) error {
	startTime := time.Now()
	defer func() {
		ledgerRequestDuration.WithLabelValues(path).Observe(time.Since(startTime).Seconds())
	}()

	if body == nil {
		body = struct{}{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	retryCfg := RetryConfig{
		MaxAttempts:       c.config.MaxRetries,
		InitialBackoff:    c.config.InitialBackoff,
		MaxBackoff:        c.config.MaxBackoff,
		BackoffMultiplier: c.config.BackoffMultiplier,
	}

	err = retryWithBackoff(ctx, retryCfg, func() error {
		return c.do(ctx, path, payload, result)
	})
	if err != nil {
		ledgerErrorsTotal.WithLabelValues(string(classify(err))).Inc()
		return err
	}

	return nil
}

// do performs a single request attempt.
func (c *Client) do(ctx context.Context, path string, payload []byte, result interface{}) error {
	endpoint := c.baseURL.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Request-Id", requestID)
	if c.config.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Credential)
	}

	c.logger.Debug().
		Str("path", path).
		Str("request_id", requestID).
		Msg("Executing ledger request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("path", path).
			Str("request_id", requestID).
			Msg("Ledger request failed")
		ledgerRequestsTotal.WithLabelValues(path, "network_error").Inc()
		return &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		ledgerRequestsTotal.WithLabelValues(path, "network_error").Inc()
		return &ConnectivityError{Err: fmt.Errorf("read response body: %w", err)}
	}

	ledgerRequestsTotal.WithLabelValues(path, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		return c.decodeError(path, requestID, resp.StatusCode, respBody)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return &DecodeError{Err: fmt.Errorf("decode response for %s: %w", path, err)}
	}

	return nil
}

// decodeError turns a non-2xx response into the appropriate error type.
// A valid structured payload becomes an APIError. A 5xx without one is
// treated as a connectivity failure (reverse proxies emit those); a 4xx
// without one means we cannot make sense of the response at all.
func (c *Client) decodeError(path, requestID string, statusCode int, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.RequestID = requestID
		apiErr.StatusCode = statusCode

		c.logger.Warn().
			Str("path", path).
			Str("request_id", requestID).
			Int("status", statusCode).
			Str("code", apiErr.Code).
			Msg("Ledger API error")

		return &apiErr
	}

	if statusCode >= 500 {
		return &ConnectivityError{
			Err: fmt.Errorf("server error %d: %s", statusCode, strings.TrimSpace(truncate(body, 200))),
		}
	}

	return &DecodeError{
		Err: fmt.Errorf("unexpected status %d with undecodable body: %s", statusCode, strings.TrimSpace(truncate(body, 200))),
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
