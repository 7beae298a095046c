// Package client provides thin wrappers around the Polly HTTP API endpoints
// for user registration, login, poll listing, vote casting, and results
// retrieval.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for Polly client operations.
var (
	pollyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polly_requests_total",
		Help: "Total Polly API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	pollyRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "polly_request_duration_seconds",
		Help:    "Polly API request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	pollyErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polly_errors_total",
		Help: "Total Polly API errors by class",
	}, []string{"class"})
)

// Client is the Polly API client. All methods perform exactly one HTTP call;
// there is no retrying, caching, or cross-call state. The bearer token is
// passed explicitly by the caller on privileged operations.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the Polly API server.
	BaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout for the underlying HTTP transport.
	Timeout time.Duration

	// HTTPClient overrides the default transport when set (mainly for tests).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8000",
		UserAgent: "polly-go/0.1.0",
		Timeout:   30 * time.Second,
	}
}

// New creates a new Polly client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "polly-client").Logger()

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}, nil
}

// do executes a single HTTP request, recording metrics and converting
// network-level failures into transport errors. Callers own the response
// body on success.
func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing Polly request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	pollyRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		pollyErrorsTotal.WithLabelValues(string(ErrorClassTransport)).Inc()
		pollyRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, newTransportError(0, "request failed", err)
	}

	pollyRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// decode parses a JSON response body into out. Malformed or mistyped
// payloads are reported as validation errors.
func (c *Client) decode(resp *http.Response, endpoint string, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Malformed response body")
		pollyErrorsTotal.WithLabelValues(string(ErrorClassValidation)).Inc()
		return newValidationError("malformed response body", err)
	}
	return nil
}

// domainError builds a domain-class error, preferring the server-supplied
// detail message over the fallback.
func (c *Client) domainError(resp *http.Response, endpoint, prefix, fallback string) *APIError {
	message := errorDetail(resp.Body)
	if message == "" {
		message = fallback
	}
	if prefix != "" {
		message = prefix + message
	}

	c.logger.Warn().
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Str("class", string(ErrorClassDomain)).
		Msg(message)
	pollyErrorsTotal.WithLabelValues(string(ErrorClassDomain)).Inc()

	return newDomainError(resp.StatusCode, message)
}

// unexpectedStatus converts a status code outside the endpoint's contract
// into a transport-class error.
func (c *Client) unexpectedStatus(resp *http.Response, endpoint string) *APIError {
	c.logger.Warn().
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Str("class", string(ErrorClassTransport)).
		Msg("Unexpected response status")
	pollyErrorsTotal.WithLabelValues(string(ErrorClassTransport)).Inc()

	return newTransportError(resp.StatusCode, "unexpected status "+resp.Status, nil)
}

// errorDetail extracts the "detail" field of a Polly error body, if any.
func errorDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}

	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}

	return payload.Detail
}
