package onering

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the v2 surface of The One API
const DefaultBaseURL = "https://the-one-api.dev/v2"

// Client represents a The One API client
type Client struct {
	baseURL    string
	header     Header
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a new client sending header with every request
func NewClient(baseURL string, header Header, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: authorization header is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		header:     header,
		httpClient: &http.Client{},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// doRequest performs an authenticated GET and returns the response body
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, value := range c.header {
		req.Header.Set(name, value)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Info().Msg("Running call to " + url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

// Docs retrieves endpoint and unwraps the records under "docs"
func (c *Client) Docs(ctx context.Context, endpoint string) ([]Record, error) {
	body, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope docsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Docs == nil {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrMissingDocs)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("count", len(*envelope.Docs)).
		Int("total", envelope.Total).
		Int("page", envelope.Page).
		Int("pages", envelope.Pages).
		Msg("Retrieved records")

	return *envelope.Docs, nil
}
