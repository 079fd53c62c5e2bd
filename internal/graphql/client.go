// Package graphql sends product and customer mutations to the remote
// commerce API.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a request when Config.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// ErrEndpointEmpty is returned by NewClient when no endpoint is configured.
var ErrEndpointEmpty = errors.New("graphql endpoint is empty")

// Config locates and authenticates the remote API.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client executes GraphQL operations over HTTP. Requests are sent once;
// failures are returned to the caller.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for cfg.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return nil, ErrEndpointEmpty
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type request struct {
	OperationName string `json:"operationName,omitempty"`
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors,omitempty"`
}

// Execute posts one operation and decodes its data into out (when non-nil).
// Transport failures, non-2xx statuses, top-level GraphQL errors and
// mutation user errors are all returned as errors.
func (c *Client) Execute(ctx context.Context, operation, query string, variables, out any) error {
	body, err := json.Marshal(request{
		OperationName: operation,
		Query:         strings.TrimSpace(query),
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", operation, err)
	}

	start := time.Now()
	raw, err := c.post(ctx, body)
	c.logger.Debug("graphql request",
		zap.String("operation", operation),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("decoding %s response: %w", operation, err)
	}
	if len(resp.Errors) > 0 {
		return &ResponseError{Operation: operation, Errors: resp.Errors}
	}
	if err := userErrors(operation, resp.Data); err != nil {
		c.logger.Warn("mutation rejected", zap.String("operation", operation), zap.Error(err))
		return err
	}
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 || bytes.Equal(resp.Data, []byte("null")) {
		return fmt.Errorf("%s: %w", operation, ErrMissingData)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decoding %s data: %w", operation, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.Status, Body: strings.TrimSpace(string(respBody))}
	}
	return respBody, nil
}
