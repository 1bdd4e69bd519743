// Package storage persists compositions against the remote form-config
// endpoint. The wire payload is a single JSON object carrying the field list
// and the theme variables; legacy deployments that return a bare field array
// are still accepted on read.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// StatusError reports a non-2xx response, preserving the status line verbatim
// so callers can surface it unchanged.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storage: unexpected status %s", e.Status)
}

// Client talks to the form-config endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each request. Zero means the context's deadline alone
// applies.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient builds a client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("storage: endpoint is required")
	}
	c := &Client{
		httpClient: http.DefaultClient,
		endpoint:   endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load fetches the stored composition.
func (c *Client) Load(ctx context.Context) (model.Composition, error) {
	data, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return model.Composition{}, err
	}

	composition, err := model.DecodeComposition(data)
	if err != nil {
		return model.Composition{}, fmt.Errorf("storage: decode composition: %w", err)
	}
	return composition, nil
}

// Save stores the composition, fields and theme in one payload.
func (c *Client) Save(ctx context.Context, composition model.Composition) error {
	payload, err := json.Marshal(composition)
	if err != nil {
		return fmt.Errorf("storage: encode composition: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, payload)
	return err
}

func (c *Client) do(ctx context.Context, method string, body []byte) ([]byte, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return data, nil
}
