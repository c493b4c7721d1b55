package backend

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

	"golang.org/x/time/rate"

	"github.com/AI2HU/geodash/internal/config"
	"github.com/AI2HU/geodash/internal/logger"
)

const (
	restPath = "/rest/v1/"
	rpcPath  = "/rest/v1/rpc/"

	defaultTimeout = 30 * time.Second
)

// Client talks to the hosted data backend through its REST resource and RPC endpoints.
// It is safe for concurrent use; calls share nothing but the HTTP client and the limiter.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// New creates a backend client
func New(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		log:     logger.Named("backend"),
	}
}

// Query issues a GET against a resource with field-filter parameters and decodes the JSON result into out
func (c *Client) Query(ctx context.Context, resource string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + restPath + resource
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req, resource)
	if err != nil {
		return err
	}

	return decode(resource, body, out)
}

// RPC calls a named remote procedure with a JSON object of parameters and decodes the result into out
func (c *Client) RPC(ctx context.Context, function string, params map[string]interface{}, out interface{}) error {
	if params == nil {
		params = map[string]interface{}{}
	}

	jsonBody, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+rpcPath+function, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, "rpc/"+function)
	if err != nil {
		return err
	}

	return decode(function, body, out)
}

// Upsert posts records to a resource, merging rows that collide on the onConflict columns
func (c *Client) Upsert(ctx context.Context, resource, onConflict string, records interface{}) error {
	jsonBody, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	endpoint := c.baseURL + restPath + resource
	if onConflict != "" {
		endpoint += "?" + url.Values{"on_conflict": {onConflict}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal,resolution=merge-duplicates")

	_, err = c.do(req, resource)
	return err
}

// do sends the request with credentials and returns the body of a 2xx response
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, &NetworkError{Op: op, URL: req.URL.String(), Err: err}
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warning("%s %s failed: %v", req.Method, op, err)
		return nil, &NetworkError{Op: op, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: req.URL.String(), Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.log.Debug("%s %s -> %d (%d bytes, %s)", req.Method, op, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warning("%s %s returned %d", req.Method, op, resp.StatusCode)
		return nil, &BackendError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func decode(op string, body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}
