package scenariorun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// runIDHeader tags every request with the run id.
const runIDHeader = "X-Run-ID"

// ErrRequest marks a non-2xx API response.
var ErrRequest = errors.New("api request failed")

// HTTPClient wraps http.Client with timeout and JSON helpers.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	runID   string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL, runID string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		runID:   runID,
	}
}

// do sends a request and decodes a JSON response into out when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(runIDHeader, c.runID)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Code != "" {
			return fmt.Errorf("%w: %s %s: %d %s: %s", ErrRequest, method, path, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%w: %s %s: %d", ErrRequest, method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// Health checks that the service answers /healthz.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Model fetches the classifier status.
func (c *HTTPClient) Model(ctx context.Context) (modelStatus, error) {
	var st modelStatus
	err := c.do(ctx, http.MethodGet, "/api/model", nil, &st)
	return st, err
}

// CreateSession starts a new demo session.
func (c *HTTPClient) CreateSession(ctx context.Context) (sessionView, error) {
	var v sessionView
	err := c.do(ctx, http.MethodPost, "/api/sessions", nil, &v)
	return v, err
}

// SelectScenario generates a window for scenario.
func (c *HTTPClient) SelectScenario(ctx context.Context, id, scenario string) error {
	return c.do(ctx, http.MethodPost, "/api/sessions/"+id+"/scenario", map[string]string{"scenario": scenario}, nil)
}

// Classify runs the classifier on the session's window.
func (c *HTTPClient) Classify(ctx context.Context, id string) (sessionView, error) {
	var v sessionView
	err := c.do(ctx, http.MethodPost, "/api/sessions/"+id+"/classify", nil, &v)
	return v, err
}
