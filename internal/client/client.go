// Package client is a thin HTTP client for the curriculumwatch API,
// used by CLI commands that talk to a running server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/curriculumwatch/curriculumwatch/internal/engine"
)

// TransportError reports a failed or rejected API call. Callers can
// treat it as non-fatal and fall back to local data.
type TransportError struct {
	URL    string
	Status int   // 0 when the request never completed
	Err    error // nil on non-2xx responses
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request %s: status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client talks to one curriculumwatch server.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for the given base URL, e.g. "http://127.0.0.1:8742".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// get performs a GET and decodes the data field of the envelope into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	url := c.base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{URL: url, Status: resp.StatusCode}
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &TransportError{URL: url, Err: err}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{URL: url, Err: err}
		}
	}
	return nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/api/v1/ping", nil)
}

// Snapshot fetches all four data categories.
func (c *Client) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	var snap engine.Snapshot
	if err := c.get(ctx, "/api/v1/snapshot", &snap); err != nil {
		return engine.Snapshot{}, err
	}
	return snap, nil
}

// Analysis runs the evaluation on the server's current data.
func (c *Client) Analysis(ctx context.Context) (*engine.AnalysisResult, error) {
	var result engine.AnalysisResult
	if err := c.get(ctx, "/api/v1/analysis", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
