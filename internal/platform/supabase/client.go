// Package supabase implements a thin client for the Supabase PostgREST
// façade. All persistent state of the system lives behind this API; the
// client only translates reads and row mutations into filtered REST calls.
package supabase

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

	"estate-notifier-backend/internal/common/metrics"
)

const restPrefix = "/rest/v1/"

// APIError is a non-2xx PostgREST response, kept verbatim so callers can
// surface the upstream status and body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase request failed with status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Select runs a filtered read against a table. Filters, ordering and limits
// are passed PostgREST-style (field=eq.value, order=price.desc, limit=20).
func (c *Client) Select(ctx context.Context, table string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, table, query, nil, out)
}

// Insert creates a row. When out is non-nil the created representation is
// requested back and decoded into it.
func (c *Client) Insert(ctx context.Context, table string, row any, out any) error {
	return c.do(ctx, http.MethodPost, table, nil, row, out)
}

// Update patches every row matching the query filters and, when out is
// non-nil, decodes the mutated representations into it. An empty result
// means no row matched the filters.
func (c *Client) Update(ctx context.Context, table string, query url.Values, patch any, out any) error {
	return c.do(ctx, http.MethodPatch, table, query, patch, out)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body, out any) error {
	fullURL := c.baseURL + restPrefix + table
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if out != nil {
			req.Header.Set("Prefer", "return=representation")
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncExternalError("supabase")
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.IncExternalError("supabase")
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
