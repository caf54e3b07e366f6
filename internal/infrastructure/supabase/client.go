// Package supabase is a thin read-only client for the Supabase PostgREST API.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client queries tables under the project's /rest/v1 endpoint using the
// anon key for both the apikey header and the bearer credential.
type Client struct {
	restURL string
	apiKey  string
	http    *http.Client
}

// New creates a Client for the given project URL and anon key.
func New(projectURL, apiKey string) *Client {
	return &Client{
		restURL: strings.TrimRight(projectURL, "/") + "/rest/v1",
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Select performs a GET on table with the given PostgREST query values and
// returns the raw JSON array exactly as the store produced it.
func (c *Client) Select(ctx context.Context, table string, query url.Values) (json.RawMessage, error) {
	u := c.restURL + "/" + url.PathEscape(table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build supabase request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase select %s: %w", table, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read supabase response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supabase select %s: status %d", table, resp.StatusCode)
	}
	return json.RawMessage(raw), nil
}
