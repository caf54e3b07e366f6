// Package whatsdish is a thin client for the WhatsDish merchant/identity API.
// It forwards opaque bearer tokens verbatim and never inspects them.
package whatsdish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/whatsdish-gateway/internal/domain"
)

// Provider auth endpoints.
const (
	PathSMSTrigger = "/api/auth/login-with-sms-trigger"
	PathSMSVerify  = "/api/auth/login-with-sms-verify"
)

// Client performs authenticated JSON calls against the upstream provider.
// A single attempt per call; transient network failures surface as errors
// for the caller to classify.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given provider base URL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Do issues method on path. When token is non-empty it is attached as a
// Bearer credential; when body is non-nil it is serialized as JSON. The
// response is always parsed as JSON: a non-JSON body yields a result with
// the raw status and a nil body. Non-2xx statuses are not errors here —
// the result carries them so callers can relay the provider's own payload.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) (*domain.UpstreamResult, error) {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := ulid.Make().String()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("upstream call failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	res := &domain.UpstreamResult{StatusCode: resp.StatusCode}
	if json.Valid(raw) {
		res.Body = json.RawMessage(raw)
	}
	if !res.OK() {
		slog.Warn("upstream returned error status",
			"method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
	}
	return res, nil
}
