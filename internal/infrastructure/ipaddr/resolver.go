// Package ipaddr resolves the public IP address to attach to verification
// calls. Resolution is an ordered chain of sources tried in sequence; the
// first success wins and the chain always terminates in a fixed default.
package ipaddr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultLookupURL returns the caller's public IP as a plain-text body.
const DefaultLookupURL = "https://checkip.amazonaws.com/"

// Loopback is the terminal fallback when no source yields an address.
const Loopback = "127.0.0.1"

// Source yields a candidate IP address or an error to skip to the next one.
type Source interface {
	IP(ctx context.Context) (string, error)
}

// HTTPLookup fetches the public IP from a plain-text lookup endpoint.
type HTTPLookup struct {
	URL  string
	http *http.Client
}

// NewHTTPLookup creates an HTTPLookup with a short timeout; the lookup is an
// enrichment, not a hard dependency, so it must fail fast.
func NewHTTPLookup(url string) *HTTPLookup {
	return &HTTPLookup{
		URL:  url,
		http: &http.Client{Timeout: 3 * time.Second},
	}
}

func (l *HTTPLookup) IP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	ip := strings.TrimSpace(string(raw))
	if ip == "" {
		return "", fmt.Errorf("ip lookup: empty body")
	}
	return ip, nil
}

// RemoteAddr yields the host part of an inbound connection's remote address.
type RemoteAddr string

func (a RemoteAddr) IP(_ context.Context) (string, error) {
	s := string(a)
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	if s == "" {
		return "", fmt.Errorf("remote address unavailable")
	}
	return s, nil
}

// Resolver tries its sources in order, then any per-call extras, and finally
// falls back to Loopback. It never fails: verification must proceed even
// when every source is down.
type Resolver struct {
	sources []Source
}

func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// ClientIP returns the first address any source yields.
func (r *Resolver) ClientIP(ctx context.Context, extra ...Source) string {
	for _, src := range append(append([]Source{}, r.sources...), extra...) {
		ip, err := src.IP(ctx)
		if err != nil {
			slog.Debug("ip source failed, trying next", "err", err)
			continue
		}
		return ip
	}
	return Loopback
}
