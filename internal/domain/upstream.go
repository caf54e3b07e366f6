package domain

import "encoding/json"

// UpstreamResult is the outcome of a single call to the upstream provider.
// Status and body always travel together: the gateway relays them as one
// response and never splits or rewrites a proxied payload.
type UpstreamResult struct {
	StatusCode int
	// Body is the provider's response parsed as JSON, or nil when the
	// provider returned something that is not valid JSON.
	Body json.RawMessage
}

// OK reports whether the provider answered with a 2xx status.
func (r *UpstreamResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
