package http

import (
	"github.com/whatsdish-gateway/internal/application/catalog"
	"github.com/whatsdish-gateway/internal/application/otp"
)

// Deps holds the infrastructure collaborators the router wires into the
// application services. All of them are stateless; the router owns no
// per-request state.
type Deps struct {
	// Upstream is the authenticated call primitive for the provider API.
	Upstream otp.UpstreamCaller
	// Store is the read-only managed-store query capability.
	Store catalog.Reader
	// IPs resolves the client IP attached to verification calls.
	IPs otp.IPResolver
}
