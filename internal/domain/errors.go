package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking
// upstream-provider internals to the client.
var (
	// ErrInvalidRequest marks malformed or missing client input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized marks a missing bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCode marks a verification code the upstream provider rejected.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrVerificationIncomplete marks a verify call the provider accepted
	// without issuing a token.
	ErrVerificationIncomplete = errors.New("verification incomplete")
	// ErrUpstreamUnavailable marks a provider that could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
