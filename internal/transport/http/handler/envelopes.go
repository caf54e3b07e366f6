package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/whatsdish-gateway/internal/domain"
)

// MessageEnvelope is the generic success wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoginEnvelope wraps a completed phone verification.
type LoginEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeRaw relays a pre-encoded JSON payload with its status code untouched.
// A nil body still produces a JSON error so no failure path returns an
// empty response.
func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	if body == nil {
		writeError(w, status, http.StatusText(status))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// httpError maps domain sentinel errors to client-facing status codes.
// Unexpected errors become a non-leaking 500.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "Invalid verification code")
	case errors.Is(err, domain.ErrVerificationIncomplete):
		writeError(w, http.StatusBadRequest, "verification did not produce a token")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeError(w, http.StatusInternalServerError, "upstream service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
