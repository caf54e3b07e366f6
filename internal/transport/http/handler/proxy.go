package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/whatsdish-gateway/internal/domain"
	"github.com/whatsdish-gateway/internal/transport/http/middleware"
)

// UpstreamCaller is the provider call primitive proxied routes delegate to.
type UpstreamCaller interface {
	Do(ctx context.Context, method, path, token string, body any) (*domain.UpstreamResult, error)
}

// ProxyRoute declares one pass-through resource route. Params is the list of
// chi URL params substituted into the upstream path template, which uses the
// same {name} placeholders as the inbound pattern.
type ProxyRoute struct {
	Method      string
	Pattern     string // inbound chi pattern
	Upstream    string // upstream path template
	Params      []string
	RequireAuth bool
	HasBody     bool
}

// ProxyRoutes is the full table of proxied provider resources. Every entry
// behaves identically: extract token, substitute params, forward, relay the
// provider's status and body verbatim.
var ProxyRoutes = []ProxyRoute{
	{Method: http.MethodGet, Pattern: "/api/restaurants", Upstream: "/api/rn/merchants"},
	{Method: http.MethodGet, Pattern: "/api/restaurants/{id}", Upstream: "/api/rn/merchants/{id}", Params: []string{"id"}, RequireAuth: true},
	{Method: http.MethodGet, Pattern: "/api/user/profile", Upstream: "/api/rn/profile", RequireAuth: true},
	{Method: http.MethodGet, Pattern: "/api/profile/payment-methods", Upstream: "/api/profile/payment-methods", RequireAuth: true},
	{Method: http.MethodPost, Pattern: "/api/payments/m/cof", Upstream: "/api/payments/m/cof", RequireAuth: true, HasBody: true},
	{Method: http.MethodDelete, Pattern: "/api/profile/payment-methods/{cardId}", Upstream: "/api/profile/payment-methods/{cardId}", Params: []string{"cardId"}, RequireAuth: true},
}

// ProxyHandler turns ProxyRoute entries into handlers.
type ProxyHandler struct {
	upstream UpstreamCaller
}

func NewProxyHandler(upstream UpstreamCaller) *ProxyHandler {
	return &ProxyHandler{upstream: upstream}
}

// Handle builds the handler for one route table entry.
func (h *ProxyHandler) Handle(rt ProxyRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := rt.Upstream
		for _, p := range rt.Params {
			path = strings.ReplaceAll(path, "{"+p+"}", chi.URLParam(r, p))
		}

		var body any
		if rt.HasBody {
			var raw json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			body = raw
		}

		token := middleware.TokenFromContext(r.Context())
		res, err := h.upstream.Do(r.Context(), rt.Method, path, token, body)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "upstream service unavailable")
			return
		}
		writeRaw(w, res.StatusCode, res.Body)
	}
}
