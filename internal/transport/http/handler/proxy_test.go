package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/whatsdish-gateway/internal/domain"
	"github.com/whatsdish-gateway/internal/transport/http/middleware"
)

type mockUpstream struct{ mock.Mock }

func (m *mockUpstream) Do(ctx context.Context, method, path, token string, body any) (*domain.UpstreamResult, error) {
	args := m.Called(ctx, method, path, token, body)
	if r, _ := args.Get(0).(*domain.UpstreamResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// routeByPattern finds a table entry by its inbound pattern.
func routeByPattern(t *testing.T, pattern string) ProxyRoute {
	t.Helper()
	for _, rt := range ProxyRoutes {
		if rt.Pattern == pattern {
			return rt
		}
	}
	t.Fatalf("no proxy route with pattern %s", pattern)
	return ProxyRoute{}
}

// serve mounts the single route behind the bearer middleware, as the real
// router does, so URL params and the token context both resolve.
func serve(rt ProxyRoute, h *ProxyHandler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.With(middleware.RequireBearer).MethodFunc(rt.Method, rt.Pattern, h.Handle(rt))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestProxy_RelaysSuccessVerbatim(t *testing.T) {
	up := &mockUpstream{}
	up.On("Do", mock.Anything, "GET", "/api/rn/profile", "tok-abc", nil).
		Return(&domain.UpstreamResult{StatusCode: 200, Body: json.RawMessage(`{"name":"Kim"}`)}, nil)

	rt := routeByPattern(t, "/api/user/profile")
	req := withToken(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), "tok-abc")
	rr := serve(rt, NewProxyHandler(up), req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"name":"Kim"}`, rr.Body.String())
}

func TestProxy_SubstitutesPathParams(t *testing.T) {
	up := &mockUpstream{}
	up.On("Do", mock.Anything, "GET", "/api/rn/merchants/42", "tok", nil).
		Return(&domain.UpstreamResult{StatusCode: 200, Body: json.RawMessage(`{"id":42}`)}, nil)

	rt := routeByPattern(t, "/api/restaurants/{id}")
	req := withToken(httptest.NewRequest(http.MethodGet, "/api/restaurants/42", nil), "tok")
	rr := serve(rt, NewProxyHandler(up), req)

	require.Equal(t, http.StatusOK, rr.Code)
	up.AssertExpectations(t)
}

func TestProxy_RelaysUpstreamErrorStatusAndBody(t *testing.T) {
	up := &mockUpstream{}
	up.On("Do", mock.Anything, "GET", "/api/rn/merchants/42", "abc", nil).
		Return(&domain.UpstreamResult{StatusCode: 404, Body: json.RawMessage(`{"error":"not found"}`)}, nil)

	rt := routeByPattern(t, "/api/restaurants/{id}")
	req := withToken(httptest.NewRequest(http.MethodGet, "/api/restaurants/42", nil), "abc")
	rr := serve(rt, NewProxyHandler(up), req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}

func TestProxy_ForwardsPostBody(t *testing.T) {
	up := &mockUpstream{}
	up.On("Do", mock.Anything, "POST", "/api/payments/m/cof", "tok", mock.MatchedBy(func(body any) bool {
		raw, ok := body.(json.RawMessage)
		return ok && string(raw) == `{"number":"4242"}`
	})).Return(&domain.UpstreamResult{StatusCode: 201, Body: json.RawMessage(`{"cardId":"c1"}`)}, nil)

	rt := routeByPattern(t, "/api/payments/m/cof")
	req := withToken(httptest.NewRequest(http.MethodPost, "/api/payments/m/cof",
		bytes.NewBufferString(`{"number":"4242"}`)), "tok")
	rr := serve(rt, NewProxyHandler(up), req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"cardId":"c1"}`, rr.Body.String())
}

func TestProxy_NetworkErrorIsGeneric500(t *testing.T) {
	up := &mockUpstream{}
	up.On("Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded)

	rt := routeByPattern(t, "/api/user/profile")
	req := withToken(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), "tok")
	rr := serve(rt, NewProxyHandler(up), req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"upstream service unavailable"}`, rr.Body.String())
}

func TestProxy_NonJSONUpstreamBodyBecomesJSONError(t *testing.T) {
	up := &mockUpstream{}
	up.On("Do", mock.Anything, "GET", "/api/rn/profile", "tok", nil).
		Return(&domain.UpstreamResult{StatusCode: 502, Body: nil}, nil)

	rt := routeByPattern(t, "/api/user/profile")
	req := withToken(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), "tok")
	rr := serve(rt, NewProxyHandler(up), req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"Bad Gateway"}`, rr.Body.String())
}
