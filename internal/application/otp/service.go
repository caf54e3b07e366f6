package otp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/whatsdish-gateway/internal/domain"
	"github.com/whatsdish-gateway/internal/infrastructure/ipaddr"
	"github.com/whatsdish-gateway/internal/infrastructure/whatsdish"
	"github.com/whatsdish-gateway/internal/pkg/validate"
)

type SendCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type VerifyCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Code        string `json:"code" validate:"required"`
	// RemoteAddr is the inbound connection's address, used as the IP
	// fallback when the public lookup fails.
	RemoteAddr string `json:"-"`
}

// UpstreamCaller is the provider call primitive the flow depends on.
type UpstreamCaller interface {
	Do(ctx context.Context, method, path, token string, body any) (*domain.UpstreamResult, error)
}

// IPResolver yields the client IP to enrich the verify call with.
type IPResolver interface {
	ClientIP(ctx context.Context, extra ...ipaddr.Source) string
}

// Service drives the two-phase SMS login protocol. The provider holds all
// session state for the code; neither step is retried here.
type Service interface {
	SendCode(ctx context.Context, req SendCodeRequest) error
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (token string, err error)
}

type service struct {
	upstream UpstreamCaller
	ips      IPResolver
}

func NewService(upstream UpstreamCaller, ips IPResolver) Service {
	return &service{upstream: upstream, ips: ips}
}

func (s *service) SendCode(ctx context.Context, req SendCodeRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}

	res, err := s.upstream.Do(ctx, http.MethodPost, whatsdish.PathSMSTrigger, "", map[string]string{
		"to": req.PhoneNumber,
	})
	if err != nil {
		return fmt.Errorf("sms trigger: %w", domain.ErrUpstreamUnavailable)
	}
	if !res.OK() {
		slog.Warn("sms trigger rejected", "status", res.StatusCode)
		return fmt.Errorf("sms trigger: status %d: %w", res.StatusCode, domain.ErrUpstreamUnavailable)
	}
	// The trigger endpoint's payload is not meaningful to the client; the
	// handler answers with a generic confirmation.
	return nil
}

func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}

	clientIP := s.ips.ClientIP(ctx, ipaddr.RemoteAddr(req.RemoteAddr))

	res, err := s.upstream.Do(ctx, http.MethodPost, whatsdish.PathSMSVerify, "", map[string]string{
		"to":   req.PhoneNumber,
		"code": req.Code,
		"Ip":   clientIP,
		"lang": "en",
	})
	if err != nil {
		return "", fmt.Errorf("sms verify: %w", domain.ErrUpstreamUnavailable)
	}
	if !res.OK() {
		// Provider diagnostics are not surfaced to the end client.
		slog.Info("verification rejected", "status", res.StatusCode)
		return "", domain.ErrInvalidCode
	}

	token := gjson.GetBytes(res.Body, "result.token").String()
	if token == "" {
		return "", fmt.Errorf("provider accepted verify but issued no token: %w", domain.ErrVerificationIncomplete)
	}
	return token, nil
}
