package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/whatsdish-gateway/internal/application/otp"
	"github.com/whatsdish-gateway/internal/domain"
)

type mockOTPSvc struct{ mock.Mock }

func (m *mockOTPSvc) SendCode(ctx context.Context, req otp.SendCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockOTPSvc) VerifyCode(ctx context.Context, req otp.VerifyCodeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestSendCode_OK(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("SendCode", mock.Anything, otp.SendCodeRequest{PhoneNumber: "+16045551234"}).Return(nil)

	body := bytes.NewBufferString(`{"phoneNumber":"+16045551234"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/send-code", body)
	rr := httptest.NewRecorder()
	NewOTPHandler(svc).SendCode(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Verification code sent!"}`, rr.Body.String())
}

func TestSendCode_MalformedBody(t *testing.T) {
	svc := &mockOTPSvc{}
	req := httptest.NewRequest(http.MethodPost, "/api/send-code", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	NewOTPHandler(svc).SendCode(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "SendCode")
}

func TestSendCode_UpstreamDown(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("SendCode", mock.Anything, mock.Anything).Return(domain.ErrUpstreamUnavailable)

	body := bytes.NewBufferString(`{"phoneNumber":"+1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/send-code", body)
	rr := httptest.NewRecorder()
	NewOTPHandler(svc).SendCode(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"upstream service unavailable"}`, rr.Body.String())
}

func TestVerifyCode_ReturnsTokenEnvelope(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyCode", mock.Anything, mock.MatchedBy(func(req otp.VerifyCodeRequest) bool {
		return req.PhoneNumber == "+16045551234" && req.Code == "123456" && req.RemoteAddr != ""
	})).Return("tok-abc", nil)

	body := bytes.NewBufferString(`{"phoneNumber":"+16045551234","code":"123456"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", body)
	rr := httptest.NewRecorder()
	NewOTPHandler(svc).VerifyCode(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Login successful!","token":"tok-abc"}`, rr.Body.String())
}

func TestVerifyCode_InvalidCode(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyCode", mock.Anything, mock.Anything).Return("", domain.ErrInvalidCode)

	body := bytes.NewBufferString(`{"phoneNumber":"+1","code":"000000"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", body)
	rr := httptest.NewRecorder()
	NewOTPHandler(svc).VerifyCode(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid verification code"}`, rr.Body.String())
}

func TestVerifyCode_NoTokenIssued(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyCode", mock.Anything, mock.Anything).Return("", domain.ErrVerificationIncomplete)

	body := bytes.NewBufferString(`{"phoneNumber":"+1","code":"123456"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", body)
	rr := httptest.NewRecorder()
	NewOTPHandler(svc).VerifyCode(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "error")
}
