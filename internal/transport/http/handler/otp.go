package handler

import (
	"encoding/json"
	"net/http"

	"github.com/whatsdish-gateway/internal/application/otp"
)

// OTPHandler handles the two-phase SMS login endpoints.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

func (h *OTPHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req otp.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SendCode(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Verification code sent!"})
}

func (h *OTPHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req otp.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.RemoteAddr = r.RemoteAddr

	token, err := h.svc.VerifyCode(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{Message: "Login successful!", Token: token})
}
