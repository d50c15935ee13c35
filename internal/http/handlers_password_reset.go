package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/codekids/academy-api/internal/service"
)

// PasswordResetHandlers serves the password reset request endpoint.
type PasswordResetHandlers struct {
	resets *service.PasswordResetService
	logger *slog.Logger
}

// NewPasswordResetHandlers constructs PasswordResetHandlers.
func NewPasswordResetHandlers(resets *service.PasswordResetService, logger *slog.Logger) *PasswordResetHandlers {
	return &PasswordResetHandlers{resets: resets, logger: logger}
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// Request asks for a reset token by email. The 202 response is identical
// whether or not the address has an account. Over-budget requesters get a
// 429 with a Retry-After header.
func (h *PasswordResetHandlers) Request(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_email", Err: errors.New("email is required")})
		return
	}

	res, err := h.resets.Request(r.Context(), req.Email, ClientIP(r))
	if err != nil {
		h.logger.Error("password reset request", slog.Any("error", err))
		writeInternalError(w)
		return
	}

	if res.RateLimited {
		retryAfter := int(res.RetryIn.Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		WriteError(w, ErrorParams{
			Code:    http.StatusTooManyRequests,
			ErrCode: "rate_limited",
			Err:     errors.New("too many reset requests, try again later"),
		})
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]string{
		"message": "If that address has an account, a reset message is on its way.",
	})
}
