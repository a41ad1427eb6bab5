package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/izthiaka/loumaa/internal/token"
	"github.com/izthiaka/loumaa/internal/usecase"
)

// envelope is the uniform response shape: a human-readable message, a status
// mirroring the HTTP code, and an optional payload.
type envelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
}

func (h *AuthHandler) respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{
		Message: message,
		Status:  status,
		Data:    data,
	}); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// fail maps a flow error onto its HTTP status. Unknown errors are logged
// with their original message and collapsed into a generic failure.
func (h *AuthHandler) fail(w http.ResponseWriter, err error) {
	if status, ok := statusFor(err); ok {
		h.respond(w, status, err.Error(), nil)
		return
	}

	h.logger.Error().Err(err).Msg("unexpected error")
	h.respond(w, http.StatusInternalServerError, "something went wrong", nil)
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, usecase.ErrInvalidIdentifier),
		errors.Is(err, usecase.ErrCodeInvalid),
		errors.Is(err, usecase.ErrCodeExpired):
		return http.StatusBadRequest, true
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrOldPasswordIncorrect),
		errors.Is(err, token.ErrInvalidToken):
		return http.StatusUnauthorized, true
	case errors.Is(err, usecase.ErrAccountPending),
		errors.Is(err, usecase.ErrAccountInactive):
		return http.StatusForbidden, true
	case errors.Is(err, usecase.ErrIdentifierNotFound),
		errors.Is(err, usecase.ErrSessionUserNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, usecase.ErrPhoneAlreadyUsed),
		errors.Is(err, usecase.ErrEmailAlreadyUsed):
		return http.StatusConflict, true
	}
	return 0, false
}
