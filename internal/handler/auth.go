// Package handler exposes the authentication flows over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/izthiaka/loumaa/internal/usecase"
)

// AuthHandler binds the auth and password usecases to the router.
type AuthHandler struct {
	auth      usecase.AuthUsecase
	passwords usecase.PasswordUsecase
	validate  *validator.Validate
	trans     ut.Translator
	logger    *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	auth usecase.AuthUsecase,
	passwords usecase.PasswordUsecase,
	logger *zerolog.Logger,
) *AuthHandler {
	validate, trans := newValidator()

	return &AuthHandler{
		auth:      auth,
		passwords: passwords,
		validate:  validate,
		trans:     trans,
		logger:    logger,
	}
}

// Routes returns the /auth route tree.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/signin/identifier", h.signIn)
	r.Post("/signup/create_account", h.signUp)
	r.Post("/signin/forget_password", h.forgetPassword)
	r.Post("/signin/check_code", h.checkCode)
	r.Post("/signin/reset_password", h.resetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/me", h.profile)
		r.Post("/me/refresh_token", h.refreshToken)
		r.Put("/me/update_password", h.updatePassword)
		r.Delete("/me/delete_account", h.deleteAccount)
		r.Post("/logout", h.logOut)
	})

	return r
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !h.decode(w, r, &req) {
		return
	}

	pair, err := h.auth.SignIn(r.Context(), usecase.SignInParams{
		Identifier: req.Identifier,
		Password:   req.Password,
		Device:     r.UserAgent(),
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Authentication successful.", pair)
}

func (h *AuthHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.auth.SignUp(r.Context(), usecase.SignUpParams{
		Name:     req.Name,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusCreated, "Successful registration.", map[string]string{
		"matricule": user.Matricule,
	})
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.auth.Profile(r.Context(), userFrom(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Profile recovery successful.", profile)
}

func (h *AuthHandler) refreshToken(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	pair, err := h.auth.RefreshToken(r.Context(), user.Matricule, r.UserAgent())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Token successfully refreshed.", pair)
}

func (h *AuthHandler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.passwords.UpdatePassword(r.Context(), userFrom(r.Context()), req.OldPassword, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Password update successful.", true)
}

func (h *AuthHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.DeleteAccount(r.Context(), userFrom(r.Context())); err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Successful account deletion.", true)
}

func (h *AuthHandler) logOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.LogOut(r.Context(), userFrom(r.Context())); err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Successful logout.", true)
}

func (h *AuthHandler) forgetPassword(w http.ResponseWriter, r *http.Request) {
	var req IdentifierRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.passwords.ForgetPassword(r.Context(), req.Identifier); err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "OTP code sent successfully.", true)
}

func (h *AuthHandler) checkCode(w http.ResponseWriter, r *http.Request) {
	var req CheckCodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.passwords.CheckCode(r.Context(), req.Identifier, req.Code); err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Valid code.", true)
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.passwords.ResetPassword(r.Context(), req.Identifier, req.Code, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusOK, "Password reset successful.", true)
}
