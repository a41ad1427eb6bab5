package handler

// SignInRequest is the payload of POST /auth/signin/identifier.
type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// SignUpRequest is the payload of POST /auth/signup/create_account. The
// password confirmation gate lives here, before the orchestrator runs.
type SignUpRequest struct {
	Name            string `json:"name"             validate:"required"`
	Gender          string `json:"gender"`
	Email           string `json:"email"            validate:"omitempty,email"`
	Phone           string `json:"phone"            validate:"required,e164"`
	Password        string `json:"password"         validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// UpdatePasswordRequest is the payload of PUT /auth/me/update_password.
type UpdatePasswordRequest struct {
	OldPassword     string `json:"old_password"     validate:"required"`
	Password        string `json:"password"         validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// IdentifierRequest is the payload of POST /auth/signin/forget_password.
type IdentifierRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// CheckCodeRequest is the payload of POST /auth/signin/check_code.
type CheckCodeRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code"       validate:"required,len=6,numeric"`
}

// ResetPasswordRequest is the payload of POST /auth/signin/reset_password.
type ResetPasswordRequest struct {
	Identifier      string `json:"identifier"       validate:"required"`
	Code            string `json:"code"             validate:"required,len=6,numeric"`
	Password        string `json:"password"         validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}
