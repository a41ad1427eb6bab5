package usecase

import "errors"

// Failure taxonomy of the authentication flows. Handlers match these with
// errors.Is and map them onto HTTP statuses; anything else is treated as a
// storage failure and never leaks internals to the caller.
var (
	ErrInvalidIdentifier    = errors.New("identifier must be an email or a phone number")
	ErrIdentifierNotFound   = errors.New("identifier not found")
	ErrInvalidCredentials   = errors.New("incorrect login or password")
	ErrAccountPending       = errors.New("account awaiting validation")
	ErrAccountInactive      = errors.New("inactive account, contact the administrator")
	ErrPhoneAlreadyUsed     = errors.New("phone number already registered")
	ErrEmailAlreadyUsed     = errors.New("email already in use")
	ErrOldPasswordIncorrect = errors.New("old password incorrect")
	ErrSessionUserNotFound  = errors.New("user not found, please sign in again")
	ErrCodeInvalid          = errors.New("verification code invalid")
	ErrCodeExpired          = errors.New("verification code expired")
)
