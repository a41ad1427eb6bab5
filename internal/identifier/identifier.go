// Package identifier classifies raw login identifiers as emails or phone
// numbers. It is a pure function over its input and performs no I/O.
package identifier

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Kind is the recognised shape of a login identifier.
type Kind string

const (
	KindEmail Kind = "email"
	KindPhone Kind = "phone"
)

// ErrInvalidFormat is returned when the input is neither a valid email
// address nor an E.164 phone number.
var ErrInvalidFormat = errors.New("identifier must be an email or a phone number")

var validate = validator.New()

// Classify reports whether the identifier is an email or a phone number.
// Phone numbers must carry their country code (+225...).
func Classify(s string) (Kind, error) {
	if validate.Var(s, "required,email") == nil {
		return KindEmail, nil
	}
	if validate.Var(s, "required,e164") == nil {
		return KindPhone, nil
	}
	return "", ErrInvalidFormat
}
