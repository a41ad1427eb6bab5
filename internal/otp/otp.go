// Package otp generates the short-lived numeric codes used to authorise
// password resets.
package otp

import (
	"crypto/rand"
	"fmt"
)

// DefaultLength is the number of digits sent to users.
const DefaultLength = 6

// Generate returns a numeric code of the given length. Bytes are drawn from
// crypto/rand and rejection-sampled so every digit is uniform over 0-9.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("otp length must be positive, got %d", length)
	}

	// Largest multiple of 10 that fits in a byte; values at or above it
	// would bias the low digits.
	const limit = 250

	code := make([]byte, 0, length)
	buf := make([]byte, 1)
	for len(code) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("otp: read random bytes: %w", err)
		}
		if buf[0] >= limit {
			continue
		}
		code = append(code, '0'+buf[0]%10)
	}

	return string(code), nil
}
