// Package matricule generates the opaque external codes that identify users
// and roles outside the database.
package matricule

import (
	"crypto/rand"
	"fmt"
)

const (
	alphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultLength = 10
)

// Generate returns a new 10-character code drawn from A-Z0-9. With 36^10
// possible codes, collisions are left to the unique index on the matricule
// field, where the caller retries.
func Generate() (string, error) {
	return WithPrefix("", defaultLength)
}

// WithPrefix generates a code of the given length and prepends the prefix.
func WithPrefix(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("matricule length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("matricule: read random bytes: %w", err)
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}

	return prefix + string(buf), nil
}
