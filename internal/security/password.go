// Package security wraps password hashing behind a small, fail-closed API.
package security

import "github.com/matthewhartstonge/argon2"

// Hasher hashes and verifies passwords with argon2id. Each hash embeds its
// own random salt, so hashing the same password twice yields different
// encodings.
type Hasher struct {
	config argon2.Config
}

// NewHasher returns a Hasher with the RFC-recommended argon2id parameters.
func NewHasher() Hasher {
	return Hasher{config: argon2.DefaultConfig()}
}

// NewHasherWithConfig returns a Hasher with custom cost parameters, for
// deployments that need to trade latency against brute-force resistance.
func NewHasherWithConfig(cfg argon2.Config) Hasher {
	return Hasher{config: cfg}
}

// Hash returns the encoded argon2id hash of the password.
func (h Hasher) Hash(password string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Verify reports whether the password matches the encoded hash. Comparison
// is constant-time, and any decoding or internal error counts as a mismatch.
func (h Hasher) Verify(password, encoded string) bool {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encoded))
	if err != nil {
		return false
	}
	return ok
}
