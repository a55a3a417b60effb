// Package security provides one-way credential hashing.
package security

import "github.com/matthewhartstonge/argon2"

// Hasher hashes and verifies account secrets. Verification is constant-time;
// callers must not distinguish a bad secret from an unknown account.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encodedHash string) (bool, error)
}

type argon2Hasher struct {
	config argon2.Config
}

// NewArgon2Hasher creates a Hasher backed by argon2id with the library defaults.
func NewArgon2Hasher() Hasher {
	return &argon2Hasher{config: argon2.DefaultConfig()}
}

func (h *argon2Hasher) Hash(secret string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(secret))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

func (h *argon2Hasher) Verify(secret, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(secret), []byte(encodedHash))
}
