package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrHashingUnavailable aborts authentication operations when no shared
// secret is configured. Proceeding would silently weaken every stored
// credential, so callers treat this as fatal rather than falling back.
var ErrHashingUnavailable = errors.New("password hashing unavailable: shared secret not configured")

// Hash returns the lowercase hex SHA-256 digest of secret + ":" + salt.
// Deterministic, no side effects.
func Hash(secret, salt string) string {
	sum := sha256.Sum256([]byte(secret + ":" + salt))
	return hex.EncodeToString(sum[:])
}

// Hasher derives per-account salts from the shared secret.
type Hasher struct {
	sharedSecret string
}

// NewHasher builds a Hasher. An empty secret is allowed here; operations on
// the zero-secret Hasher fail with ErrHashingUnavailable.
func NewHasher(sharedSecret string) *Hasher {
	return &Hasher{sharedSecret: sharedSecret}
}

// Salt returns the per-account salt for a normalized username.
func (h *Hasher) Salt(username string) string {
	return h.sharedSecret + ":" + username
}

// LegacySalt is the older username-less salt form, checked as a login
// fallback so pre-migration records keep verifying.
func (h *Hasher) LegacySalt() string {
	return h.sharedSecret
}

// HashPassword hashes a password with the current per-account scheme.
func (h *Hasher) HashPassword(password, username string) (string, error) {
	if h.sharedSecret == "" {
		return "", ErrHashingUnavailable
	}
	return Hash(password, h.Salt(username)), nil
}

// Verify checks a password against a stored hash under the current scheme.
func (h *Hasher) Verify(password, username, storedHash string) (bool, error) {
	if h.sharedSecret == "" {
		return false, ErrHashingUnavailable
	}
	return Hash(password, h.Salt(username)) == storedHash, nil
}

// VerifyLegacy checks a password against a stored hash under the legacy
// saltless-username scheme.
func (h *Hasher) VerifyLegacy(password, storedHash string) (bool, error) {
	if h.sharedSecret == "" {
		return false, ErrHashingUnavailable
	}
	return Hash(password, h.LegacySalt()) == storedHash, nil
}
