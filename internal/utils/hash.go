package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters. The digest must be deterministic for a fixed
// password+salt pair, so verification can recompute and compare.
const (
	SaltLength  = 16
	Iterations  = 1
	Memory      = 64 * 1024
	Parallelism = 4
	KeyLength   = 32
)

var ErrHashSecretMissing = errors.New("credential hash secret is not configured")

// Hasher derives password digests keyed by a server-side secret. The secret
// feeds the KDF, so digests from one deployment are useless against another
// even when salts leak.
type Hasher struct {
	secret []byte
}

// NewHasher fails fast when the secret is unset; hashing with an empty key is
// never acceptable.
func NewHasher(secret string) (*Hasher, error) {
	if secret == "" {
		return nil, ErrHashSecretMissing
	}
	return &Hasher{secret: []byte(secret)}, nil
}

// GenerateSalt returns a fresh random salt. A new one is minted on every
// credential creation or rotation and never reused.
func (h *Hasher) GenerateSalt() (string, error) {
	raw := make([]byte, SaltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Hash derives the digest for a password and salt. Identical inputs always
// produce identical output.
func (h *Hasher) Hash(password, salt string) string {
	key := argon2.IDKey(
		[]byte(password+salt),
		h.secret,
		Iterations,
		Memory,
		Parallelism,
		KeyLength,
	)
	return base64.RawStdEncoding.EncodeToString(key)
}

// Verify recomputes the digest and compares in constant time.
func (h *Hasher) Verify(password, salt, digest string) bool {
	computed := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
