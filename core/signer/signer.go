// Package signer produces and verifies keyed integrity codes for short
// string values such as cookie payloads.
//
// Signed values have the form "<base64url(value)>.<base64url(hmac)>". Each
// configured secret is stretched into a dedicated HMAC-SHA256 key with HKDF,
// values are signed with the first secret and verified against all of them,
// which allows key rotation.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 32
	keyLength       = 32
	separator       = "."
	hkdfInfo        = "respkit/signer/v1"
)

// Signer signs and verifies values. The zero value has no keys and fails every call.
type Signer struct {
	keys [][]byte
}

// New creates a Signer from one or more secrets. Empty secrets are dropped.
func New(secrets ...string) (*Signer, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([][]byte, 0, len(secrets))
	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secret), minSecretLength)
		}
		key, err := deriveKey(secret)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return &Signer{keys: keys}, nil
}

// NewFromConfig creates a Signer from a comma-separated secret list.
func NewFromConfig(cfg Config) (*Signer, error) {
	return New(cfg.parseSecrets()...)
}

func deriveKey(secret string) ([]byte, error) {
	key := make([]byte, keyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return key, nil
}

// Sign returns value with an appended signature.
func (s *Signer) Sign(value string) (string, error) {
	if s == nil || len(s.keys) == 0 {
		return "", ErrNoSecret
	}
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + separator + s.mac(s.keys[0], []byte(value)), nil
}

// Verify checks the signature and returns the original value.
func (s *Signer) Verify(signed string) (string, error) {
	if s == nil || len(s.keys) == 0 {
		return "", ErrNoSecret
	}

	encoded, signature, ok := strings.Cut(signed, separator)
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	valid := slices.ContainsFunc(s.keys, func(key []byte) bool {
		return hmac.Equal([]byte(signature), []byte(s.mac(key, value)))
	})
	if !valid {
		return "", ErrInvalidSignature
	}

	return string(value), nil
}

func (s *Signer) mac(key, value []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write(value)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
