package signer

import "errors"

var (
	// ErrNoSecret indicates no usable secret was configured.
	ErrNoSecret = errors.New("no secret provided for signer")

	// ErrSecretTooShort indicates a secret is below the minimum length.
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")

	// ErrInvalidFormat indicates the signed value isn't in "<payload>.<signature>" form.
	ErrInvalidFormat = errors.New("invalid signed value format")

	// ErrInvalidSignature indicates the signature didn't match any configured secret.
	ErrInvalidSignature = errors.New("signature verification failed")
)
