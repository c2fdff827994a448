package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

var ErrInvalidPassword = errors.New("invalid admin password")

// HeaderName is the request header carrying the facilitator password.
const HeaderName = "X-Admin-Password"

// CheckAdminPassword validates the provided facilitator password.
// The comparison runs over fixed-length digests so it is constant time
// and does not leak the password length.
func CheckAdminPassword(provided, expected string) error {
	if expected == "" {
		// A blank configured password never authenticates anyone.
		return ErrInvalidPassword
	}

	providedSum := sha256.Sum256([]byte(provided))
	expectedSum := sha256.Sum256([]byte(expected))
	if !hmac.Equal(providedSum[:], expectedSum[:]) {
		return ErrInvalidPassword
	}
	return nil
}
