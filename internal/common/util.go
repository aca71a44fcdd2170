package common

import (
	"crypto/rand"
	"encoding/hex"
)

// SessionTokenSize is the number of random bytes behind a session token.
const SessionTokenSize = 32

// MakeRandHexString returns size random bytes encoded as hex, so the result
// is 2*size characters long. It fails only if the system RNG fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewSessionToken generates a fresh opaque session token.
func NewSessionToken() (string, error) {
	return MakeRandHexString(SessionTokenSize)
}

// GenerateRandByteArray returns size bytes from crypto/rand.
// It panics if the system RNG fails.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b in place. Use it for passwords read from the terminal.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
