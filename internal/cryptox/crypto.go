// Package cryptox provides the one-way password hashers used by the auth
// service. The service only depends on the Hasher interface, so the
// algorithm can be switched in configuration without touching core logic.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
	HasherSHA256   = "sha256"
)

// maxArgon2Memory caps the m= parameter (KiB) accepted from a stored hash.
const maxArgon2Memory = 1 << 20

var ErrUnknownHasher = errors.New("unknown password hasher")

// Hasher turns a password into an opaque string and checks a candidate
// password against it.
type Hasher interface {
	Hash(password []byte) (string, error)
	Verify(encoded string, password []byte) bool
}

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch strings.ToLower(name) {
	case HasherArgon2id, "":
		return NewArgon2Hasher(), nil
	case HasherBcrypt:
		return &BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case HasherSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// Argon2Hasher encodes hashes in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// Parameters are read back from the encoded string on Verify, so changing
// them does not invalidate existing hashes.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

func (h *Argon2Hasher) Hash(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(h.SaltLen)
	key := h.deriveKey(password, salt)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// deriveKey stretches password with salt using h's parameters.
func (h *Argon2Hasher) deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, h.Time, h.Memory, h.Threads, h.KeyLen)
}

func (h *Argon2Hasher) Verify(encoded string, password []byte) bool {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != HasherArgon2id {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if threads < 1 || time < 1 || memory > maxArgon2Memory {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}

	candidate := argon2.IDKey(password, salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

type BcryptHasher struct {
	Cost int
}

func (h *BcryptHasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(encoded string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), password) == nil
}

// SHA256Hasher is an unsalted hex SHA-256. It exists to read stores written
// by older versions; do not pick it for new deployments.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password []byte) (string, error) {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:]), nil
}

func (SHA256Hasher) Verify(encoded string, password []byte) bool {
	sum := sha256.Sum256(password)
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(hex.EncodeToString(sum[:]))) == 1
}
