package security

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces bcrypt digests. Digests written by the earlier
// argon2id "salt:hash" scheme and bcrypt digests of any cost still verify;
// they are not upgraded on successful login.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. It never fails loudly:
// unknown or corrupt digests simply do not match.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	if strings.HasPrefix(digest, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
		return err == nil
	}
	return verifyLegacyArgon2(plaintext, digest)
}

// Parameters of the retired argon2id scheme.
const (
	legacyArgonTime    = 1
	legacyArgonMemory  = 64 * 1024
	legacyArgonThreads = 4
	legacyArgonKeyLen  = 32
)

var errLegacyFormat = errors.New("malformed legacy digest")

func verifyLegacyArgon2(plaintext, encoded string) bool {
	salt, expected, err := decodeLegacyArgon2(encoded)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(plaintext), salt, legacyArgonTime, legacyArgonMemory, legacyArgonThreads, legacyArgonKeyLen)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}

func decodeLegacyArgon2(encoded string) (salt, hash []byte, err error) {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return nil, nil, errLegacyFormat
	}

	salt, err = base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, nil, errLegacyFormat
	}

	hash, err = base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil || len(hash) != legacyArgonKeyLen {
		return nil, nil, errLegacyFormat
	}
	return salt, hash, nil
}
