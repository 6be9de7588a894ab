package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const saltSize = 16

// PasswordHasher derives password hashes as HMAC-SHA256(key, password+salt).
type PasswordHasher struct {
	key []byte
}

func NewPasswordHasher(key string) *PasswordHasher {
	return &PasswordHasher{key: []byte(key)}
}

// NewSalt returns a random hex encoded salt.
func (h *PasswordHasher) NewSalt() (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

func (h *PasswordHasher) Hash(password, salt string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(password + salt))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time.
func (h *PasswordHasher) Verify(password, salt, hash string) bool {
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(password + salt))
	return hmac.Equal(mac.Sum(nil), expected)
}
