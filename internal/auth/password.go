package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing any of them invalidates every stored hash.
const (
	hashTime    = 1
	hashMemory  = 64 * 1024
	hashThreads = 4
	hashKeyLen  = 32
	saltPrefix  = "bookcourier:"
)

var ErrPasswordRequired = errors.New("password is required")

// HashPassword derives the hash stored in courier.password_hash. The same
// courier id and password always give the same hash.
func HashPassword(courierID, password string) string {
	salt := sha256.Sum256([]byte(saltPrefix + courierID))
	key := argon2.IDKey([]byte(password), salt[:16], hashTime, hashMemory, hashThreads, hashKeyLen)
	return hex.EncodeToString(key)
}

// GenerateCSRFSecret creates a random 32-byte secret for CSRF token signing.
func GenerateCSRFSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}
