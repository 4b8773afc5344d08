// Package config provides admin API key configuration and verification.
package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// AdminKeyConfig holds the bcrypt hash of the admin API key that guards the
// catalog administration endpoints. The plaintext key is never stored.
type AdminKeyConfig struct {
	KeyHash string
}

// NewAdminKeyConfig reads ADMIN_API_KEY_HASH from the environment. The hash
// is produced with `recommender hash-key` or any bcrypt tool.
func NewAdminKeyConfig() (*AdminKeyConfig, error) {
	hash := os.Getenv("ADMIN_API_KEY_HASH")
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_API_KEY_HASH is required but not set")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("ADMIN_API_KEY_HASH is not a valid bcrypt hash: %v", err)
	}
	return &AdminKeyConfig{KeyHash: hash}, nil
}

// Verify checks a presented API key against the stored hash.
func (c *AdminKeyConfig) Verify(key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.KeyHash), []byte(key)) == nil
}

// HashKey hashes an API key for storage in ADMIN_API_KEY_HASH.
func HashKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}
	return string(hash), nil
}
