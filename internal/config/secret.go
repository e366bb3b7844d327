package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// SecretConfig hashes and verifies API client secrets
type SecretConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewSecretConfig reads BCRYPT_COST (default 12) and SECRET_PEPPER
func NewSecretConfig() (*SecretConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	cfg := &SecretConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("SECRET_PEPPER"),
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be %d-14)", cfg.BcryptCost, bcrypt.MinCost)
	}
	return cfg, nil
}

// Hash returns the bcrypt hash of secret
func (c *SecretConfig) Hash(secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("secret is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether secret matches storedHash
func (c *SecretConfig) Verify(secret, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secret+c.Pepper)) == nil
}
