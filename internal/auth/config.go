// Package auth gates the admin surface behind a shared password and a
// signed session cookie.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Config holds authentication configuration.
type Config struct {
	// AdminPassword is the shared admin password, compared in constant time.
	// Ignored when AdminPasswordHash is set.
	AdminPassword string
	// AdminPasswordHash is an optional bcrypt hash of the admin password.
	AdminPasswordHash string
	// SessionSecret signs session cookies. Generated per process when unset,
	// which invalidates sessions across restarts.
	SessionSecret string
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	return Config{
		AdminPassword:     os.Getenv("GTT_ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("GTT_ADMIN_PASSWORD_HASH"),
		SessionSecret:     os.Getenv("GTT_SESSION_SECRET"),
	}
}

// CheckPassword reports whether the given password matches the configured
// admin credential. A config with neither password nor hash rejects
// everything.
func (c Config) CheckPassword(password string) bool {
	if c.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.AdminPasswordHash), []byte(password)) == nil
	}
	if c.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.AdminPassword), []byte(password)) == 1
}

// HashPassword returns a bcrypt hash suitable for GTT_ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (c Config) sessionSecret() ([]byte, error) {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret), nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating session secret: %w", err)
	}
	return []byte(hex.EncodeToString(b)), nil
}
