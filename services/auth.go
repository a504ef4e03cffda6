package services

import (
	"crypto/subtle"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

// HashPassword checks password against the admin password policy and
// hashes it using bcrypt
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// VerifyAdminCredentials checks basic-auth credentials against the configured
// admin user and bcrypt hash.
func VerifyAdminCredentials(wantUser, wantHash, user, password string) bool {
	if wantHash == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(wantUser), []byte(user)) == 1
	// Always run bcrypt so a wrong user name costs the same as a wrong password
	passOK := VerifyPassword(wantHash, password)
	return userOK && passOK
}

// LogSecurityEvent logs security-related events
func LogSecurityEvent(eventType, user, details string) {
	log.Printf("[SECURITY] %s | User: %s | Details: %s", eventType, user, details)
}
