package services

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Admin password requirements
const (
	MinPasswordLength = 12
	// PassphraseLength is the length from which character classes are no
	// longer required.
	PassphraseLength = 20
)

// ValidatePassword checks an admin password before it is hashed.
// Passwords shorter than PassphraseLength need an uppercase letter, a
// lowercase letter, a number and a special character. Longer passphrases
// only need two distinct words.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
		hasSpace   bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsSpace(char):
			hasSpace = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	if n >= PassphraseLength {
		if !hasSpace && !hasSpecial {
			return fmt.Errorf("passphrase must contain at least two words")
		}
		return nil
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
