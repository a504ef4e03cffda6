package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
	}{
		{name: "complex password", password: "StrongPassword123!"},
		{name: "passphrase", password: "correct horse battery"},
		{name: "hyphenated passphrase", password: "correct-horse-battery"},
		{name: "too short", password: "Short1!", errMsg: "at least 12 characters"},
		{name: "missing uppercase", password: "lowercase123!", errMsg: "uppercase"},
		{name: "missing lowercase", password: "UPPERCASE123!", errMsg: "lowercase"},
		{name: "missing number", password: "NoNumbersHere!", errMsg: "number"},
		{name: "missing special", password: "NoSpecial1234", errMsg: "special"},
		{name: "single long word", password: "correcthorsebatterystaple", errMsg: "two words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestValidatePasswordCountsRunes(t *testing.T) {
	// 11 runes in 15 bytes
	assert.ErrorContains(t, ValidatePassword("Añoñoño1!ñx"), "at least 12")
}
