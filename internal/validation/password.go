package validation

import (
	"strings"
)

// ValidatePassword validates password strength.
// Minimum 8 characters, maximum 72 bytes (bcrypt truncates beyond that),
// and a short denylist of common patterns.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fail("password must be at least 8 characters")
	}

	if len(password) > 72 {
		return fail("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "12345678", "qwerty", "letmein", "welcome",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return fail("password is too common, please choose a stronger one")
		}
	}

	return nil
}
