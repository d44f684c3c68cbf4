package validation

import (
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

// ValidateUsername checks handle format: 3-30 chars, letters, digits, dots
// and underscores.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return fail("username is required")
	}

	if len(trimmed) < 3 || len(trimmed) > 30 {
		return fail("username must be between 3 and 30 characters")
	}

	if !usernameRe.MatchString(trimmed) {
		return fail("username may only contain letters, digits, dots and underscores")
	}

	return nil
}

// ValidateBio limits profile bios to the column size.
func ValidateBio(bio string) error {
	if len(bio) > 155 {
		return fail("bio is too long (max 155 characters)")
	}
	return nil
}

// ValidateProfileStatus accepts the two account statuses.
func ValidateProfileStatus(status string) error {
	if status != "open" && status != "private" {
		return failf("invalid profile status: %s", status)
	}
	return nil
}
