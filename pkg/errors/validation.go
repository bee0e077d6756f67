package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// dateKeyRegex matches ISO calendar day keys (YYYY-MM-DD).
var dateKeyRegex = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

// ValidateDate validates a calendar day key as used by lesson records.
// Keys must be ISO dates (2026-10-14); no time or zone component is allowed
// because all times are already day-local.
func ValidateDate(key string) error {
	if key == "" {
		return New(ErrCodeInvalidDate, "date cannot be empty")
	}
	if !dateKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidDate, "invalid date key: %q (want YYYY-MM-DD)", key)
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a cache backend URL.
// Only redis:// and rediss:// schemes are accepted.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "URL must use redis or rediss scheme")
	}
	return nil
}
