package validation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPassword = errors.New("invalid password")

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrInvalidPassword)
	}

	// Maximum length: 72 bytes (bcrypt limitation)
	// bcrypt silently truncates passwords longer than 72 bytes
	if len(password) > 72 {
		return fmt.Errorf("%w: must not exceed 72 characters", ErrInvalidPassword)
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("%w: too common, please choose a stronger one", ErrInvalidPassword)
		}
	}

	return nil
}
