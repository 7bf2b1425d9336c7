package user

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/utils"
)

// DefaultLang is the locale given to users who do not choose one.
const DefaultLang = "fr"

// MinPasswordLength is the shortest password accepted at signup or on change.
const MinPasswordLength = 8

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ValidatePassword enforces the password policy: at least eight characters
// with upper case, lower case, a digit and a special character.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > 72 {
		return fmt.Errorf("%w: password must be between 8 and 72 characters", domain.ErrBadRequest)
	}
	if !hasUpper.MatchString(password) ||
		!hasLower.MatchString(password) ||
		!hasDigit.MatchString(password) ||
		!hasSpecial.MatchString(password) {
		return fmt.Errorf(
			"%w: password must contain upper case, lower case, digit and special characters",
			domain.ErrBadRequest,
		)
	}
	return nil
}

// NormalizeEmail lower-cases and trims an email, then checks its syntax.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsEmail(email) {
		return "", fmt.Errorf("%w: invalid email address", domain.ErrBadRequest)
	}
	return email, nil
}
