package service

import (
	"fmt"
	"strings"
)

// ValidationError carries a user-facing message; handlers translate it to 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// validateMinLength checks that value (trimmed) is at least min characters.
// The field name is used in the error message as-is.
func validateMinLength(field, value string, min int) error {
	if len(strings.TrimSpace(value)) < min {
		return ValidationError(fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	return nil
}
