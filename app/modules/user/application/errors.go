package userservice

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned for login attempts with a wrong password
// or unknown account. The same error covers both so responses cannot be used
// to probe for registered emails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError marks input that fails business validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
