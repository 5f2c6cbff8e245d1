package leaderboardservice

import (
	"errors"
	"fmt"
)

// ErrUnknownUser is returned when a recalculation targets a user id that has
// no account, so no ghost entry is created for it.
var ErrUnknownUser = errors.New("user does not exist")

// ValidationError marks input that fails business validation. Handlers turn it
// into a failure payload instead of a retryable error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
