package leaderboarddb

import "errors"

// ErrEntryNotFound is returned when no leaderboard entry exists for a user.
var ErrEntryNotFound = errors.New("leaderboard entry not found")
