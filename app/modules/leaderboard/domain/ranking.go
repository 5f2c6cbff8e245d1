package leaderboarddomain

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// ScoredEntry pairs a user with their score for one timeframe.
type ScoredEntry struct {
	UserID uuid.UUID
	Score  float64
}

// RankOrder returns the entries in ranking order: score descending, user ID
// ascending as the deterministic tie-break. The input is not modified.
func RankOrder(entries []ScoredEntry) []ScoredEntry {
	sorted := make([]ScoredEntry, len(entries))
	copy(sorted, entries)

	slices.SortFunc(sorted, func(a, b ScoredEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID.String(), b.UserID.String())
	})

	return sorted
}

// AdvanceRank snapshots the current position for tf into previous, then
// overwrites current with newPosition. Pure and total: callers apply it to
// each entry of a sorted batch, which keeps the copy-then-overwrite ordering
// an entry-local fact a unit test can check without a store.
func AdvanceRank(current, previous Rank, tf Timeframe, newPosition int) (Rank, Rank) {
	previous = previous.With(tf, current.For(tf))
	current = current.With(tf, newPosition)
	return current, previous
}
