// Package leaderboardevents defines the topics and payloads emitted by the
// leaderboard module.
package leaderboardevents

import (
	"time"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
)

const (
	ScoreUpdated      = "leaderboard.score.updated"
	ScoreUpdateFailed = "leaderboard.score.update.failed"
	EntryDeactivated  = "leaderboard.entry.deactivated"
	EntryReactivated  = "leaderboard.entry.reactivated"
	RankingsUpdated   = "leaderboard.rankings.updated"
	BadgeAwarded      = "leaderboard.badge.awarded"
)

// ScoreUpdatedPayload reports a successful per-user recalculation.
type ScoreUpdatedPayload struct {
	UserID       uuid.UUID `json:"user_id"`
	TotalScore   float64   `json:"total_score"`
	WeeklyScore  float64   `json:"weekly_score"`
	MonthlyScore float64   `json:"monthly_score"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// ScoreUpdateFailedPayload reports a failed per-user recalculation. Consumers
// log it; the triggering content action has already succeeded.
type ScoreUpdateFailedPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Reason string    `json:"reason"`
}

// EntryDeactivatedPayload reports an entry hidden because its author has no
// published stories left.
type EntryDeactivatedPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// EntryReactivatedPayload reports an entry made visible again after a publish.
type EntryReactivatedPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// RankingsUpdatedPayload reports a completed batch ranking pass.
type RankingsUpdatedPayload struct {
	EntriesRanked int       `json:"entries_ranked"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BadgeAwardedPayload reports a badge awarded to a user's entry.
type BadgeAwardedPayload struct {
	UserID uuid.UUID               `json:"user_id"`
	Badge  leaderboarddomain.Badge `json:"badge"`
}
