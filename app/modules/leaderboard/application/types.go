package leaderboardservice

import (
	"time"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
)

// ScoreRecalculated is the success payload of a recalculation.
type ScoreRecalculated struct {
	UserID       uuid.UUID                      `json:"userId"`
	Scores       leaderboarddomain.ScoreSet     `json:"scores"`
	WeeklyScore  float64                        `json:"weeklyScore"`
	MonthlyScore float64                        `json:"monthlyScore"`
	Metrics      leaderboarddomain.EntryMetrics `json:"metrics"`
	Reason       string                         `json:"reason"`
	CalculatedAt time.Time                      `json:"calculatedAt"`
	Deactivated  bool                           `json:"deactivated"`
	Reactivated  bool                           `json:"reactivated"`
}

// ScoreRecalculationFailed is the failure payload of a recalculation.
type ScoreRecalculationFailed struct {
	UserID uuid.UUID `json:"userId"`
	Reason string    `json:"reason"`
}

// EntryCreated is the success payload when a zero-score entry is provisioned.
type EntryCreated struct {
	UserID uuid.UUID `json:"userId"`
}

// EntryDeleted is the success payload when an entry is removed.
type EntryDeleted struct {
	UserID uuid.UUID `json:"userId"`
}

// RankingsUpdated is the success payload of a batch ranking pass.
type RankingsUpdated struct {
	Entries   int       `json:"entries"`
	Failed    int       `json:"failed"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BadgeAwarded is the success payload of a badge or achievement grant. Already
// is true when the grant was a dedup no-op.
type BadgeAwarded struct {
	UserID  uuid.UUID `json:"userId"`
	Name    string    `json:"name"`
	Already bool      `json:"already"`
}

// CleanupCompleted is the success payload of an inactivity sweep.
type CleanupCompleted struct {
	Deactivated int64     `json:"deactivated"`
	SweptAt     time.Time `json:"sweptAt"`
}

// RankedEntry annotates a stored entry with its 1-based page position along
// the requested timeframe.
type RankedEntry struct {
	Position int                 `json:"position"`
	Score    float64             `json:"score"`
	Entry    leaderboarddb.Entry `json:"entry"`
}

// UserRankInfo is the per-user rank lookup response.
type UserRankInfo struct {
	UserID       uuid.UUID                  `json:"userId"`
	CurrentRank  leaderboarddomain.Rank     `json:"currentRank"`
	PreviousRank leaderboarddomain.Rank     `json:"previousRank"`
	Delta        leaderboarddomain.Rank     `json:"delta"`
	Scores       leaderboarddomain.ScoreSet `json:"scores"`
	IsActive     bool                       `json:"isActive"`
}
