package leaderboarddb

import (
	"context"
	"time"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
)

// Repository handles database operations for leaderboard entries.
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Entry, error)
	CreateIfAbsent(ctx context.Context, userID uuid.UUID) (*Entry, error)
	UpdateScores(ctx context.Context, entry *Entry) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	Delete(ctx context.Context, userID uuid.UUID) error
	ListActive(ctx context.Context) ([]Entry, error)
	TopN(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]Entry, error)
	CountActive(ctx context.Context) (int64, error)
	UpdateRanks(ctx context.Context, userID uuid.UUID, current, previous leaderboarddomain.Rank) error
	UpdateBadges(ctx context.Context, userID uuid.UUID, badges []leaderboarddomain.Badge, achievements []leaderboarddomain.Achievement) error
	DeactivateWhereNotIn(ctx context.Context, activeAuthorIDs []uuid.UUID) (int64, error)
	AppendRankHistory(ctx context.Context, records []RankHistory) error
	GetRankHistory(ctx context.Context, userID uuid.UUID, tf leaderboarddomain.Timeframe, since time.Time) ([]RankHistory, error)
	Stats(ctx context.Context) (*BoardStats, error)
}
