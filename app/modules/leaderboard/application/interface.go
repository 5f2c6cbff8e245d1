package leaderboardservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// Service is the leaderboard business logic surface consumed by the event
// handlers, the queue workers, and the HTTP API.
type Service interface {
	RecalculateScore(ctx context.Context, userID uuid.UUID, reason string) (results.OperationResult, error)

	HandleStoryPublished(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error)
	HandleStoryRemoved(ctx context.Context, authorID uuid.UUID, wasPublished bool) (results.OperationResult, error)
	HandleEngagement(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error)
	HandleUserRegistered(ctx context.Context, userID uuid.UUID) (results.OperationResult, error)
	HandleUserDeleted(ctx context.Context, userID uuid.UUID) (results.OperationResult, error)

	UpdateRankings(ctx context.Context) (results.OperationResult, error)
	CleanupInactive(ctx context.Context) (results.OperationResult, error)

	AwardBadge(ctx context.Context, userID uuid.UUID, badge leaderboarddomain.Badge) (results.OperationResult, error)
	AwardAchievement(ctx context.Context, userID uuid.UUID, achievement leaderboarddomain.Achievement) (results.OperationResult, error)

	GetTopEntries(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]RankedEntry, error)
	GetUserRank(ctx context.Context, userID uuid.UUID) (*UserRankInfo, error)
	GetBadges(ctx context.Context, userID uuid.UUID) ([]leaderboarddomain.Badge, []leaderboarddomain.Achievement, error)
	GetStats(ctx context.Context) (*leaderboarddb.BoardStats, error)

	ExportXLSX(ctx context.Context, tf leaderboarddomain.Timeframe, limit int) ([]byte, error)
	RenderRankChart(ctx context.Context, userID uuid.UUID, tf leaderboarddomain.Timeframe, since time.Time) ([]byte, error)
}
