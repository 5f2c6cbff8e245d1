package leaderboardhandlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	leaderboardservice "github.com/storyweave/storyweave-backend/app/modules/leaderboard/application"
	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// FakeService provides a programmable stub for the leaderboard service.
type FakeService struct {
	trace []string

	RecalculateScoreFunc     func(ctx context.Context, userID uuid.UUID, reason string) (results.OperationResult, error)
	HandleStoryPublishedFunc func(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error)
	HandleStoryRemovedFunc   func(ctx context.Context, authorID uuid.UUID, wasPublished bool) (results.OperationResult, error)
	HandleEngagementFunc     func(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error)
	HandleUserRegisteredFunc func(ctx context.Context, userID uuid.UUID) (results.OperationResult, error)
	HandleUserDeletedFunc    func(ctx context.Context, userID uuid.UUID) (results.OperationResult, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) RecalculateScore(ctx context.Context, userID uuid.UUID, reason string) (results.OperationResult, error) {
	f.record("RecalculateScore")
	if f.RecalculateScoreFunc != nil {
		return f.RecalculateScoreFunc(ctx, userID, reason)
	}
	return results.SuccessResult(leaderboardservice.ScoreRecalculated{UserID: userID}), nil
}

func (f *FakeService) HandleStoryPublished(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error) {
	f.record("HandleStoryPublished")
	if f.HandleStoryPublishedFunc != nil {
		return f.HandleStoryPublishedFunc(ctx, authorID)
	}
	return results.SuccessResult(leaderboardservice.ScoreRecalculated{UserID: authorID}), nil
}

func (f *FakeService) HandleStoryRemoved(ctx context.Context, authorID uuid.UUID, wasPublished bool) (results.OperationResult, error) {
	f.record("HandleStoryRemoved")
	if f.HandleStoryRemovedFunc != nil {
		return f.HandleStoryRemovedFunc(ctx, authorID, wasPublished)
	}
	return results.SuccessResult(leaderboardservice.ScoreRecalculated{UserID: authorID}), nil
}

func (f *FakeService) HandleEngagement(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error) {
	f.record("HandleEngagement")
	if f.HandleEngagementFunc != nil {
		return f.HandleEngagementFunc(ctx, authorID)
	}
	return results.SuccessResult(leaderboardservice.ScoreRecalculated{UserID: authorID}), nil
}

func (f *FakeService) HandleUserRegistered(ctx context.Context, userID uuid.UUID) (results.OperationResult, error) {
	f.record("HandleUserRegistered")
	if f.HandleUserRegisteredFunc != nil {
		return f.HandleUserRegisteredFunc(ctx, userID)
	}
	return results.SuccessResult(leaderboardservice.EntryCreated{UserID: userID}), nil
}

func (f *FakeService) HandleUserDeleted(ctx context.Context, userID uuid.UUID) (results.OperationResult, error) {
	f.record("HandleUserDeleted")
	if f.HandleUserDeletedFunc != nil {
		return f.HandleUserDeletedFunc(ctx, userID)
	}
	return results.SuccessResult(leaderboardservice.EntryDeleted{UserID: userID}), nil
}

func (f *FakeService) UpdateRankings(ctx context.Context) (results.OperationResult, error) {
	f.record("UpdateRankings")
	return results.SuccessResult(leaderboardservice.RankingsUpdated{}), nil
}

func (f *FakeService) CleanupInactive(ctx context.Context) (results.OperationResult, error) {
	f.record("CleanupInactive")
	return results.SuccessResult(leaderboardservice.CleanupCompleted{}), nil
}

func (f *FakeService) AwardBadge(ctx context.Context, userID uuid.UUID, badge leaderboarddomain.Badge) (results.OperationResult, error) {
	f.record("AwardBadge")
	return results.SuccessResult(leaderboardservice.BadgeAwarded{UserID: userID, Name: badge.Name}), nil
}

func (f *FakeService) AwardAchievement(ctx context.Context, userID uuid.UUID, achievement leaderboarddomain.Achievement) (results.OperationResult, error) {
	f.record("AwardAchievement")
	return results.SuccessResult(leaderboardservice.BadgeAwarded{UserID: userID, Name: achievement.Type}), nil
}

func (f *FakeService) GetTopEntries(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]leaderboardservice.RankedEntry, error) {
	f.record("GetTopEntries")
	return nil, nil
}

func (f *FakeService) GetUserRank(ctx context.Context, userID uuid.UUID) (*leaderboardservice.UserRankInfo, error) {
	f.record("GetUserRank")
	return &leaderboardservice.UserRankInfo{UserID: userID}, nil
}

func (f *FakeService) GetBadges(ctx context.Context, userID uuid.UUID) ([]leaderboarddomain.Badge, []leaderboarddomain.Achievement, error) {
	f.record("GetBadges")
	return nil, nil, nil
}

func (f *FakeService) GetStats(ctx context.Context) (*leaderboarddb.BoardStats, error) {
	f.record("GetStats")
	return &leaderboarddb.BoardStats{}, nil
}

func (f *FakeService) ExportXLSX(ctx context.Context, tf leaderboarddomain.Timeframe, limit int) ([]byte, error) {
	f.record("ExportXLSX")
	return nil, nil
}

func (f *FakeService) RenderRankChart(ctx context.Context, userID uuid.UUID, tf leaderboarddomain.Timeframe, since time.Time) ([]byte, error) {
	f.record("RenderRankChart")
	return nil, nil
}

var _ leaderboardservice.Service = (*FakeService)(nil)

func newTestHandlers(svc *FakeService) *LeaderboardHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLeaderboardHandlers(svc, logger)
}
