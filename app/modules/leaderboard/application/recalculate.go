package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// RecalculateScore rebuilds the user's full metrics snapshot from current
// story and follower data and persists all score dimensions in one write.
// Running it twice against unchanged inputs yields identical scores.
func (s *LeaderboardService) RecalculateScore(ctx context.Context, userID uuid.UUID, reason string) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "RecalculateScore", userID, func(ctx context.Context) (results.OperationResult, error) {
		outcome, err := s.recalculate(ctx, userID, reason)
		if err != nil {
			return recalcFailure(userID, err)
		}
		return results.SuccessResult(*outcome), nil
	})
}

// recalcFailure shapes a recalculation error into a failure payload. An
// unknown user is terminal, so no error is returned for it and the message is
// not redelivered.
func recalcFailure(userID uuid.UUID, err error) (results.OperationResult, error) {
	failure := results.FailureResult(ScoreRecalculationFailed{UserID: userID, Reason: err.Error()})
	if errors.Is(err, ErrUnknownUser) {
		return failure, nil
	}
	return failure, err
}

// recalculate is the shared scoring pipeline. Callers that need to adjust the
// entry's lifecycle around a recalculation use it directly.
func (s *LeaderboardService) recalculate(ctx context.Context, userID uuid.UUID, reason string) (*ScoreRecalculated, error) {
	known, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	if !known {
		return nil, ErrUnknownUser
	}

	entry, err := s.repo.CreateIfAbsent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure leaderboard entry: %w", err)
	}

	stories, err := s.stories.SnapshotsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load story snapshots: %w", err)
	}

	followers, err := s.users.FollowerCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load follower count: %w", err)
	}

	now := s.now()
	metrics := leaderboarddomain.CollectMetrics(stories, followers)
	scores := leaderboarddomain.ComputeScores(metrics)

	entry.Metrics = metrics
	entry.TotalScore = scores.Total
	entry.StoryScore = scores.Story
	entry.EngagementScore = scores.Engagement
	entry.QualityScore = scores.Quality
	entry.WeeklyScore = leaderboarddomain.WindowedEngagementScore(stories, leaderboarddomain.WeeklyWindow, now)
	entry.MonthlyScore = leaderboarddomain.WindowedEngagementScore(stories, leaderboarddomain.MonthlyWindow, now)
	entry.LastCalculatedAt = now
	entry.LastActivityAt = now

	if err := s.repo.UpdateScores(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist scores: %w", err)
	}

	s.logger.DebugContext(ctx, "Recalculated leaderboard scores",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", userID),
		attr.String("reason", reason),
		attr.Float64("total_score", scores.Total),
		attr.Int("published_stories", metrics.PublishedStories),
	)

	return &ScoreRecalculated{
		UserID:       userID,
		Scores:       scores,
		WeeklyScore:  entry.WeeklyScore,
		MonthlyScore: entry.MonthlyScore,
		Metrics:      metrics,
		Reason:       reason,
		CalculatedAt: now,
	}, nil
}

// deactivateIfNoPublished flips the entry inactive when the last recalculation
// left the user without published stories. Returns true when it deactivated.
func (s *LeaderboardService) deactivateIfNoPublished(ctx context.Context, userID uuid.UUID, metrics leaderboarddomain.EntryMetrics) (bool, error) {
	if metrics.PublishedStories > 0 {
		return false, nil
	}
	if err := s.repo.SetActive(ctx, userID, false); err != nil {
		if errors.Is(err, leaderboarddb.ErrEntryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to deactivate entry: %w", err)
	}
	return true, nil
}
