package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// HandleStoryPublished ensures the author has an active entry, then rescores.
// Reactivation happens before scoring so a previously idle author re-enters
// the board even if the recalculation fails afterwards.
func (s *LeaderboardService) HandleStoryPublished(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "HandleStoryPublished", authorID, func(ctx context.Context) (results.OperationResult, error) {
		if _, err := s.repo.CreateIfAbsent(ctx, authorID); err != nil {
			return results.FailureResult(ScoreRecalculationFailed{UserID: authorID, Reason: err.Error()}),
				fmt.Errorf("failed to ensure entry: %w", err)
		}

		reactivated := false
		entry, err := s.repo.GetByUserID(ctx, authorID)
		if err == nil && !entry.IsActive {
			if err := s.repo.SetActive(ctx, authorID, true); err != nil {
				return results.FailureResult(ScoreRecalculationFailed{UserID: authorID, Reason: err.Error()}),
					fmt.Errorf("failed to reactivate entry: %w", err)
			}
			reactivated = true
		}

		outcome, err := s.recalculate(ctx, authorID, "story_published")
		if err != nil {
			return recalcFailure(authorID, err)
		}
		outcome.Reactivated = reactivated
		return results.SuccessResult(*outcome), nil
	})
}

// HandleStoryRemoved rescores after an unpublish or delete. When the author no
// longer has any published stories the entry is deactivated; its scores and
// history are kept.
func (s *LeaderboardService) HandleStoryRemoved(ctx context.Context, authorID uuid.UUID, wasPublished bool) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "HandleStoryRemoved", authorID, func(ctx context.Context) (results.OperationResult, error) {
		if !wasPublished {
			// Draft removal never changes published aggregates beyond the
			// story count, but the count is part of the story score.
			s.logger.DebugContext(ctx, "Rescoring after draft removal",
				attr.ExtractCorrelationID(ctx),
				attr.UserID("user_id", authorID))
		}

		outcome, err := s.recalculate(ctx, authorID, "story_removed")
		if err != nil {
			return recalcFailure(authorID, err)
		}

		deactivated, err := s.deactivateIfNoPublished(ctx, authorID, outcome.Metrics)
		if err != nil {
			return results.FailureResult(ScoreRecalculationFailed{UserID: authorID, Reason: err.Error()}), err
		}
		outcome.Deactivated = deactivated
		return results.SuccessResult(*outcome), nil
	})
}

// HandleEngagement rescores after a view, like, comment, share, or follow
// change lands on one of the author's stories.
func (s *LeaderboardService) HandleEngagement(ctx context.Context, authorID uuid.UUID) (results.OperationResult, error) {
	return s.RecalculateScore(ctx, authorID, "engagement")
}

// HandleUserRegistered provisions a zero-score entry so the user appears on
// the board immediately.
func (s *LeaderboardService) HandleUserRegistered(ctx context.Context, userID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "HandleUserRegistered", userID, func(ctx context.Context) (results.OperationResult, error) {
		if _, err := s.repo.CreateIfAbsent(ctx, userID); err != nil {
			return results.FailureResult(ScoreRecalculationFailed{UserID: userID, Reason: err.Error()}),
				fmt.Errorf("failed to create entry: %w", err)
		}
		return results.SuccessResult(EntryCreated{UserID: userID}), nil
	})
}

// HandleUserDeleted removes the user's entry and rank history outright.
func (s *LeaderboardService) HandleUserDeleted(ctx context.Context, userID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "HandleUserDeleted", userID, func(ctx context.Context) (results.OperationResult, error) {
		if err := s.repo.Delete(ctx, userID); err != nil {
			if errors.Is(err, leaderboarddb.ErrEntryNotFound) {
				return results.SuccessResult(EntryDeleted{UserID: userID}), nil
			}
			return results.FailureResult(ScoreRecalculationFailed{UserID: userID, Reason: err.Error()}),
				fmt.Errorf("failed to delete entry: %w", err)
		}
		return results.SuccessResult(EntryDeleted{UserID: userID}), nil
	})
}
