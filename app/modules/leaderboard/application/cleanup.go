package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// CleanupInactive deactivates entries whose user currently has no published
// stories. Scores, badges, and rank history survive; only the active flag
// flips, so a future publish restores the entry in place.
func (s *LeaderboardService) CleanupInactive(ctx context.Context) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "CleanupInactive", uuid.Nil, func(ctx context.Context) (results.OperationResult, error) {
		authors, err := s.stories.AuthorsWithPublished(ctx)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to list publishing authors: %w", err)
		}

		deactivated, err := s.repo.DeactivateWhereNotIn(ctx, authors)
		if err != nil {
			return results.OperationResult{}, err
		}

		return results.SuccessResult(CleanupCompleted{
			Deactivated: deactivated,
			SweptAt:     s.now(),
		}), nil
	})
}
