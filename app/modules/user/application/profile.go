package userservice

import (
	"context"

	"github.com/google/uuid"

	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// GetProfile returns the account joined with its leaderboard standing. A user
// who has never scored simply has no rank block.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "GetProfile", userID, func(ctx context.Context) (results.OperationResult, error) {
		user, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return results.FailureResult(UserFailure{UserID: userID, Reason: err.Error()}), err
		}

		profile := Profile{User: user}
		if s.ranks != nil {
			rank, err := s.ranks.RankSummary(ctx, userID)
			if err != nil {
				// The profile is still useful without a rank block.
				s.logger.WarnContext(ctx, "Failed to load leaderboard standing for profile",
					attr.ExtractCorrelationID(ctx),
					attr.UserID("user_id", userID),
					attr.Error(err),
				)
			} else {
				profile.Rank = rank
			}
		}

		return results.SuccessResult(profile), nil
	})
}
