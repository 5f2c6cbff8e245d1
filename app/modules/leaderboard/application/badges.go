package leaderboardservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// AwardBadge grants a named badge to the user. Granting a badge the user
// already holds is a no-op success; the stored collection never changes.
// Validation runs before any read so invalid input cannot touch the entry.
func (s *LeaderboardService) AwardBadge(ctx context.Context, userID uuid.UUID, badge leaderboarddomain.Badge) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "AwardBadge", userID, func(ctx context.Context) (results.OperationResult, error) {
		if strings.TrimSpace(badge.Name) == "" {
			return results.FailureResult(&ValidationError{Field: "name", Reason: "badge name is required"}), nil
		}
		if strings.TrimSpace(badge.Description) == "" {
			return results.FailureResult(&ValidationError{Field: "description", Reason: "badge description is required"}), nil
		}
		if badge.EarnedAt.IsZero() {
			badge.EarnedAt = s.now()
		}

		entry, err := s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to load entry: %w", err)
		}

		ledger := leaderboarddomain.NewBadgeLedger(entry.Badges)
		if !ledger.Add(badge) {
			return results.SuccessResult(BadgeAwarded{UserID: userID, Name: badge.Name, Already: true}), nil
		}

		if err := s.repo.UpdateBadges(ctx, userID, ledger.Badges(), entry.Achievements); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to store badges: %w", err)
		}
		return results.SuccessResult(BadgeAwarded{UserID: userID, Name: badge.Name}), nil
	})
}

// AwardAchievement grants a typed achievement to the user with the same
// dedup and validation semantics as AwardBadge.
func (s *LeaderboardService) AwardAchievement(ctx context.Context, userID uuid.UUID, achievement leaderboarddomain.Achievement) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "AwardAchievement", userID, func(ctx context.Context) (results.OperationResult, error) {
		if strings.TrimSpace(achievement.Type) == "" {
			return results.FailureResult(&ValidationError{Field: "type", Reason: "achievement type is required"}), nil
		}
		if strings.TrimSpace(achievement.Description) == "" {
			return results.FailureResult(&ValidationError{Field: "description", Reason: "achievement description is required"}), nil
		}
		if achievement.UnlockedAt.IsZero() {
			achievement.UnlockedAt = s.now()
		}

		entry, err := s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to load entry: %w", err)
		}

		ledger := leaderboarddomain.NewAchievementLedger(entry.Achievements)
		if !ledger.Add(achievement) {
			return results.SuccessResult(BadgeAwarded{UserID: userID, Name: achievement.Type, Already: true}), nil
		}

		if err := s.repo.UpdateBadges(ctx, userID, entry.Badges, ledger.Achievements()); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to store achievements: %w", err)
		}
		return results.SuccessResult(BadgeAwarded{UserID: userID, Name: achievement.Type}), nil
	})
}
