package leaderboardhandlers

import (
	"context"
	"fmt"

	userevents "github.com/storyweave/storyweave-backend/app/modules/user/events"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/handlerwrapper"
)

// HandleUserRegistered provisions a zero-score entry for the new account.
func (h *LeaderboardHandlers) HandleUserRegistered(ctx context.Context, payload *userevents.UserRegisteredPayload) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Provisioning leaderboard entry for new user",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", payload.UserID),
	)

	if _, err := h.service.HandleUserRegistered(ctx, payload.UserID); err != nil {
		// Retryable: provisioning is idempotent, so redelivery is safe.
		return nil, fmt.Errorf("failed to provision entry: %w", err)
	}
	return nil, nil
}

// HandleUserFollowed rescores the followed author, whose follower count just
// moved.
func (h *LeaderboardHandlers) HandleUserFollowed(ctx context.Context, payload *userevents.UserFollowedPayload) ([]handlerwrapper.Result, error) {
	h.logger.DebugContext(ctx, "Follower count changed, rescoring author",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", payload.FollowedID),
	)

	result, _ := h.service.HandleEngagement(ctx, payload.FollowedID)
	return scoreResults(result), nil
}

// HandleUserDeleted removes the deleted account's entry and history.
func (h *LeaderboardHandlers) HandleUserDeleted(ctx context.Context, payload *userevents.UserDeletedPayload) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Removing leaderboard entry for deleted user",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", payload.UserID),
	)

	if _, err := h.service.HandleUserDeleted(ctx, payload.UserID); err != nil {
		return nil, fmt.Errorf("failed to remove entry: %w", err)
	}
	return nil, nil
}
