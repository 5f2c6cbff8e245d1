package leaderboardhandlers

import (
	"context"

	storyevents "github.com/storyweave/storyweave-backend/app/modules/story/events"
	userevents "github.com/storyweave/storyweave-backend/app/modules/user/events"
	"github.com/storyweave/storyweave-backend/app/shared/handlerwrapper"
)

// Handlers is the set of inbound event handlers the leaderboard registers.
type Handlers interface {
	HandleStoryPublished(ctx context.Context, payload *storyevents.StoryPublishedPayload) ([]handlerwrapper.Result, error)
	HandleStoryUnpublished(ctx context.Context, payload *storyevents.StoryUnpublishedPayload) ([]handlerwrapper.Result, error)
	HandleStoryDeleted(ctx context.Context, payload *storyevents.StoryDeletedPayload) ([]handlerwrapper.Result, error)
	HandleStoryEngagementUpdated(ctx context.Context, payload *storyevents.StoryEngagementUpdatedPayload) ([]handlerwrapper.Result, error)
	HandleUserRegistered(ctx context.Context, payload *userevents.UserRegisteredPayload) ([]handlerwrapper.Result, error)
	HandleUserFollowed(ctx context.Context, payload *userevents.UserFollowedPayload) ([]handlerwrapper.Result, error)
	HandleUserDeleted(ctx context.Context, payload *userevents.UserDeletedPayload) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*LeaderboardHandlers)(nil)
