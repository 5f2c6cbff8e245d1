package leaderboardhandlers

import (
	"context"

	storyevents "github.com/storyweave/storyweave-backend/app/modules/story/events"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/handlerwrapper"
)

// HandleStoryPublished rescores the author after a publish.
func (h *LeaderboardHandlers) HandleStoryPublished(ctx context.Context, payload *storyevents.StoryPublishedPayload) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Processing story publish for leaderboard",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("author_id", payload.AuthorID),
		attr.UserID("story_id", payload.StoryID),
	)

	// A scoring failure never nacks the message: the publish it reports on
	// already committed, so the failure becomes an event instead.
	result, _ := h.service.HandleStoryPublished(ctx, payload.AuthorID)
	return scoreResults(result), nil
}

// HandleStoryUnpublished rescores the author after a story returns to draft.
func (h *LeaderboardHandlers) HandleStoryUnpublished(ctx context.Context, payload *storyevents.StoryUnpublishedPayload) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Processing story unpublish for leaderboard",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("author_id", payload.AuthorID),
	)

	result, _ := h.service.HandleStoryRemoved(ctx, payload.AuthorID, true)
	return scoreResults(result), nil
}

// HandleStoryDeleted rescores the author after a story is removed entirely.
func (h *LeaderboardHandlers) HandleStoryDeleted(ctx context.Context, payload *storyevents.StoryDeletedPayload) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Processing story deletion for leaderboard",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("author_id", payload.AuthorID),
		attr.Bool("was_published", payload.WasPublished),
	)

	result, _ := h.service.HandleStoryRemoved(ctx, payload.AuthorID, payload.WasPublished)
	return scoreResults(result), nil
}

// HandleStoryEngagementUpdated rescores the author after a reader interaction.
func (h *LeaderboardHandlers) HandleStoryEngagementUpdated(ctx context.Context, payload *storyevents.StoryEngagementUpdatedPayload) ([]handlerwrapper.Result, error) {
	h.logger.DebugContext(ctx, "Processing engagement update for leaderboard",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("author_id", payload.AuthorID),
		attr.String("kind", payload.Kind),
	)

	result, _ := h.service.HandleEngagement(ctx, payload.AuthorID)
	return scoreResults(result), nil
}
