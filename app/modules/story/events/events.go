// Package storyevents defines the topics and payloads emitted by the story
// module's content lifecycle.
package storyevents

import (
	"time"

	"github.com/google/uuid"
)

const (
	StoryPublished         = "story.published"
	StoryUnpublished       = "story.unpublished"
	StoryDeleted           = "story.deleted"
	StoryEngagementUpdated = "story.engagement.updated"
)

// StoryPublishedPayload is emitted after a story transitions to published.
type StoryPublishedPayload struct {
	StoryID     uuid.UUID `json:"story_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	PublishedAt time.Time `json:"published_at"`
}

// StoryUnpublishedPayload is emitted after a story returns to draft.
type StoryUnpublishedPayload struct {
	StoryID  uuid.UUID `json:"story_id"`
	AuthorID uuid.UUID `json:"author_id"`
}

// StoryDeletedPayload is emitted after a story is removed.
type StoryDeletedPayload struct {
	StoryID      uuid.UUID `json:"story_id"`
	AuthorID     uuid.UUID `json:"author_id"`
	WasPublished bool      `json:"was_published"`
}

// StoryEngagementUpdatedPayload is emitted after a like, dislike, comment, or
// share changes a published story's counters.
type StoryEngagementUpdatedPayload struct {
	StoryID  uuid.UUID `json:"story_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Kind     string    `json:"kind"` // like, dislike, comment, share, view
}
