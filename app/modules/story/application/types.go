package storyservice

import (
	"github.com/google/uuid"

	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
)

// CreateStoryInput carries the author-supplied fields for a new story.
type CreateStoryInput struct {
	AuthorID uuid.UUID
	Title    string
	Content  string
	Excerpt  string
	Category string
	Tags     []string
	Mature   bool
}

// UpdateStoryInput carries the editable fields.
type UpdateStoryInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Category      *string
	Tags          []string
	Mature        *bool
	AllowComments *bool
}

// StorySaved is the success payload for create and update operations.
type StorySaved struct {
	Story *storydb.Story `json:"story"`
}

// StoryRemoved is the success payload for deletions.
type StoryRemoved struct {
	StoryID      uuid.UUID `json:"storyId"`
	WasPublished bool      `json:"wasPublished"`
}

// EngagementChanged is the success payload for like/dislike/view toggles.
type EngagementChanged struct {
	Story  *storydb.Story `json:"story"`
	Kind   string         `json:"kind"`
	Undone bool           `json:"undone"`
}

// StoryFailure is the failure payload for story operations.
type StoryFailure struct {
	StoryID uuid.UUID `json:"storyId"`
	Reason  string    `json:"reason"`
}
