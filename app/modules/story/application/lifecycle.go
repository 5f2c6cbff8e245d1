package storyservice

import (
	"context"

	"github.com/google/uuid"

	storyevents "github.com/storyweave/storyweave-backend/app/modules/story/events"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// PublishStory transitions a draft to published and emits story.published
// after the commit.
func (s *StoryService) PublishStory(ctx context.Context, storyID, editorID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "PublishStory", storyID, func(ctx context.Context) (results.OperationResult, error) {
		story, err := s.repo.GetByID(ctx, storyID)
		if err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}
		if story.AuthorID != editorID {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: storydb.ErrNotAuthor.Error()}), storydb.ErrNotAuthor
		}
		if story.IsPublished() {
			// Publishing twice is a no-op, not an error.
			return results.SuccessResult(StorySaved{Story: story}), nil
		}

		if err := s.repo.Publish(ctx, story); err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}

		s.publishEvent(ctx, storyevents.StoryPublished, storyevents.StoryPublishedPayload{
			StoryID:     story.ID,
			AuthorID:    story.AuthorID,
			PublishedAt: story.PublishedAt,
		})

		return results.SuccessResult(StorySaved{Story: story}), nil
	})
}

// UnpublishStory returns a published story to draft and emits
// story.unpublished after the commit.
func (s *StoryService) UnpublishStory(ctx context.Context, storyID, editorID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "UnpublishStory", storyID, func(ctx context.Context) (results.OperationResult, error) {
		story, err := s.repo.GetByID(ctx, storyID)
		if err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}
		if story.AuthorID != editorID {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: storydb.ErrNotAuthor.Error()}), storydb.ErrNotAuthor
		}
		if !story.IsPublished() {
			return results.SuccessResult(StorySaved{Story: story}), nil
		}

		if err := s.repo.Unpublish(ctx, story); err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}

		s.publishEvent(ctx, storyevents.StoryUnpublished, storyevents.StoryUnpublishedPayload{
			StoryID:  story.ID,
			AuthorID: story.AuthorID,
		})

		return results.SuccessResult(StorySaved{Story: story}), nil
	})
}
