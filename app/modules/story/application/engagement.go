package storyservice

import (
	"context"

	"github.com/google/uuid"

	storyevents "github.com/storyweave/storyweave-backend/app/modules/story/events"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// ToggleLike records or retracts a reader's like. A like replaces any standing
// dislike from the same reader.
func (s *StoryService) ToggleLike(ctx context.Context, storyID, readerID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ToggleLike", storyID, func(ctx context.Context) (results.OperationResult, error) {
		return s.toggleReaction(ctx, storyID, readerID, "like")
	})
}

// ToggleDislike records or retracts a reader's dislike, displacing a standing
// like.
func (s *StoryService) ToggleDislike(ctx context.Context, storyID, readerID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "ToggleDislike", storyID, func(ctx context.Context) (results.OperationResult, error) {
		return s.toggleReaction(ctx, storyID, readerID, "dislike")
	})
}

func (s *StoryService) toggleReaction(ctx context.Context, storyID, readerID uuid.UUID, kind string) (results.OperationResult, error) {
	story, err := s.repo.GetByID(ctx, storyID)
	if err != nil {
		return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
	}

	undone := applyReaction(story, readerID, kind)

	if err := s.repo.UpdateEngagement(ctx, story); err != nil {
		return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
	}

	if story.IsPublished() {
		s.publishEvent(ctx, storyevents.StoryEngagementUpdated, storyevents.StoryEngagementUpdatedPayload{
			StoryID:  story.ID,
			AuthorID: story.AuthorID,
			Kind:     kind,
		})
	}

	return results.SuccessResult(EngagementChanged{Story: story, Kind: kind, Undone: undone}), nil
}

// applyReaction mutates the story's reaction sets and counters in memory.
// Returns true when the toggle retracted an existing reaction.
func applyReaction(story *storydb.Story, readerID uuid.UUID, kind string) bool {
	liked := storyIndexRemove(&story.LikedBy, readerID)
	disliked := storyIndexRemove(&story.DislikedBy, readerID)

	switch kind {
	case "like":
		if liked {
			story.Stats.Likes--
			return true
		}
		if disliked {
			story.Stats.Dislikes--
		}
		story.LikedBy = append(story.LikedBy, readerID)
		story.Stats.Likes++
	case "dislike":
		if disliked {
			story.Stats.Dislikes--
			return true
		}
		if liked {
			story.Stats.Likes--
		}
		story.DislikedBy = append(story.DislikedBy, readerID)
		story.Stats.Dislikes++
	}
	return false
}

func storyIndexRemove(ids *[]uuid.UUID, target uuid.UUID) bool {
	for i, id := range *ids {
		if id == target {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return true
		}
	}
	return false
}

// RecordView bumps the view counter unless the author is reading their own
// story.
func (s *StoryService) RecordView(ctx context.Context, storyID uuid.UUID, viewerID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "RecordView", storyID, func(ctx context.Context) (results.OperationResult, error) {
		story, err := s.repo.GetByID(ctx, storyID)
		if err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}
		if viewerID != uuid.Nil && viewerID == story.AuthorID {
			return results.SuccessResult(EngagementChanged{Story: story, Kind: "view", Undone: true}), nil
		}

		if err := s.repo.IncrementViews(ctx, storyID); err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}
		story.Stats.Views++

		if story.IsPublished() {
			s.publishEvent(ctx, storyevents.StoryEngagementUpdated, storyevents.StoryEngagementUpdatedPayload{
				StoryID:  story.ID,
				AuthorID: story.AuthorID,
				Kind:     "view",
			})
		}
		return results.SuccessResult(EngagementChanged{Story: story, Kind: "view"}), nil
	})
}
