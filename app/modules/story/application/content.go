package storyservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	storydomain "github.com/storyweave/storyweave-backend/app/modules/story/domain"
	storyevents "github.com/storyweave/storyweave-backend/app/modules/story/events"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

const excerptLength = 200

// CreateStory validates and stores a new draft with derived slug, word count,
// read time, and excerpt.
func (s *StoryService) CreateStory(ctx context.Context, input CreateStoryInput) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "CreateStory", uuid.Nil, func(ctx context.Context) (results.OperationResult, error) {
		if strings.TrimSpace(input.Title) == "" {
			return results.FailureResult(&ValidationError{Field: "title", Reason: "title is required"}), nil
		}
		if strings.TrimSpace(input.Content) == "" {
			return results.FailureResult(&ValidationError{Field: "content", Reason: "content is required"}), nil
		}

		slug, err := s.uniqueSlug(ctx, storydomain.Slugify(input.Title))
		if err != nil {
			return results.OperationResult{}, err
		}

		story := &storydb.Story{
			ID:       uuid.New(),
			AuthorID: input.AuthorID,
			Title:    input.Title,
			Slug:     slug,
			Content:  input.Content,
			Excerpt:  input.Excerpt,
			Category: input.Category,
			Tags:     input.Tags,
			Status:   storydomain.StatusDraft,
			Settings: storydb.StorySettings{Mature: input.Mature, AllowComments: true},
		}
		applyDerivedContent(story)

		if err := s.repo.Create(ctx, story); err != nil {
			return results.FailureResult(StoryFailure{StoryID: story.ID, Reason: err.Error()}), err
		}
		return results.SuccessResult(StorySaved{Story: story}), nil
	})
}

// UpdateStory applies edits to an existing story. Editing the title re-derives
// the slug; editing content re-derives word count, read time, and excerpt.
func (s *StoryService) UpdateStory(ctx context.Context, storyID, editorID uuid.UUID, input UpdateStoryInput) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "UpdateStory", storyID, func(ctx context.Context) (results.OperationResult, error) {
		story, err := s.repo.GetByID(ctx, storyID)
		if err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}
		if story.AuthorID != editorID {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: storydb.ErrNotAuthor.Error()}), storydb.ErrNotAuthor
		}

		if input.Title != nil && *input.Title != story.Title {
			if strings.TrimSpace(*input.Title) == "" {
				return results.FailureResult(&ValidationError{Field: "title", Reason: "title is required"}), nil
			}
			story.Title = *input.Title
			slug, err := s.uniqueSlug(ctx, storydomain.Slugify(story.Title))
			if err != nil {
				return results.OperationResult{}, err
			}
			story.Slug = slug
		}
		if input.Content != nil {
			story.Content = *input.Content
		}
		if input.Excerpt != nil {
			story.Excerpt = *input.Excerpt
		}
		if input.Category != nil {
			story.Category = *input.Category
		}
		if input.Tags != nil {
			story.Tags = input.Tags
		}
		if input.Mature != nil {
			story.Settings.Mature = *input.Mature
		}
		if input.AllowComments != nil {
			story.Settings.AllowComments = *input.AllowComments
		}
		applyDerivedContent(story)

		if err := s.repo.Update(ctx, story); err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}
		return results.SuccessResult(StorySaved{Story: story}), nil
	})
}

// DeleteStory removes a story and notifies the leaderboard when a published
// story disappears.
func (s *StoryService) DeleteStory(ctx context.Context, storyID, editorID uuid.UUID) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "DeleteStory", storyID, func(ctx context.Context) (results.OperationResult, error) {
		story, err := s.repo.GetByID(ctx, storyID)
		if err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}
		if story.AuthorID != editorID {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: storydb.ErrNotAuthor.Error()}), storydb.ErrNotAuthor
		}

		wasPublished := story.IsPublished()
		if err := s.repo.Delete(ctx, storyID); err != nil {
			return results.FailureResult(StoryFailure{StoryID: storyID, Reason: err.Error()}), err
		}

		s.publishEvent(ctx, storyevents.StoryDeleted, storyevents.StoryDeletedPayload{
			StoryID:      storyID,
			AuthorID:     story.AuthorID,
			WasPublished: wasPublished,
		})

		return results.SuccessResult(StoryRemoved{StoryID: storyID, WasPublished: wasPublished}), nil
	})
}

// uniqueSlug finds the first free slug for a base, appending a counter on
// collision.
func (s *StoryService) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "story"
	}
	for counter := 0; ; counter++ {
		candidate := storydomain.UniqueSlug(base, counter)
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug availability: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
}

func applyDerivedContent(story *storydb.Story) {
	story.WordCount = storydomain.WordCount(story.Content)
	story.Stats.ReadTime = storydomain.ReadTime(story.Content)
	if story.Excerpt == "" {
		story.Excerpt = storydomain.Excerpt(story.Content, excerptLength)
	}
}
