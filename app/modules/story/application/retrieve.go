package storyservice

import (
	"context"

	"github.com/google/uuid"

	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetBySlug returns a story by its public slug.
func (s *StoryService) GetBySlug(ctx context.Context, slug string) (*storydb.Story, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// ListPublished returns a page of published stories, newest first.
func (s *StoryService) ListPublished(ctx context.Context, limit, offset int) ([]storydb.Story, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListPublished(ctx, limit, offset)
}

// ListByAuthor returns all of an author's stories regardless of state.
func (s *StoryService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]storydb.Story, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}
