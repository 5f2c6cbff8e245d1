package storydb

import (
	"context"

	"github.com/google/uuid"
)

// Repository handles database operations for stories.
type Repository interface {
	Create(ctx context.Context, story *Story) error
	Update(ctx context.Context, story *Story) error
	Delete(ctx context.Context, storyID uuid.UUID) error
	GetByID(ctx context.Context, storyID uuid.UUID) (*Story, error)
	GetBySlug(ctx context.Context, slug string) (*Story, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Story, error)
	ListPublished(ctx context.Context, limit, offset int) ([]Story, error)
	Publish(ctx context.Context, story *Story) error
	Unpublish(ctx context.Context, story *Story) error
	UpdateEngagement(ctx context.Context, story *Story) error
	IncrementViews(ctx context.Context, storyID uuid.UUID) error
	AuthorsWithPublished(ctx context.Context) ([]uuid.UUID, error)
}
