package storyservice

import (
	"context"

	"github.com/google/uuid"

	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// Service is the story business logic surface consumed by the HTTP API.
type Service interface {
	CreateStory(ctx context.Context, input CreateStoryInput) (results.OperationResult, error)
	UpdateStory(ctx context.Context, storyID, editorID uuid.UUID, input UpdateStoryInput) (results.OperationResult, error)
	DeleteStory(ctx context.Context, storyID, editorID uuid.UUID) (results.OperationResult, error)

	PublishStory(ctx context.Context, storyID, editorID uuid.UUID) (results.OperationResult, error)
	UnpublishStory(ctx context.Context, storyID, editorID uuid.UUID) (results.OperationResult, error)

	ToggleLike(ctx context.Context, storyID, readerID uuid.UUID) (results.OperationResult, error)
	ToggleDislike(ctx context.Context, storyID, readerID uuid.UUID) (results.OperationResult, error)
	RecordView(ctx context.Context, storyID uuid.UUID, viewerID uuid.UUID) (results.OperationResult, error)

	GetBySlug(ctx context.Context, slug string) (*storydb.Story, error)
	ListPublished(ctx context.Context, limit, offset int) ([]storydb.Story, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]storydb.Story, error)
}
