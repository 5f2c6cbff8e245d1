package storyservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	storydomain "github.com/storyweave/storyweave-backend/app/modules/story/domain"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
)

// FakeRepository is an in-memory stand-in for the story repository.
type FakeRepository struct {
	stories map[uuid.UUID]*storydb.Story

	SlugExistsFunc func(ctx context.Context, slug string) (bool, error)
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{stories: map[uuid.UUID]*storydb.Story{}}
}

func (f *FakeRepository) Story(id uuid.UUID) *storydb.Story {
	return f.stories[id]
}

func (f *FakeRepository) Create(ctx context.Context, story *storydb.Story) error {
	cp := *story
	f.stories[story.ID] = &cp
	return nil
}

func (f *FakeRepository) Update(ctx context.Context, story *storydb.Story) error {
	if _, ok := f.stories[story.ID]; !ok {
		return storydb.ErrStoryNotFound
	}
	cp := *story
	f.stories[story.ID] = &cp
	return nil
}

func (f *FakeRepository) Delete(ctx context.Context, storyID uuid.UUID) error {
	if _, ok := f.stories[storyID]; !ok {
		return storydb.ErrStoryNotFound
	}
	delete(f.stories, storyID)
	return nil
}

func (f *FakeRepository) GetByID(ctx context.Context, storyID uuid.UUID) (*storydb.Story, error) {
	story, ok := f.stories[storyID]
	if !ok {
		return nil, storydb.ErrStoryNotFound
	}
	cp := *story
	return &cp, nil
}

func (f *FakeRepository) GetBySlug(ctx context.Context, slug string) (*storydb.Story, error) {
	for _, story := range f.stories {
		if story.Slug == slug {
			cp := *story
			return &cp, nil
		}
	}
	return nil, storydb.ErrStoryNotFound
}

func (f *FakeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if f.SlugExistsFunc != nil {
		return f.SlugExistsFunc(ctx, slug)
	}
	for _, story := range f.stories {
		if story.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]storydb.Story, error) {
	var out []storydb.Story
	for _, story := range f.stories {
		if story.AuthorID == authorID {
			out = append(out, *story)
		}
	}
	return out, nil
}

func (f *FakeRepository) ListPublished(ctx context.Context, limit, offset int) ([]storydb.Story, error) {
	var out []storydb.Story
	for _, story := range f.stories {
		if story.IsPublished() {
			out = append(out, *story)
		}
	}
	return out, nil
}

func (f *FakeRepository) Publish(ctx context.Context, story *storydb.Story) error {
	stored, ok := f.stories[story.ID]
	if !ok {
		return storydb.ErrStoryNotFound
	}
	now := time.Now().UTC()
	story.Status = storydomain.StatusPublished
	story.PublishedAt = now
	stored.Status = storydomain.StatusPublished
	stored.PublishedAt = now
	return nil
}

func (f *FakeRepository) Unpublish(ctx context.Context, story *storydb.Story) error {
	stored, ok := f.stories[story.ID]
	if !ok {
		return storydb.ErrStoryNotFound
	}
	story.Status = storydomain.StatusDraft
	story.PublishedAt = time.Time{}
	stored.Status = storydomain.StatusDraft
	stored.PublishedAt = time.Time{}
	return nil
}

func (f *FakeRepository) UpdateEngagement(ctx context.Context, story *storydb.Story) error {
	stored, ok := f.stories[story.ID]
	if !ok {
		return storydb.ErrStoryNotFound
	}
	stored.Stats = story.Stats
	stored.LikedBy = story.LikedBy
	stored.DislikedBy = story.DislikedBy
	return nil
}

func (f *FakeRepository) IncrementViews(ctx context.Context, storyID uuid.UUID) error {
	stored, ok := f.stories[storyID]
	if !ok {
		return storydb.ErrStoryNotFound
	}
	stored.Stats.Views++
	return nil
}

func (f *FakeRepository) AuthorsWithPublished(ctx context.Context) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, story := range f.stories {
		if story.IsPublished() && !seen[story.AuthorID] {
			seen[story.AuthorID] = true
			out = append(out, story.AuthorID)
		}
	}
	return out, nil
}

var _ storydb.Repository = (*FakeRepository)(nil)

// FakeEventBus records published topics.
type FakeEventBus struct {
	published []string
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	f.published = append(f.published, topic)
	return nil
}

func (f *FakeEventBus) Publisher() message.Publisher  { return nil }
func (f *FakeEventBus) Subscriber() message.Subscriber { return nil }
func (f *FakeEventBus) Close() error                  { return nil }

func (f *FakeEventBus) Topics() []string {
	out := make([]string, len(f.published))
	copy(out, f.published)
	return out
}

func newTestService(repo *FakeRepository, bus *FakeEventBus) *StoryService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewStoryService(repo, bus, utils.NewHelpers(), logger, observability.NoOpMetrics(), tracer)
}
