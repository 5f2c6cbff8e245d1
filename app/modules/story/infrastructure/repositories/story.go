package storydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	storydomain "github.com/storyweave/storyweave-backend/app/modules/story/domain"
)

// RepositoryImpl handles database operations for stories.
type RepositoryImpl struct {
	DB *bun.DB
}

// NewRepository creates a story Repository backed by bun.
func NewRepository(db *bun.DB) *RepositoryImpl {
	return &RepositoryImpl{DB: db}
}

// Create inserts a new story.
func (r *RepositoryImpl) Create(ctx context.Context, story *Story) error {
	now := time.Now().UTC()
	story.CreatedAt = now
	story.UpdatedAt = now
	if _, err := r.DB.NewInsert().Model(story).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

// Update persists editable fields and derived content columns.
func (r *RepositoryImpl) Update(ctx context.Context, story *Story) error {
	story.UpdatedAt = time.Now().UTC()
	res, err := r.DB.NewUpdate().
		Model(story).
		Column("title", "slug", "content", "excerpt", "category", "tags",
			"settings", "word_count", "stats", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// Delete removes a story.
func (r *RepositoryImpl) Delete(ctx context.Context, storyID uuid.UUID) error {
	res, err := r.DB.NewDelete().
		Model((*Story)(nil)).
		Where("id = ?", storyID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// GetByID retrieves a story by its ID.
func (r *RepositoryImpl) GetByID(ctx context.Context, storyID uuid.UUID) (*Story, error) {
	story := new(Story)
	err := r.DB.NewSelect().Model(story).Where("id = ?", storyID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return story, nil
}

// GetBySlug retrieves a story by its slug.
func (r *RepositoryImpl) GetBySlug(ctx context.Context, slug string) (*Story, error) {
	story := new(Story)
	err := r.DB.NewSelect().Model(story).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story by slug: %w", err)
	}
	return story, nil
}

// SlugExists reports whether any story already uses the slug.
func (r *RepositoryImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	exists, err := r.DB.NewSelect().
		Model((*Story)(nil)).
		Where("slug = ?", slug).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// ListByAuthor returns all of an author's stories regardless of state.
func (r *RepositoryImpl) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Story, error) {
	var stories []Story
	err := r.DB.NewSelect().
		Model(&stories).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories by author: %w", err)
	}
	return stories, nil
}

// ListPublished returns a page of published stories, newest first.
func (r *RepositoryImpl) ListPublished(ctx context.Context, limit, offset int) ([]Story, error) {
	var stories []Story
	err := r.DB.NewSelect().
		Model(&stories).
		Where("status = ?", storydomain.StatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published stories: %w", err)
	}
	return stories, nil
}

// Publish transitions a story to published and stamps published_at.
func (r *RepositoryImpl) Publish(ctx context.Context, story *Story) error {
	now := time.Now().UTC()
	story.Status = storydomain.StatusPublished
	story.PublishedAt = now
	story.UpdatedAt = now

	res, err := r.DB.NewUpdate().
		Model(story).
		Column("status", "published_at", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish story: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// Unpublish returns a story to draft and clears published_at.
func (r *RepositoryImpl) Unpublish(ctx context.Context, story *Story) error {
	story.Status = storydomain.StatusDraft
	story.PublishedAt = time.Time{}
	story.UpdatedAt = time.Now().UTC()

	res, err := r.DB.NewUpdate().
		Model(story).
		Column("status", "updated_at").
		Set("published_at = NULL").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unpublish story: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// UpdateEngagement persists the stats and reaction id sets after a toggle.
func (r *RepositoryImpl) UpdateEngagement(ctx context.Context, story *Story) error {
	story.UpdatedAt = time.Now().UTC()
	res, err := r.DB.NewUpdate().
		Model(story).
		Column("stats", "liked_by", "disliked_by", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update engagement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// IncrementViews bumps the view counter inside the stats JSONB atomically.
func (r *RepositoryImpl) IncrementViews(ctx context.Context, storyID uuid.UUID) error {
	res, err := r.DB.NewUpdate().
		Model((*Story)(nil)).
		Set("stats = jsonb_set(stats, '{views}', (COALESCE((stats->>'views')::bigint, 0) + 1)::text::jsonb)").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", storyID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// AuthorsWithPublished returns the distinct authors that currently have at
// least one published story.
func (r *RepositoryImpl) AuthorsWithPublished(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.NewSelect().
		Model((*Story)(nil)).
		ColumnExpr("DISTINCT author_id").
		Where("status = ?", storydomain.StatusPublished).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list publishing authors: %w", err)
	}
	return ids, nil
}
