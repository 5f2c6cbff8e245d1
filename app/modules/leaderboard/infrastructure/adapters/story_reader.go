// Package leaderboardadapters bridges the other modules' repositories into
// the reader interfaces the scoring pipeline consumes.
package leaderboardadapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
)

// StoryReader adapts the story repository for score collection.
type StoryReader struct {
	repo storydb.Repository
}

// NewStoryReader creates a StoryReader over the story repository.
func NewStoryReader(repo storydb.Repository) *StoryReader {
	return &StoryReader{repo: repo}
}

// SnapshotsByAuthor converts the author's stories, drafts included, into
// scoring snapshots.
func (r *StoryReader) SnapshotsByAuthor(ctx context.Context, authorID uuid.UUID) ([]leaderboarddomain.StorySnapshot, error) {
	stories, err := r.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list author stories: %w", err)
	}

	snapshots := make([]leaderboarddomain.StorySnapshot, 0, len(stories))
	for i := range stories {
		story := &stories[i]
		snapshots = append(snapshots, leaderboarddomain.StorySnapshot{
			ID:          story.ID,
			Published:   story.IsPublished(),
			Featured:    story.Settings.Featured,
			Views:       story.Stats.Views,
			Likes:       story.Stats.Likes,
			Comments:    story.Stats.Comments,
			Shares:      story.Stats.Shares,
			Rating:      story.Rating(),
			PublishedAt: story.PublishedAt,
		})
	}
	return snapshots, nil
}

// AuthorsWithPublished lists the authors the cleanup sweep keeps active.
func (r *StoryReader) AuthorsWithPublished(ctx context.Context) ([]uuid.UUID, error) {
	return r.repo.AuthorsWithPublished(ctx)
}
