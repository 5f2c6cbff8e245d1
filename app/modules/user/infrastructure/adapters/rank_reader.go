// Package useradapters bridges the leaderboard repository into the profile
// endpoint's rank lookup.
package useradapters

import (
	"context"
	"errors"

	"github.com/google/uuid"

	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	userservice "github.com/storyweave/storyweave-backend/app/modules/user/application"
)

// RankReader reads a user's leaderboard standing for profile responses.
type RankReader struct {
	repo leaderboarddb.Repository
}

// NewRankReader creates a RankReader over the leaderboard repository.
func NewRankReader(repo leaderboarddb.Repository) *RankReader {
	return &RankReader{repo: repo}
}

// RankSummary returns the overall position and total score. Users without an
// entry yield a nil summary, not an error.
func (r *RankReader) RankSummary(ctx context.Context, userID uuid.UUID) (*userservice.RankSummary, error) {
	entry, err := r.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &userservice.RankSummary{
		Position:   entry.CurrentRank.Overall,
		TotalScore: entry.TotalScore,
	}, nil
}

var _ userservice.RankReader = (*RankReader)(nil)
