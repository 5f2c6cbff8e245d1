package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// GetTopEntries returns a page of the board for a timeframe, annotated with
// 1-based positions derived from the page offset.
func (s *LeaderboardService) GetTopEntries(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]RankedEntry, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.repo.TopN(ctx, tf, limit, offset)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = RankedEntry{
			Position: offset + i + 1,
			Score:    e.ScoreFor(tf),
			Entry:    e,
		}
	}
	return ranked, nil
}

// GetUserRank returns the stored rank snapshot pair plus deltas for a user.
func (s *LeaderboardService) GetUserRank(ctx context.Context, userID uuid.UUID) (*UserRankInfo, error) {
	entry, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserRankInfo{
		UserID:       entry.UserID,
		CurrentRank:  entry.CurrentRank,
		PreviousRank: entry.PreviousRank,
		Delta:        leaderboarddomain.Delta(entry.PreviousRank, entry.CurrentRank),
		Scores: leaderboarddomain.ScoreSet{
			Story:      entry.StoryScore,
			Engagement: entry.EngagementScore,
			Quality:    entry.QualityScore,
			Total:      entry.TotalScore,
		},
		IsActive: entry.IsActive,
	}, nil
}

// GetBadges returns a user's badges and achievements.
func (s *LeaderboardService) GetBadges(ctx context.Context, userID uuid.UUID) ([]leaderboarddomain.Badge, []leaderboarddomain.Achievement, error) {
	entry, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrEntryNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to load badges: %w", err)
	}
	return entry.Badges, entry.Achievements, nil
}

// GetStats returns the aggregate board rollup.
func (s *LeaderboardService) GetStats(ctx context.Context) (*leaderboarddb.BoardStats, error) {
	return s.repo.Stats(ctx)
}
