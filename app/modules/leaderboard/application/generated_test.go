package leaderboardservice

import (
	"context"
	"testing"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	"github.com/storyweave/storyweave-backend/testutils"
)

// TestRecalculateAndRankGenerated runs the full recalculate-then-rank path
// over a seeded population of authors and checks the invariants that hold for
// any input: non-negative scores, dense positions, and descending score order.
func TestRecalculateAndRankGenerated(t *testing.T) {
	ctx := context.Background()
	gen := testutils.NewTestDataGenerator(42)

	users, byAuthor := gen.GenerateTestData(12, 4)

	snapshots := make(map[uuid.UUID][]leaderboarddomain.StorySnapshot, len(users))
	for authorID, stories := range byAuthor {
		snapshots[authorID] = gen.GenerateSnapshots(stories)
	}

	repo := NewFakeRepository()
	stories := &FakeStoryReader{
		SnapshotsByAuthorFunc: func(_ context.Context, authorID uuid.UUID) ([]leaderboarddomain.StorySnapshot, error) {
			return snapshots[authorID], nil
		},
	}
	readers := &FakeUserReader{
		FollowerCountFunc: func(_ context.Context, _ uuid.UUID) (int64, error) { return 10, nil },
	}
	svc := newTestService(repo, stories, readers)

	for _, u := range users {
		result, err := svc.RecalculateScore(ctx, u.ID, "generated")
		if err != nil {
			t.Fatalf("RecalculateScore(%s): %v", u.ID, err)
		}
		outcome := result.Success.(ScoreRecalculated)
		if outcome.Scores.Total < 0 {
			t.Errorf("user %s total score = %v, want >= 0", u.ID, outcome.Scores.Total)
		}
		if outcome.Metrics.PublishedStories > outcome.Metrics.TotalStories {
			t.Errorf("user %s published %d exceeds total %d",
				u.ID, outcome.Metrics.PublishedStories, outcome.Metrics.TotalStories)
		}
		if outcome.Metrics.TotalStories != len(byAuthor[u.ID]) {
			t.Errorf("user %s totalStories = %d, want %d",
				u.ID, outcome.Metrics.TotalStories, len(byAuthor[u.ID]))
		}
	}

	if _, err := svc.UpdateRankings(ctx); err != nil {
		t.Fatalf("UpdateRankings: %v", err)
	}

	seen := make(map[int]uuid.UUID, len(users))
	for _, u := range users {
		entry := repo.Entry(u.ID)
		pos := entry.CurrentRank.Overall
		if pos < 1 || pos > len(users) {
			t.Fatalf("user %s position %d out of range", u.ID, pos)
		}
		if other, dup := seen[pos]; dup {
			t.Fatalf("position %d assigned to both %s and %s", pos, other, u.ID)
		}
		seen[pos] = u.ID
	}
	for pos := 2; pos <= len(users); pos++ {
		above := repo.Entry(seen[pos-1])
		below := repo.Entry(seen[pos])
		if above.TotalScore < below.TotalScore {
			t.Errorf("position %d score %v ranks above position %d score %v",
				pos-1, above.TotalScore, pos, below.TotalScore)
		}
	}
}
