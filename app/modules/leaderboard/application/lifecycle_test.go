package leaderboardservice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
)

func TestHandleStoryPublished(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	oneStory := &FakeStoryReader{
		SnapshotsByAuthorFunc: func(_ context.Context, _ uuid.UUID) ([]leaderboarddomain.StorySnapshot, error) {
			return []leaderboarddomain.StorySnapshot{
				{ID: uuid.New(), Published: true, Views: 10, PublishedAt: now.Add(-time.Hour)},
			}, nil
		},
	}

	t.Run("creates entry and scores a new author", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, oneStory, &FakeUserReader{})

		result, err := svc.HandleStoryPublished(ctx, authorID)
		if err != nil {
			t.Fatalf("HandleStoryPublished: %v", err)
		}
		outcome := result.Success.(ScoreRecalculated)
		if outcome.Reactivated {
			t.Error("fresh entry should not report reactivation")
		}
		entry := repo.Entry(authorID)
		if entry == nil || !entry.IsActive {
			t.Fatalf("expected active entry, got %+v", entry)
		}
		if entry.TotalScore <= 0 {
			t.Errorf("expected positive score, got %v", entry.TotalScore)
		}
	})

	t.Run("reactivates a dormant entry before scoring", func(t *testing.T) {
		repo := NewFakeRepository()
		if _, err := repo.CreateIfAbsent(ctx, authorID); err != nil {
			t.Fatal(err)
		}
		if err := repo.SetActive(ctx, authorID, false); err != nil {
			t.Fatal(err)
		}
		svc := newTestService(repo, oneStory, &FakeUserReader{})

		result, err := svc.HandleStoryPublished(ctx, authorID)
		if err != nil {
			t.Fatalf("HandleStoryPublished: %v", err)
		}
		if !result.Success.(ScoreRecalculated).Reactivated {
			t.Error("expected reactivation flag")
		}
		if !repo.Entry(authorID).IsActive {
			t.Error("entry should be active again")
		}
	})
}

func TestHandleStoryRemoved(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("deactivates when the last published story goes away", func(t *testing.T) {
		repo := NewFakeRepository()
		if _, err := repo.CreateIfAbsent(ctx, authorID); err != nil {
			t.Fatal(err)
		}
		// Only a draft remains after the removal.
		stories := &FakeStoryReader{
			SnapshotsByAuthorFunc: func(_ context.Context, _ uuid.UUID) ([]leaderboarddomain.StorySnapshot, error) {
				return []leaderboarddomain.StorySnapshot{{ID: uuid.New()}}, nil
			},
		}
		svc := newTestService(repo, stories, &FakeUserReader{})

		result, err := svc.HandleStoryRemoved(ctx, authorID, true)
		if err != nil {
			t.Fatalf("HandleStoryRemoved: %v", err)
		}
		outcome := result.Success.(ScoreRecalculated)
		if !outcome.Deactivated {
			t.Error("expected deactivation")
		}
		entry := repo.Entry(authorID)
		if entry.IsActive {
			t.Error("entry should be inactive")
		}
		// Deactivation preserves the recorded scores and metrics.
		if entry.Metrics.TotalStories != 1 {
			t.Errorf("metrics lost on deactivation: %+v", entry.Metrics)
		}
	})

	t.Run("keeps the entry active while published stories remain", func(t *testing.T) {
		repo := NewFakeRepository()
		if _, err := repo.CreateIfAbsent(ctx, authorID); err != nil {
			t.Fatal(err)
		}
		stories := &FakeStoryReader{
			SnapshotsByAuthorFunc: func(_ context.Context, _ uuid.UUID) ([]leaderboarddomain.StorySnapshot, error) {
				return []leaderboarddomain.StorySnapshot{
					{ID: uuid.New(), Published: true, Views: 5, PublishedAt: time.Now().Add(-time.Hour)},
				}, nil
			},
		}
		svc := newTestService(repo, stories, &FakeUserReader{})

		result, err := svc.HandleStoryRemoved(ctx, authorID, true)
		if err != nil {
			t.Fatalf("HandleStoryRemoved: %v", err)
		}
		if result.Success.(ScoreRecalculated).Deactivated {
			t.Error("should not deactivate with published stories left")
		}
		if !repo.Entry(authorID).IsActive {
			t.Error("entry should remain active")
		}
	})
}

func TestHandleUserLifecycle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("registration provisions a zero-score entry", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, &FakeStoryReader{}, &FakeUserReader{})

		result, err := svc.HandleUserRegistered(ctx, userID)
		if err != nil {
			t.Fatalf("HandleUserRegistered: %v", err)
		}
		if result.Success.(EntryCreated).UserID != userID {
			t.Error("wrong user in success payload")
		}
		entry := repo.Entry(userID)
		if entry == nil || entry.TotalScore != 0 || !entry.IsActive {
			t.Fatalf("expected active zero-score entry, got %+v", entry)
		}
	})

	t.Run("registration is idempotent", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, &FakeStoryReader{}, &FakeUserReader{})

		if _, err := svc.HandleUserRegistered(ctx, userID); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.HandleUserRegistered(ctx, userID); err != nil {
			t.Fatalf("duplicate registration should not error: %v", err)
		}
	})

	t.Run("deletion removes the entry", func(t *testing.T) {
		repo := NewFakeRepository()
		if _, err := repo.CreateIfAbsent(ctx, userID); err != nil {
			t.Fatal(err)
		}
		svc := newTestService(repo, &FakeStoryReader{}, &FakeUserReader{})

		if _, err := svc.HandleUserDeleted(ctx, userID); err != nil {
			t.Fatalf("HandleUserDeleted: %v", err)
		}
		if repo.Entry(userID) != nil {
			t.Error("entry should be gone")
		}
	})

	t.Run("deleting an unknown user succeeds", func(t *testing.T) {
		repo := NewFakeRepository()
		svc := newTestService(repo, &FakeStoryReader{}, &FakeUserReader{})

		if _, err := svc.HandleUserDeleted(ctx, uuid.New()); err != nil {
			t.Fatalf("HandleUserDeleted: %v", err)
		}
	})
}
