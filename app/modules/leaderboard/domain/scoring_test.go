package leaderboarddomain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestComputeScores(t *testing.T) {
	t.Run("reference scenario", func(t *testing.T) {
		// 3 published stories: views [100,50,0], likes [10,5,0], comments
		// [2,1,0], one featured, 20 followers.
		stories := []StorySnapshot{
			{ID: uuid.New(), Published: true, Views: 100, Likes: 10, Comments: 2, Featured: true},
			{ID: uuid.New(), Published: true, Views: 50, Likes: 5, Comments: 1},
			{ID: uuid.New(), Published: true},
		}

		m := CollectMetrics(stories, 20)
		s := ComputeScores(m)

		if s.Story != 80 {
			t.Errorf("expected storyScore 80, got %v", s.Story)
		}
		if s.Engagement != 74 {
			t.Errorf("expected engagementScore 74, got %v", s.Engagement)
		}
		if s.Quality != 230 {
			t.Errorf("expected qualityScore 230, got %v", s.Quality)
		}
		if s.Total != 107 {
			t.Errorf("expected totalScore 107, got %v", s.Total)
		}
	})

	t.Run("zero metrics yield zero scores", func(t *testing.T) {
		s := ComputeScores(EntryMetrics{})
		if s.Story != 0 || s.Engagement != 0 || s.Quality != 0 || s.Total != 0 {
			t.Errorf("expected all zero scores, got %+v", s)
		}
	})

	t.Run("total score is monotone in each input", func(t *testing.T) {
		base := EntryMetrics{
			TotalStories:         3,
			PublishedStories:     3,
			TotalViews:           150,
			TotalLikes:           15,
			TotalComments:        3,
			TotalShares:          2,
			FollowerCount:        20,
			FeaturedStories:      1,
			LikesToViewsRatio:    0.1,
			CommentsToViewsRatio: 0.02,
		}
		baseline := ComputeScores(base).Total

		bumps := map[string]EntryMetrics{
			"totalStories":    func(m EntryMetrics) EntryMetrics { m.TotalStories++; return m }(base),
			"featuredStories": func(m EntryMetrics) EntryMetrics { m.FeaturedStories++; return m }(base),
			"totalViews":      func(m EntryMetrics) EntryMetrics { m.TotalViews++; return m }(base),
			"totalLikes":      func(m EntryMetrics) EntryMetrics { m.TotalLikes++; return m }(base),
			"totalComments":   func(m EntryMetrics) EntryMetrics { m.TotalComments++; return m }(base),
			"totalShares":     func(m EntryMetrics) EntryMetrics { m.TotalShares++; return m }(base),
			"followerCount":   func(m EntryMetrics) EntryMetrics { m.FollowerCount++; return m }(base),
		}
		for field, bumped := range bumps {
			if got := ComputeScores(bumped).Total; got < baseline {
				t.Errorf("total score decreased when %s increased: %v -> %v", field, baseline, got)
			}
		}
	})

	t.Run("scores are never negative or NaN", func(t *testing.T) {
		s := ComputeScores(CollectMetrics(nil, 0))
		for name, v := range map[string]float64{"story": s.Story, "engagement": s.Engagement, "quality": s.Quality, "total": s.Total} {
			if v < 0 || math.IsNaN(v) {
				t.Errorf("%s score invalid: %v", name, v)
			}
		}
	})
}

func TestWindowedEngagementScore(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	stories := []StorySnapshot{
		{ID: uuid.New(), Published: true, Views: 100, Likes: 10, PublishedAt: now.Add(-2 * 24 * time.Hour)},
		{ID: uuid.New(), Published: true, Views: 200, Likes: 20, PublishedAt: now.Add(-8 * 24 * time.Hour)},
		{ID: uuid.New(), Published: true, Views: 400, Likes: 40, PublishedAt: now.Add(-40 * 24 * time.Hour)},
		{ID: uuid.New(), Published: false, Views: 1000, PublishedAt: now},
	}

	weekly := WindowedEngagementScore(stories, WeeklyWindow, now)
	if weekly != 100*0.1+10*2 {
		t.Errorf("expected weekly score 30, got %v", weekly)
	}

	// The 8-day-old story falls inside the monthly window but not the weekly.
	monthly := WindowedEngagementScore(stories, MonthlyWindow, now)
	if monthly != (100*0.1+10*2)+(200*0.1+20*2) {
		t.Errorf("expected monthly score 90, got %v", monthly)
	}
}
