package leaderboarddomain

// CollectMetrics folds an author's story snapshots into a fresh EntryMetrics.
//
// Sums, averages, and ratios are taken over published stories only.
// TotalStories counts every snapshot regardless of state. Averages are 0 when
// the author has no published stories, and ratios are 0 when total views are 0.
func CollectMetrics(stories []StorySnapshot, followerCount int64) EntryMetrics {
	m := EntryMetrics{
		TotalStories:  len(stories),
		FollowerCount: followerCount,
	}

	var ratingSum float64
	for _, s := range stories {
		if !s.Published {
			continue
		}
		m.PublishedStories++
		m.TotalViews += s.Views
		m.TotalLikes += s.Likes
		m.TotalComments += s.Comments
		m.TotalShares += s.Shares
		ratingSum += s.Rating
		if s.Featured {
			m.FeaturedStories++
		}
	}

	if m.PublishedStories > 0 {
		published := float64(m.PublishedStories)
		m.AverageViewsPerStory = float64(m.TotalViews) / published
		m.AverageLikesPerStory = float64(m.TotalLikes) / published
		m.AverageCommentsPerStory = float64(m.TotalComments) / published
		m.AverageRating = ratingSum / published

		if m.TotalViews > 0 {
			m.LikesToViewsRatio = float64(m.TotalLikes) / float64(m.TotalViews)
			m.CommentsToViewsRatio = float64(m.TotalComments) / float64(m.TotalViews)
		}
	}

	return m
}
