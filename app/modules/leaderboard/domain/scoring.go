package leaderboarddomain

import "time"

// Scoring weights. These are design constants, not configuration: changing any
// of them breaks score compatibility with persisted entries.
const (
	WeightStoryCount    = 10.0
	WeightFeaturedStory = 50.0

	WeightView     = 0.1
	WeightLike     = 2.0
	WeightComment  = 3.0
	WeightShare    = 5.0
	WeightFollower = 1.0

	WeightLikesRatio      = 1000.0
	WeightCommentsRatio   = 1500.0
	WeightFeaturedQuality = 100.0

	TotalWeightStory      = 0.3
	TotalWeightEngagement = 0.5
	TotalWeightQuality    = 0.2
)

// ComputeScores derives the three sub-scores and the weighted total from a
// metrics snapshot. All inputs are non-negative, so every score is too.
func ComputeScores(m EntryMetrics) ScoreSet {
	story := float64(m.TotalStories)*WeightStoryCount +
		float64(m.FeaturedStories)*WeightFeaturedStory

	engagement := float64(m.TotalViews)*WeightView +
		float64(m.TotalLikes)*WeightLike +
		float64(m.TotalComments)*WeightComment +
		float64(m.TotalShares)*WeightShare +
		float64(m.FollowerCount)*WeightFollower

	quality := m.LikesToViewsRatio*WeightLikesRatio +
		m.CommentsToViewsRatio*WeightCommentsRatio +
		float64(m.FeaturedStories)*WeightFeaturedQuality

	return ScoreSet{
		Story:      story,
		Engagement: engagement,
		Quality:    quality,
		Total: story*TotalWeightStory +
			engagement*TotalWeightEngagement +
			quality*TotalWeightQuality,
	}
}

// WindowedEngagementScore computes the engagement sub-formula over stories
// published within the trailing window ending at now. Follower count is
// excluded: it is not attributable to a publication date.
func WindowedEngagementScore(stories []StorySnapshot, window time.Duration, now time.Time) float64 {
	cutoff := now.Add(-window)

	var score float64
	for _, s := range stories {
		if !s.Published || s.PublishedAt.Before(cutoff) {
			continue
		}
		score += float64(s.Views)*WeightView +
			float64(s.Likes)*WeightLike +
			float64(s.Comments)*WeightComment +
			float64(s.Shares)*WeightShare
	}
	return score
}
