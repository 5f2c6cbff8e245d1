// Package leaderboarddomain holds the pure scoring, ranking, and badge logic.
// Nothing in this package touches a store.
package leaderboarddomain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Timeframe is an independent ranking dimension.
type Timeframe string

const (
	TimeframeOverall Timeframe = "overall"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Trailing windows for the weekly and monthly score dimensions.
const (
	WeeklyWindow  = 7 * 24 * time.Hour
	MonthlyWindow = 30 * 24 * time.Hour
)

// ParseTimeframe validates a timeframe string. An empty string defaults to
// overall, matching the query-parameter behavior of the public API.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case "":
		return TimeframeOverall, nil
	case TimeframeOverall, TimeframeWeekly, TimeframeMonthly:
		return Timeframe(s), nil
	default:
		return "", fmt.Errorf("invalid timeframe %q", s)
	}
}

// StorySnapshot is the slice of a story the metrics collector consumes.
type StorySnapshot struct {
	ID          uuid.UUID
	Published   bool
	Featured    bool
	Views       int64
	Likes       int64
	Comments    int64
	Shares      int64
	Rating      float64
	PublishedAt time.Time
}

// EntryMetrics is the per-user aggregate snapshot. It is recomputed wholesale
// on every recalculation and reflects the author's currently published stories
// only, except TotalStories which counts every story regardless of state.
type EntryMetrics struct {
	TotalStories     int     `json:"totalStories"`
	PublishedStories int     `json:"publishedStories"`
	TotalViews       int64   `json:"totalViews"`
	TotalLikes       int64   `json:"totalLikes"`
	TotalComments    int64   `json:"totalComments"`
	TotalShares      int64   `json:"totalShares"`
	AverageRating    float64 `json:"averageRating"`
	FollowerCount    int64   `json:"followerCount"`

	AverageViewsPerStory    float64 `json:"averageViewsPerStory"`
	AverageLikesPerStory    float64 `json:"averageLikesPerStory"`
	AverageCommentsPerStory float64 `json:"averageCommentsPerStory"`

	FeaturedStories      int     `json:"featuredStories"`
	LikesToViewsRatio    float64 `json:"likesToViewsRatio"`
	CommentsToViewsRatio float64 `json:"commentsToViewsRatio"`
}

// ScoreSet holds the three sub-scores and the weighted total.
type ScoreSet struct {
	Story      float64
	Engagement float64
	Quality    float64
	Total      float64
}

// Rank holds 1-based positions per ranking dimension; 0 means unranked.
// Category is kept for record-shape compatibility but is never assigned.
type Rank struct {
	Overall  int `json:"overall"`
	Category int `json:"category"`
	Weekly   int `json:"weekly"`
	Monthly  int `json:"monthly"`
}

// For returns the rank position for a timeframe.
func (r Rank) For(tf Timeframe) int {
	switch tf {
	case TimeframeWeekly:
		return r.Weekly
	case TimeframeMonthly:
		return r.Monthly
	default:
		return r.Overall
	}
}

// With returns a copy of r with the timeframe's position replaced.
func (r Rank) With(tf Timeframe, position int) Rank {
	switch tf {
	case TimeframeWeekly:
		r.Weekly = position
	case TimeframeMonthly:
		r.Monthly = position
	default:
		r.Overall = position
	}
	return r
}

// Delta returns previous minus current per dimension, positive meaning the
// entry moved up.
func Delta(previous, current Rank) Rank {
	return Rank{
		Overall:  previous.Overall - current.Overall,
		Category: previous.Category - current.Category,
		Weekly:   previous.Weekly - current.Weekly,
		Monthly:  previous.Monthly - current.Monthly,
	}
}
