package leaderboarddb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
)

// Entry is the persisted leaderboard record, one per user.
type Entry struct {
	bun.BaseModel `bun:"table:leaderboard_entries,alias:le"`

	ID     int64     `bun:"id,pk,autoincrement"`
	UserID uuid.UUID `bun:"user_id,type:uuid,notnull,unique"`

	TotalScore      float64 `bun:"total_score,notnull,default:0"`
	StoryScore      float64 `bun:"story_score,notnull,default:0"`
	EngagementScore float64 `bun:"engagement_score,notnull,default:0"`
	QualityScore    float64 `bun:"quality_score,notnull,default:0"`
	WeeklyScore     float64 `bun:"weekly_score,notnull,default:0"`
	MonthlyScore    float64 `bun:"monthly_score,notnull,default:0"`

	Metrics      leaderboarddomain.EntryMetrics  `bun:"metrics,type:jsonb,notnull"`
	CurrentRank  leaderboarddomain.Rank          `bun:"current_rank,type:jsonb,notnull"`
	PreviousRank leaderboarddomain.Rank          `bun:"previous_rank,type:jsonb,notnull"`
	Badges       []leaderboarddomain.Badge       `bun:"badges,type:jsonb"`
	Achievements []leaderboarddomain.Achievement `bun:"achievements,type:jsonb"`

	IsActive bool `bun:"is_active,notnull,default:true"`

	LastCalculatedAt time.Time `bun:"last_calculated_at,nullzero"`
	LastActivityAt   time.Time `bun:"last_activity_at,nullzero"`
	CreatedAt        time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ScoreFor returns the entry's score along the given timeframe.
func (e *Entry) ScoreFor(tf leaderboarddomain.Timeframe) float64 {
	switch tf {
	case leaderboarddomain.TimeframeWeekly:
		return e.WeeklyScore
	case leaderboarddomain.TimeframeMonthly:
		return e.MonthlyScore
	default:
		return e.TotalScore
	}
}

// RankHistory records a user's rank and score per timeframe at each batch
// ranking pass. Feeds the rank chart endpoint.
type RankHistory struct {
	bun.BaseModel `bun:"table:leaderboard_rank_history,alias:rh"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     uuid.UUID `bun:"user_id,type:uuid,notnull"`
	Timeframe  string    `bun:"timeframe,notnull"`
	Position   int       `bun:"position,notnull"`
	Score      float64   `bun:"score,notnull"`
	RecordedAt time.Time `bun:"recorded_at,nullzero,notnull,default:current_timestamp"`
}

// BoardStats is the read-only rollup for the public stats endpoint.
type BoardStats struct {
	TotalParticipants int64 `json:"totalParticipants"`
	// TotalStories counts published stories only.
	TotalStories int64  `json:"totalStories"`
	TotalViews   int64  `json:"totalViews"`
	TopScorer    *Entry `json:"topScorer"`
}
