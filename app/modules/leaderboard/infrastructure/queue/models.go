package leaderboardqueue

// RankingJob triggers a batch ranking pass across all active entries.
type RankingJob struct{}

// Kind returns the job type identifier for River.
func (RankingJob) Kind() string { return "leaderboard_ranking" }

// CleanupJob triggers the inactivity sweep.
type CleanupJob struct{}

// Kind returns the job type identifier for River.
func (CleanupJob) Kind() string { return "leaderboard_cleanup" }
