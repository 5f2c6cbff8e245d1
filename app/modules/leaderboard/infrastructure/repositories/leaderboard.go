package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
)

// RepositoryImpl handles database operations for leaderboard entries.
type RepositoryImpl struct {
	DB *bun.DB
}

// NewRepository creates a leaderboard Repository backed by bun.
func NewRepository(db *bun.DB) *RepositoryImpl {
	return &RepositoryImpl{DB: db}
}

// GetByUserID retrieves the leaderboard entry for a user.
func (r *RepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*Entry, error) {
	entry := new(Entry)
	err := r.DB.NewSelect().
		Model(entry).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}
	return entry, nil
}

// CreateIfAbsent inserts a zero-score entry for the user unless one already
// exists, and returns the stored entry either way.
func (r *RepositoryImpl) CreateIfAbsent(ctx context.Context, userID uuid.UUID) (*Entry, error) {
	now := time.Now().UTC()
	entry := &Entry{
		UserID:         userID,
		IsActive:       true,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := r.DB.NewInsert().
		Model(entry).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil && !isUniqueViolation(err) {
		return nil, fmt.Errorf("failed to create leaderboard entry: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}

// UpdateScores persists all score columns, metrics, and activity timestamps in
// a single UPDATE so that concurrent recalculations cannot interleave partial
// score sets.
func (r *RepositoryImpl) UpdateScores(ctx context.Context, entry *Entry) error {
	entry.UpdatedAt = time.Now().UTC()
	res, err := r.DB.NewUpdate().
		Model(entry).
		Column("total_score", "story_score", "engagement_score", "quality_score",
			"weekly_score", "monthly_score", "metrics",
			"last_calculated_at", "last_activity_at", "updated_at").
		Where("user_id = ?", entry.UserID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update leaderboard scores: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// SetActive flips the entry's active flag.
func (r *RepositoryImpl) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	res, err := r.DB.NewUpdate().
		Model((*Entry)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set leaderboard entry active=%t: %w", active, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete removes the entry and its rank history.
func (r *RepositoryImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NewDelete().
		Model((*RankHistory)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete rank history: %w", err)
	}

	if _, err := tx.NewDelete().
		Model((*Entry)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete leaderboard entry: %w", err)
	}

	return tx.Commit()
}

// ListActive returns every active entry, ordered for deterministic batch
// processing.
func (r *RepositoryImpl) ListActive(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := r.DB.NewSelect().
		Model(&entries).
		Where("is_active = ?", true).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active leaderboard entries: %w", err)
	}
	return entries, nil
}

// TopN returns a page of active entries ordered by the timeframe's score
// descending, with user_id ascending as the tie-break.
func (r *RepositoryImpl) TopN(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]Entry, error) {
	var entries []Entry
	err := r.DB.NewSelect().
		Model(&entries).
		Where("is_active = ?", true).
		Order(scoreColumn(tf)+" DESC", "user_id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query top leaderboard entries: %w", err)
	}
	return entries, nil
}

// CountActive returns the number of active entries.
func (r *RepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	count, err := r.DB.NewSelect().
		Model((*Entry)(nil)).
		Where("is_active = ?", true).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count active leaderboard entries: %w", err)
	}
	return int64(count), nil
}

// UpdateRanks stores the rank snapshot pair for a user.
func (r *RepositoryImpl) UpdateRanks(ctx context.Context, userID uuid.UUID, current, previous leaderboarddomain.Rank) error {
	res, err := r.DB.NewUpdate().
		Model((*Entry)(nil)).
		Set("current_rank = ?", current).
		Set("previous_rank = ?", previous).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update ranks: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// UpdateBadges replaces the badge and achievement collections.
func (r *RepositoryImpl) UpdateBadges(ctx context.Context, userID uuid.UUID, badges []leaderboarddomain.Badge, achievements []leaderboarddomain.Achievement) error {
	res, err := r.DB.NewUpdate().
		Model((*Entry)(nil)).
		Set("badges = ?", badges).
		Set("achievements = ?", achievements).
		Set("updated_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update badges: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeactivateWhereNotIn marks active entries inactive when their user has no
// published stories. Returns the number of entries deactivated.
func (r *RepositoryImpl) DeactivateWhereNotIn(ctx context.Context, activeAuthorIDs []uuid.UUID) (int64, error) {
	q := r.DB.NewUpdate().
		Model((*Entry)(nil)).
		Set("is_active = ?", false).
		Set("updated_at = ?", time.Now().UTC()).
		Where("is_active = ?", true)
	if len(activeAuthorIDs) > 0 {
		q = q.Where("user_id NOT IN (?)", bun.In(activeAuthorIDs))
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate stale leaderboard entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// AppendRankHistory bulk-inserts rank history records from a ranking pass.
func (r *RepositoryImpl) AppendRankHistory(ctx context.Context, records []RankHistory) error {
	if len(records) == 0 {
		return nil
	}
	if _, err := r.DB.NewInsert().Model(&records).Exec(ctx); err != nil {
		return fmt.Errorf("failed to append rank history: %w", err)
	}
	return nil
}

// GetRankHistory returns a user's rank history for a timeframe since the given
// time, oldest first.
func (r *RepositoryImpl) GetRankHistory(ctx context.Context, userID uuid.UUID, tf leaderboarddomain.Timeframe, since time.Time) ([]RankHistory, error) {
	var records []RankHistory
	err := r.DB.NewSelect().
		Model(&records).
		Where("user_id = ?", userID).
		Where("timeframe = ?", string(tf)).
		Where("recorded_at >= ?", since).
		Order("recorded_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rank history: %w", err)
	}
	return records, nil
}

// Stats computes the aggregate rollup across active entries.
func (r *RepositoryImpl) Stats(ctx context.Context) (*BoardStats, error) {
	stats := &BoardStats{}

	count, err := r.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalParticipants = count

	// Published stories only; drafts and archived stories are not public.
	err = r.DB.NewSelect().
		Model((*Entry)(nil)).
		ColumnExpr("COALESCE(SUM((metrics->>'publishedStories')::bigint), 0)").
		Where("is_active = ?", true).
		Scan(ctx, &stats.TotalStories)
	if err != nil {
		return nil, fmt.Errorf("failed to sum story counts: %w", err)
	}

	err = r.DB.NewSelect().
		Model((*Entry)(nil)).
		ColumnExpr("COALESCE(SUM((metrics->>'totalViews')::bigint), 0)").
		Where("is_active = ?", true).
		Scan(ctx, &stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("failed to sum view counts: %w", err)
	}

	top, err := r.TopN(ctx, leaderboarddomain.TimeframeOverall, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		stats.TopScorer = &top[0]
	}

	return stats, nil
}

func scoreColumn(tf leaderboarddomain.Timeframe) string {
	switch tf {
	case leaderboarddomain.TimeframeWeekly:
		return "weekly_score"
	case leaderboarddomain.TimeframeMonthly:
		return "monthly_score"
	default:
		return "total_score"
	}
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
