package leaderboardservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
)

// ------------------------
// Fake Leaderboard Repo
// ------------------------

// FakeRepository provides a programmable stub for the leaderboarddb.Repository
// interface, backed by an in-memory entry map unless a Func field overrides
// the behavior.
type FakeRepository struct {
	trace   []string
	entries map[uuid.UUID]*leaderboarddb.Entry
	history []leaderboarddb.RankHistory

	GetByUserIDFunc          func(ctx context.Context, userID uuid.UUID) (*leaderboarddb.Entry, error)
	CreateIfAbsentFunc       func(ctx context.Context, userID uuid.UUID) (*leaderboarddb.Entry, error)
	UpdateScoresFunc         func(ctx context.Context, entry *leaderboarddb.Entry) error
	SetActiveFunc            func(ctx context.Context, userID uuid.UUID, active bool) error
	DeleteFunc               func(ctx context.Context, userID uuid.UUID) error
	ListActiveFunc           func(ctx context.Context) ([]leaderboarddb.Entry, error)
	TopNFunc                 func(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]leaderboarddb.Entry, error)
	CountActiveFunc          func(ctx context.Context) (int64, error)
	UpdateRanksFunc          func(ctx context.Context, userID uuid.UUID, current, previous leaderboarddomain.Rank) error
	UpdateBadgesFunc         func(ctx context.Context, userID uuid.UUID, badges []leaderboarddomain.Badge, achievements []leaderboarddomain.Achievement) error
	DeactivateWhereNotInFunc func(ctx context.Context, activeAuthorIDs []uuid.UUID) (int64, error)
	AppendRankHistoryFunc    func(ctx context.Context, records []leaderboarddb.RankHistory) error
	GetRankHistoryFunc       func(ctx context.Context, userID uuid.UUID, tf leaderboarddomain.Timeframe, since time.Time) ([]leaderboarddb.RankHistory, error)
	StatsFunc                func(ctx context.Context) (*leaderboarddb.BoardStats, error)
}

// NewFakeRepository initializes a FakeRepository with an empty store.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		trace:   []string{},
		entries: map[uuid.UUID]*leaderboarddb.Entry{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// Entry returns the stored entry for direct assertions.
func (f *FakeRepository) Entry(userID uuid.UUID) *leaderboarddb.Entry {
	return f.entries[userID]
}

func (f *FakeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*leaderboarddb.Entry, error) {
	f.record("GetByUserID")
	if f.GetByUserIDFunc != nil {
		return f.GetByUserIDFunc(ctx, userID)
	}
	entry, ok := f.entries[userID]
	if !ok {
		return nil, leaderboarddb.ErrEntryNotFound
	}
	cp := *entry
	return &cp, nil
}

func (f *FakeRepository) CreateIfAbsent(ctx context.Context, userID uuid.UUID) (*leaderboarddb.Entry, error) {
	f.record("CreateIfAbsent")
	if f.CreateIfAbsentFunc != nil {
		return f.CreateIfAbsentFunc(ctx, userID)
	}
	if entry, ok := f.entries[userID]; ok {
		cp := *entry
		return &cp, nil
	}
	entry := &leaderboarddb.Entry{UserID: userID, IsActive: true}
	f.entries[userID] = entry
	cp := *entry
	return &cp, nil
}

func (f *FakeRepository) UpdateScores(ctx context.Context, entry *leaderboarddb.Entry) error {
	f.record("UpdateScores")
	if f.UpdateScoresFunc != nil {
		return f.UpdateScoresFunc(ctx, entry)
	}
	stored, ok := f.entries[entry.UserID]
	if !ok {
		return leaderboarddb.ErrEntryNotFound
	}
	stored.TotalScore = entry.TotalScore
	stored.StoryScore = entry.StoryScore
	stored.EngagementScore = entry.EngagementScore
	stored.QualityScore = entry.QualityScore
	stored.WeeklyScore = entry.WeeklyScore
	stored.MonthlyScore = entry.MonthlyScore
	stored.Metrics = entry.Metrics
	stored.LastCalculatedAt = entry.LastCalculatedAt
	stored.LastActivityAt = entry.LastActivityAt
	return nil
}

func (f *FakeRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	f.record("SetActive")
	if f.SetActiveFunc != nil {
		return f.SetActiveFunc(ctx, userID, active)
	}
	entry, ok := f.entries[userID]
	if !ok {
		return leaderboarddb.ErrEntryNotFound
	}
	entry.IsActive = active
	return nil
}

func (f *FakeRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, userID)
	}
	delete(f.entries, userID)
	return nil
}

func (f *FakeRepository) ListActive(ctx context.Context) ([]leaderboarddb.Entry, error) {
	f.record("ListActive")
	if f.ListActiveFunc != nil {
		return f.ListActiveFunc(ctx)
	}
	var out []leaderboarddb.Entry
	for _, entry := range f.entries {
		if entry.IsActive {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *FakeRepository) TopN(ctx context.Context, tf leaderboarddomain.Timeframe, limit, offset int) ([]leaderboarddb.Entry, error) {
	f.record("TopN")
	if f.TopNFunc != nil {
		return f.TopNFunc(ctx, tf, limit, offset)
	}
	active, _ := f.ListActive(ctx)
	scored := make([]leaderboarddomain.ScoredEntry, len(active))
	for i, e := range active {
		scored[i] = leaderboarddomain.ScoredEntry{UserID: e.UserID, Score: e.ScoreFor(tf)}
	}
	byUser := make(map[uuid.UUID]leaderboarddb.Entry, len(active))
	for _, e := range active {
		byUser[e.UserID] = e
	}
	var out []leaderboarddb.Entry
	for i, se := range leaderboarddomain.RankOrder(scored) {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, byUser[se.UserID])
	}
	return out, nil
}

func (f *FakeRepository) CountActive(ctx context.Context) (int64, error) {
	f.record("CountActive")
	if f.CountActiveFunc != nil {
		return f.CountActiveFunc(ctx)
	}
	active, _ := f.ListActive(ctx)
	return int64(len(active)), nil
}

func (f *FakeRepository) UpdateRanks(ctx context.Context, userID uuid.UUID, current, previous leaderboarddomain.Rank) error {
	f.record("UpdateRanks")
	if f.UpdateRanksFunc != nil {
		return f.UpdateRanksFunc(ctx, userID, current, previous)
	}
	entry, ok := f.entries[userID]
	if !ok {
		return leaderboarddb.ErrEntryNotFound
	}
	entry.CurrentRank = current
	entry.PreviousRank = previous
	return nil
}

func (f *FakeRepository) UpdateBadges(ctx context.Context, userID uuid.UUID, badges []leaderboarddomain.Badge, achievements []leaderboarddomain.Achievement) error {
	f.record("UpdateBadges")
	if f.UpdateBadgesFunc != nil {
		return f.UpdateBadgesFunc(ctx, userID, badges, achievements)
	}
	entry, ok := f.entries[userID]
	if !ok {
		return leaderboarddb.ErrEntryNotFound
	}
	entry.Badges = badges
	entry.Achievements = achievements
	return nil
}

func (f *FakeRepository) DeactivateWhereNotIn(ctx context.Context, activeAuthorIDs []uuid.UUID) (int64, error) {
	f.record("DeactivateWhereNotIn")
	if f.DeactivateWhereNotInFunc != nil {
		return f.DeactivateWhereNotInFunc(ctx, activeAuthorIDs)
	}
	keep := make(map[uuid.UUID]bool, len(activeAuthorIDs))
	for _, id := range activeAuthorIDs {
		keep[id] = true
	}
	var n int64
	for id, entry := range f.entries {
		if entry.IsActive && !keep[id] {
			entry.IsActive = false
			n++
		}
	}
	return n, nil
}

func (f *FakeRepository) AppendRankHistory(ctx context.Context, records []leaderboarddb.RankHistory) error {
	f.record("AppendRankHistory")
	if f.AppendRankHistoryFunc != nil {
		return f.AppendRankHistoryFunc(ctx, records)
	}
	f.history = append(f.history, records...)
	return nil
}

func (f *FakeRepository) GetRankHistory(ctx context.Context, userID uuid.UUID, tf leaderboarddomain.Timeframe, since time.Time) ([]leaderboarddb.RankHistory, error) {
	f.record("GetRankHistory")
	if f.GetRankHistoryFunc != nil {
		return f.GetRankHistoryFunc(ctx, userID, tf, since)
	}
	var out []leaderboarddb.RankHistory
	for _, record := range f.history {
		if record.UserID == userID && record.Timeframe == string(tf) && !record.RecordedAt.Before(since) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *FakeRepository) Stats(ctx context.Context) (*leaderboarddb.BoardStats, error) {
	f.record("Stats")
	if f.StatsFunc != nil {
		return f.StatsFunc(ctx)
	}
	count, _ := f.CountActive(ctx)
	stats := &leaderboarddb.BoardStats{TotalParticipants: count}
	for _, entry := range f.entries {
		if !entry.IsActive {
			continue
		}
		// Mirrors the SQL rollup: published stories only.
		stats.TotalStories += int64(entry.Metrics.PublishedStories)
		stats.TotalViews += entry.Metrics.TotalViews
	}
	return stats, nil
}

var _ leaderboarddb.Repository = (*FakeRepository)(nil)

// ------------------------
// Fake readers
// ------------------------

type FakeStoryReader struct {
	SnapshotsByAuthorFunc    func(ctx context.Context, authorID uuid.UUID) ([]leaderboarddomain.StorySnapshot, error)
	AuthorsWithPublishedFunc func(ctx context.Context) ([]uuid.UUID, error)
}

func (f *FakeStoryReader) SnapshotsByAuthor(ctx context.Context, authorID uuid.UUID) ([]leaderboarddomain.StorySnapshot, error) {
	if f.SnapshotsByAuthorFunc != nil {
		return f.SnapshotsByAuthorFunc(ctx, authorID)
	}
	return nil, nil
}

func (f *FakeStoryReader) AuthorsWithPublished(ctx context.Context) ([]uuid.UUID, error) {
	if f.AuthorsWithPublishedFunc != nil {
		return f.AuthorsWithPublishedFunc(ctx)
	}
	return nil, nil
}

var _ StoryReader = (*FakeStoryReader)(nil)

type FakeUserReader struct {
	FollowerCountFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
	ExistsFunc        func(ctx context.Context, userID uuid.UUID) (bool, error)
}

func (f *FakeUserReader) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if f.FollowerCountFunc != nil {
		return f.FollowerCountFunc(ctx, userID)
	}
	return 0, nil
}

func (f *FakeUserReader) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, userID)
	}
	return true, nil
}

var _ UserReader = (*FakeUserReader)(nil)

// newTestService wires a service around fakes with discarded telemetry and a
// frozen clock.
func newTestService(repo *FakeRepository, stories *FakeStoryReader, users *FakeUserReader) *LeaderboardService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	svc := NewLeaderboardService(repo, stories, users, logger, observability.NoOpMetrics(), tracer)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}
