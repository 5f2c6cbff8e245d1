package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

var rankingTimeframes = []leaderboarddomain.Timeframe{
	leaderboarddomain.TimeframeOverall,
	leaderboarddomain.TimeframeWeekly,
	leaderboarddomain.TimeframeMonthly,
}

// UpdateRankings recomputes 1-based positions for every active entry across
// all timeframes in one batch pass. Each entry's previous rank is snapshotted
// before the new position lands. A failing write does not stall the pass and
// ranks already written stay written, but any failure makes the whole pass
// return an error so the scheduler can retry it.
func (s *LeaderboardService) UpdateRankings(ctx context.Context) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "UpdateRankings", uuid.Nil, func(ctx context.Context) (results.OperationResult, error) {
		entries, err := s.repo.ListActive(ctx)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to list active entries: %w", err)
		}

		now := s.now()

		// Positions per timeframe, keyed by user.
		positions := make(map[uuid.UUID]map[leaderboarddomain.Timeframe]int, len(entries))
		history := make([]leaderboarddb.RankHistory, 0, len(entries)*len(rankingTimeframes))
		for _, tf := range rankingTimeframes {
			scored := make([]leaderboarddomain.ScoredEntry, len(entries))
			for i, e := range entries {
				scored[i] = leaderboarddomain.ScoredEntry{UserID: e.UserID, Score: e.ScoreFor(tf)}
			}
			for pos, se := range leaderboarddomain.RankOrder(scored) {
				if positions[se.UserID] == nil {
					positions[se.UserID] = make(map[leaderboarddomain.Timeframe]int, len(rankingTimeframes))
				}
				positions[se.UserID][tf] = pos + 1
				history = append(history, leaderboarddb.RankHistory{
					UserID:     se.UserID,
					Timeframe:  string(tf),
					Position:   pos + 1,
					Score:      se.Score,
					RecordedAt: now,
				})
			}
		}

		failed := 0
		for _, e := range entries {
			current, previous := e.CurrentRank, e.PreviousRank
			for _, tf := range rankingTimeframes {
				current, previous = leaderboarddomain.AdvanceRank(current, previous, tf, positions[e.UserID][tf])
			}
			if err := s.repo.UpdateRanks(ctx, e.UserID, current, previous); err != nil {
				failed++
				s.logger.ErrorContext(ctx, "Failed to write ranks for entry",
					attr.ExtractCorrelationID(ctx),
					attr.UserID("user_id", e.UserID),
					attr.Error(err),
				)
			}
		}

		summary := RankingsUpdated{
			Entries:   len(entries),
			Failed:    failed,
			UpdatedAt: now,
		}

		if err := s.repo.AppendRankHistory(ctx, history); err != nil {
			s.logger.ErrorContext(ctx, "Failed to append rank history",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			return results.FailureResult(summary), fmt.Errorf("failed to append rank history: %w", err)
		}
		if failed > 0 {
			return results.FailureResult(summary),
				fmt.Errorf("failed to write ranks for %d of %d entries", failed, len(entries))
		}

		return results.SuccessResult(summary), nil
	})
}
