package leaderboardhandlers

import (
	"log/slog"

	leaderboardservice "github.com/storyweave/storyweave-backend/app/modules/leaderboard/application"
	leaderboardevents "github.com/storyweave/storyweave-backend/app/modules/leaderboard/events"
	"github.com/storyweave/storyweave-backend/app/shared/handlerwrapper"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// LeaderboardHandlers implements the Handlers interface for content and
// account lifecycle events consumed by the leaderboard.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger) *LeaderboardHandlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
	}
}

// scoreResults converts a recalculation OperationResult into outbound events.
// Failures become a score.update.failed event rather than a handler error so
// the triggering message is acked either way; the content action it reports on
// has already committed.
func scoreResults(result results.OperationResult) []handlerwrapper.Result {
	if outcome, ok := result.Success.(leaderboardservice.ScoreRecalculated); ok {
		out := []handlerwrapper.Result{{
			Topic: leaderboardevents.ScoreUpdated,
			Payload: leaderboardevents.ScoreUpdatedPayload{
				UserID:       outcome.UserID,
				TotalScore:   outcome.Scores.Total,
				WeeklyScore:  outcome.WeeklyScore,
				MonthlyScore: outcome.MonthlyScore,
				CalculatedAt: outcome.CalculatedAt,
			},
		}}
		if outcome.Deactivated {
			out = append(out, handlerwrapper.Result{
				Topic:   leaderboardevents.EntryDeactivated,
				Payload: leaderboardevents.EntryDeactivatedPayload{UserID: outcome.UserID},
			})
		}
		if outcome.Reactivated {
			out = append(out, handlerwrapper.Result{
				Topic:   leaderboardevents.EntryReactivated,
				Payload: leaderboardevents.EntryReactivatedPayload{UserID: outcome.UserID},
			})
		}
		return out
	}

	if failure, ok := result.Failure.(leaderboardservice.ScoreRecalculationFailed); ok {
		return []handlerwrapper.Result{{
			Topic: leaderboardevents.ScoreUpdateFailed,
			Payload: leaderboardevents.ScoreUpdateFailedPayload{
				UserID: failure.UserID,
				Reason: failure.Reason,
			},
		}}
	}

	return nil
}
