// Package leaderboardqueue runs the periodic ranking and cleanup jobs on
// River so batch passes survive restarts and never run concurrently with
// themselves.
package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	leaderboardservice "github.com/storyweave/storyweave-backend/app/modules/leaderboard/application"
	leaderboardevents "github.com/storyweave/storyweave-backend/app/modules/leaderboard/events"
	"github.com/storyweave/storyweave-backend/app/eventbus"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
)

// Service owns the River client and its worker pool.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService creates the River queue service with periodic ranking and
// cleanup jobs. River needs its own pgx pool; it cannot share bun's
// database/sql connection.
func NewService(
	ctx context.Context,
	dsn string,
	service leaderboardservice.Service,
	bus eventbus.EventBus,
	helpers utils.Helpers,
	logger *slog.Logger,
	rankingInterval, cleanupInterval time.Duration,
) (*Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &RankingWorker{service: service, bus: bus, helpers: helpers, logger: logger})
	river.AddWorker(workers, &CleanupWorker{service: service, logger: logger})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(rankingInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return RankingJob{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
			river.NewPeriodicJob(
				river.PeriodicInterval(cleanupInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return CleanupJob{}, nil
				},
				nil,
			),
		},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{client: client, pool: pool, logger: logger}, nil
}

// Start starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting leaderboard queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop drains the worker pool and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping leaderboard queue service")
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	return nil
}

// EnqueueRanking inserts an ad-hoc ranking job, used by the admin API.
func (s *Service) EnqueueRanking(ctx context.Context) error {
	if _, err := s.client.Insert(ctx, RankingJob{}, nil); err != nil {
		return fmt.Errorf("failed to enqueue ranking job: %w", err)
	}
	return nil
}

// RankingWorker runs the batch ranking pass and publishes the completion
// event.
type RankingWorker struct {
	river.WorkerDefaults[RankingJob]
	service leaderboardservice.Service
	bus     eventbus.EventBus
	helpers utils.Helpers
	logger  *slog.Logger
}

func (w *RankingWorker) Work(ctx context.Context, job *river.Job[RankingJob]) error {
	result, err := w.service.UpdateRankings(ctx)
	if err != nil {
		return fmt.Errorf("ranking pass failed: %w", err)
	}

	if summary, ok := result.Success.(leaderboardservice.RankingsUpdated); ok {
		w.publishCompletion(ctx, summary)
	}
	return nil
}

func (w *RankingWorker) publishCompletion(ctx context.Context, summary leaderboardservice.RankingsUpdated) {
	msg, err := w.helpers.CreateNewMessage(leaderboardevents.RankingsUpdatedPayload{
		EntriesRanked: summary.Entries,
		UpdatedAt:     summary.UpdatedAt,
	}, leaderboardevents.RankingsUpdated)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to build rankings.updated message", attr.Error(err))
		return
	}
	if err := w.bus.Publish(ctx, leaderboardevents.RankingsUpdated, msg); err != nil {
		// The pass itself succeeded; a lost notification is not worth a retry
		// of the whole batch.
		w.logger.ErrorContext(ctx, "Failed to publish rankings.updated", attr.Error(err))
	}
}

// CleanupWorker runs the inactivity sweep.
type CleanupWorker struct {
	river.WorkerDefaults[CleanupJob]
	service leaderboardservice.Service
	logger  *slog.Logger
}

func (w *CleanupWorker) Work(ctx context.Context, job *river.Job[CleanupJob]) error {
	result, err := w.service.CleanupInactive(ctx)
	if err != nil {
		return fmt.Errorf("cleanup sweep failed: %w", err)
	}
	if summary, ok := result.Success.(leaderboardservice.CleanupCompleted); ok {
		w.logger.InfoContext(ctx, "Inactivity sweep completed",
			attr.Int64("deactivated", summary.Deactivated),
		)
	}
	return nil
}
