// Package leaderboard wires the scoring service, its event handlers, and the
// batch job queue into one module.
package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/storyweave/storyweave-backend/app/eventbus"
	leaderboardservice "github.com/storyweave/storyweave-backend/app/modules/leaderboard/application"
	leaderboardadapters "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/adapters"
	leaderboardhandlers "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/handlers"
	leaderboardqueue "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/queue"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/router"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
	"github.com/storyweave/storyweave-backend/config"
)

// Module bundles the leaderboard's service, router, and queue.
type Module struct {
	Service    leaderboardservice.Service
	Repository leaderboarddb.Repository
	Router     *leaderboardrouter.LeaderboardRouter
	Queue      *leaderboardqueue.Service

	logger     *observability.Observability
	cancelFunc context.CancelFunc
}

// NewModule wires the leaderboard module. The story and user repositories are
// read through adapters; the leaderboard never writes their tables.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	storyRepo storydb.Repository,
	userRepo userdb.Repository,
	bus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	logger := obs.Logger
	metrics := observability.NewOperationMetrics(obs.Registry, "leaderboard")

	repo := leaderboarddb.NewRepository(db)
	service := leaderboardservice.NewLeaderboardService(
		repo,
		leaderboardadapters.NewStoryReader(storyRepo),
		leaderboardadapters.NewUserReader(userRepo),
		logger,
		metrics,
		obs.Tracer,
	)

	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger)

	lbRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, bus, obs.Tracer, metrics, obs.Registry)
	if err := lbRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	queue, err := leaderboardqueue.NewService(
		ctx,
		cfg.Postgres.DSN,
		service,
		bus,
		helpers,
		logger,
		cfg.Leaderboard.RankingInterval,
		cfg.Leaderboard.CleanupInterval,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard queue: %w", err)
	}

	return &Module{
		Service:    service,
		Repository: repo,
		Router:     lbRouter,
		Queue:      queue,
		logger:     obs,
	}, nil
}

// Run starts the queue workers and blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.logger.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Queue.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start leaderboard queue", "error", err)
		return
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module stopped")
}

// Close stops the queue and router.
func (m *Module) Close() error {
	logger := m.logger.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.Queue != nil {
		if err := m.Queue.Stop(context.Background()); err != nil {
			logger.Error("Error stopping leaderboard queue", "error", err)
		}
	}
	if m.Router != nil {
		if err := m.Router.Close(); err != nil {
			return fmt.Errorf("error closing leaderboard router: %w", err)
		}
	}
	return nil
}
