// Package app assembles the database, event bus, modules, and HTTP server
// into one runnable application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/storyweave/storyweave-backend/api"
	"github.com/storyweave/storyweave-backend/app/eventbus"
	"github.com/storyweave/storyweave-backend/app/modules/leaderboard"
	"github.com/storyweave/storyweave-backend/app/modules/story"
	"github.com/storyweave/storyweave-backend/app/modules/user"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
	"github.com/storyweave/storyweave-backend/config"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived component of the backend.
type App struct {
	Config        *config.Config
	Observability *observability.Observability

	DB       *bun.DB
	EventBus eventbus.EventBus
	Router   *message.Router

	StoryModule       *story.Module
	UserModule        *user.Module
	LeaderboardModule *leaderboard.Module

	HTTPServer *http.Server
}

// NewApp wires the full application from configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability)
	logger := obs.Logger
	helpers := utils.NewHelpers()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	watermillRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		bus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	storyModule := story.NewModule(ctx, obs, db, bus, helpers)
	userRepo := userdb.NewRepository(db)

	leaderboardModule, err := leaderboard.NewModule(
		ctx, cfg, obs, db,
		storyModule.Repository,
		userRepo,
		bus, watermillRouter, helpers,
	)
	if err != nil {
		bus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to create leaderboard module: %w", err)
	}

	userModule := user.NewModule(ctx, cfg, obs, userRepo, leaderboardModule.Repository, bus, helpers)

	httpRouter := api.NewRouter(api.Deps{
		Leaderboard: leaderboardModule.Service,
		Stories:     storyModule.Service,
		Users:       userModule.Service,
		Tokens:      userModule.Tokens,
		Queue:       leaderboardModule.Queue,
		Registry:    obs.Registry,
		Logger:      logger,
		Config:      cfg,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		Config:            cfg,
		Observability:     obs,
		DB:                db,
		EventBus:          bus,
		Router:            watermillRouter,
		StoryModule:       storyModule,
		UserModule:        userModule,
		LeaderboardModule: leaderboardModule,
		HTTPServer:        httpServer,
	}, nil
}

// Run starts the watermill router, the queue workers, and the HTTP server,
// then blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	var wg sync.WaitGroup

	wg.Add(1)
	go a.LeaderboardModule.Run(ctx, &wg)

	go func() {
		if err := a.Router.Run(ctx); err != nil {
			logger.ErrorContext(ctx, "Watermill router stopped", "error", err)
		}
	}()

	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "address", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}

	wg.Wait()
	return a.Close()
}

// Close releases every resource in reverse wiring order.
func (a *App) Close() error {
	logger := a.Observability.Logger

	if err := a.LeaderboardModule.Close(); err != nil {
		logger.Error("Error closing leaderboard module", "error", err)
	}
	if err := a.EventBus.Close(); err != nil {
		logger.Error("Error closing event bus", "error", err)
	}
	if err := a.DB.Close(); err != nil {
		logger.Error("Error closing database", "error", err)
		return err
	}

	logger.Info("Application shut down")
	return nil
}
