// Package user wires the account service. Like the story module it only
// publishes events; the HTTP API drives its operations.
package user

import (
	"context"
	"time"

	"github.com/storyweave/storyweave-backend/app/eventbus"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	userservice "github.com/storyweave/storyweave-backend/app/modules/user/application"
	useradapters "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/adapters"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
	"github.com/storyweave/storyweave-backend/config"
	"github.com/storyweave/storyweave-backend/pkg/jwt"
)

const defaultTokenTTL = 24 * time.Hour

// Module bundles the user service, repository, and token service.
type Module struct {
	Service    userservice.Service
	Repository userdb.Repository
	Tokens     *jwt.Service
}

// NewModule wires the user module. The leaderboard repository is read through
// an adapter so profiles can join in the caller's standing.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	repo userdb.Repository,
	leaderboardRepo leaderboarddb.Repository,
	bus eventbus.EventBus,
	helpers utils.Helpers,
) *Module {
	metrics := observability.NewOperationMetrics(obs.Registry, "user")

	ttl := cfg.JWT.DefaultTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	tokens := jwt.NewService(cfg.JWT.Secret, "storyweave", ttl)
	service := userservice.NewUserService(
		repo,
		useradapters.NewRankReader(leaderboardRepo),
		tokens,
		bus,
		helpers,
		obs.Logger,
		metrics,
		obs.Tracer,
	)

	obs.Logger.InfoContext(ctx, "User module initialized")

	return &Module{
		Service:    service,
		Repository: repo,
		Tokens:     tokens,
	}
}
