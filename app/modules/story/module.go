// Package story wires the content service. The story module only publishes
// events; its operations are driven by the HTTP API.
package story

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/storyweave/storyweave-backend/app/eventbus"
	storyservice "github.com/storyweave/storyweave-backend/app/modules/story/application"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
)

// Module bundles the story service and repository.
type Module struct {
	Service    storyservice.Service
	Repository storydb.Repository
}

// NewModule wires the story module.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	bus eventbus.EventBus,
	helpers utils.Helpers,
) *Module {
	metrics := observability.NewOperationMetrics(obs.Registry, "story")

	repo := storydb.NewRepository(db)
	service := storyservice.NewStoryService(repo, bus, helpers, obs.Logger, metrics, obs.Tracer)

	obs.Logger.InfoContext(ctx, "Story module initialized")

	return &Module{
		Service:    service,
		Repository: repo,
	}
}
