package leaderboardrouter

import (
	"context"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	leaderboardevents "github.com/storyweave/storyweave-backend/app/modules/leaderboard/events"
	leaderboardhandlers "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/handlers"
	storyevents "github.com/storyweave/storyweave-backend/app/modules/story/events"
	userevents "github.com/storyweave/storyweave-backend/app/modules/user/events"
	"github.com/storyweave/storyweave-backend/app/eventbus"
	"github.com/storyweave/storyweave-backend/app/shared/handlerwrapper"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// LeaderboardRouter owns the watermill wiring for leaderboard event handlers.
type LeaderboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	bus            eventbus.EventBus
	tracer         trace.Tracer
	metrics        observability.OperationMetrics
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewLeaderboardRouter creates a new instance of the router.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	tracer trace.Tracer,
	operationMetrics observability.OperationMetrics,
	prometheusRegistry *prometheus.Registry,
) *LeaderboardRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}

	return &LeaderboardRouter{
		logger:         logger,
		Router:         router,
		bus:            bus,
		tracer:         tracer,
		metrics:        operationMetrics,
		metricsBuilder: metricsBuilder,
	}
}

// Configure sets up the middlewares and registers all module-specific event
// handlers.
func (r *LeaderboardRouter) Configure(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware for Leaderboard")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	return r.RegisterHandlers(ctx, handlers)
}

// registerHandler is a generic helper to reduce boilerplate when adding
// topics to the router.
func registerHandler[T any](
	r *LeaderboardRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "leaderboard." + topic
	r.Router.AddHandler(
		handlerName,
		topic,
		r.bus.Subscriber(),
		leaderboardevents.ScoreUpdated,
		r.bus.Publisher(),
		handlerwrapper.WrapTyped(
			handlerName,
			r.logger,
			r.tracer,
			r.metrics,
			handler,
		),
	)
}

// RegisterHandlers binds the content and account lifecycle topics to their
// handlers.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Leaderboard Event Handlers")

	registerHandler(r, storyevents.StoryPublished, handlers.HandleStoryPublished)
	registerHandler(r, storyevents.StoryUnpublished, handlers.HandleStoryUnpublished)
	registerHandler(r, storyevents.StoryDeleted, handlers.HandleStoryDeleted)
	registerHandler(r, storyevents.StoryEngagementUpdated, handlers.HandleStoryEngagementUpdated)
	registerHandler(r, userevents.UserRegistered, handlers.HandleUserRegistered)
	registerHandler(r, userevents.UserFollowed, handlers.HandleUserFollowed)
	registerHandler(r, userevents.UserDeleted, handlers.HandleUserDeleted)

	return nil
}

// Close stops the router and cleans up resources.
func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
