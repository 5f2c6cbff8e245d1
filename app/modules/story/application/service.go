package storyservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/eventbus"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/results"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
)

// StoryService implements the story content operations.
type StoryService struct {
	repo    storydb.Repository
	bus     eventbus.EventBus
	helpers utils.Helpers
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer

	now func() time.Time
}

// NewStoryService creates a new StoryService.
func NewStoryService(
	repo storydb.Repository,
	bus eventbus.EventBus,
	helpers utils.Helpers,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *StoryService {
	return &StoryService{
		repo:    repo,
		bus:     bus,
		helpers: helpers,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *StoryService) serviceWrapper(
	ctx context.Context,
	operationName string,
	storyID uuid.UUID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("story_id", storyID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "StoryService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "StoryService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.UserID("story_id", storyID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "StoryService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.UserID("story_id", storyID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "StoryService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure == nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "StoryService")
	}
	return result, nil
}

// publishEvent sends a lifecycle event after the triggering write has
// committed. Publish failures are logged and swallowed: the write stands, and
// the periodic ranking pass will converge the leaderboard.
func (s *StoryService) publishEvent(ctx context.Context, topic string, payload any) {
	if s.bus == nil {
		return
	}
	msg, err := s.helpers.CreateNewMessage(payload, topic)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build lifecycle event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	if cid := attr.CorrelationID(ctx); cid != "" {
		msg.Metadata.Set(attr.CorrelationIDMetadataKey, cid)
	}
	if err := s.bus.Publish(ctx, topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish lifecycle event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
