// Package userservice implements account lifecycle, authentication, and the
// follow graph.
package userservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/storyweave/storyweave-backend/app/eventbus"
	userdb "github.com/storyweave/storyweave-backend/app/modules/user/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/results"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
	"github.com/storyweave/storyweave-backend/pkg/jwt"
)

// RankSummary is the leaderboard standing joined into a profile.
type RankSummary struct {
	Position   int     `json:"position"`
	TotalScore float64 `json:"totalScore"`
}

// RankReader exposes the leaderboard standing the profile endpoint joins in.
type RankReader interface {
	RankSummary(ctx context.Context, userID uuid.UUID) (*RankSummary, error)
}

// UserService implements the account operations.
type UserService struct {
	repo    userdb.Repository
	ranks   RankReader
	tokens  *jwt.Service
	bus     eventbus.EventBus
	helpers utils.Helpers
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer

	now func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	ranks RankReader,
	tokens *jwt.Service,
	bus eventbus.EventBus,
	helpers utils.Helpers,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *UserService {
	return &UserService{
		repo:    repo,
		ranks:   ranks,
		tokens:  tokens,
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
func (s *UserService) serviceWrapper(
	ctx context.Context,
	operationName string,
	userID uuid.UUID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("user_id", userID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "UserService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "UserService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.UserID("user_id", userID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "UserService")
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
			attr.UserID("user_id", userID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "UserService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure == nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "UserService")
	}
	return result, nil
}

// publishEvent sends an account lifecycle event after the triggering write has
// committed. Publish failures are logged and swallowed.
func (s *UserService) publishEvent(ctx context.Context, topic string, payload any) {
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
