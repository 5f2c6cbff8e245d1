package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddomain "github.com/storyweave/storyweave-backend/app/modules/leaderboard/domain"
	leaderboarddb "github.com/storyweave/storyweave-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// StoryReader supplies the story data the scoring pipeline consumes.
type StoryReader interface {
	SnapshotsByAuthor(ctx context.Context, authorID uuid.UUID) ([]leaderboarddomain.StorySnapshot, error)
	AuthorsWithPublished(ctx context.Context) ([]uuid.UUID, error)
}

// UserReader supplies author-level counters from the user module.
type UserReader interface {
	FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	repo    leaderboarddb.Repository
	stories StoryReader
	users   UserReader
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer

	// swapped out in tests
	now func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo leaderboarddb.Repository,
	stories StoryReader,
	users UserReader,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		repo:    repo,
		stories: stories,
		users:   users,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery. This standardizes observability across all service methods.
func (s *LeaderboardService) serviceWrapper(
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "LeaderboardService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "LeaderboardService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.UserID("user_id", userID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "LeaderboardService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "LeaderboardService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.UserID("user_id", userID),
			attr.Any("failure_payload", result.Failure),
		)
		return result, nil
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "LeaderboardService")
	return result, nil
}
