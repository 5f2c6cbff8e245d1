// Package handlerwrapper adapts typed event handlers to watermill's handler
// signature. Handlers receive a decoded payload and return zero or more
// results; the wrapper owns unmarshalling, telemetry, and outbound message
// construction.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"log/slog"

	"github.com/storyweave/storyweave-backend/app/shared/attr"
	"github.com/storyweave/storyweave-backend/app/shared/observability"
	"github.com/storyweave/storyweave-backend/app/shared/utils"
)

// Result is one outbound event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTyped turns a typed handler into a watermill HandlerFunc. The inbound
// payload is decoded into T; every returned Result becomes a message routed to
// its topic with the inbound correlation ID carried over.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.OperationMetrics,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		correlationID := msg.Metadata.Get(attr.CorrelationIDMetadataKey)
		if correlationID == "" {
			correlationID = watermill.NewUUID()
		}
		ctx = attr.WithCorrelationID(ctx, correlationID)

		metrics.RecordOperationAttempt(ctx, handlerName, "handler")
		start := time.Now()
		defer func() {
			metrics.RecordOperationDuration(ctx, handlerName, "handler", time.Since(start))
		}()

		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal event payload",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			metrics.RecordOperationFailure(ctx, handlerName, "handler")
			span.RecordError(err)
			// A payload that cannot be decoded will never decode; drop it.
			return nil, nil
		}

		results, err := handler(ctx, &payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler returned error",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			metrics.RecordOperationFailure(ctx, handlerName, "handler")
			span.RecordError(err)
			return nil, err
		}

		out := make([]*message.Message, 0, len(results))
		for _, result := range results {
			data, err := json.Marshal(result.Payload)
			if err != nil {
				metrics.RecordOperationFailure(ctx, handlerName, "handler")
				return nil, fmt.Errorf("failed to marshal result payload for %s: %w", result.Topic, err)
			}
			outMsg := message.NewMessage(watermill.NewUUID(), data)
			outMsg.Metadata.Set(utils.TopicMetadataKey, result.Topic)
			outMsg.Metadata.Set(attr.CorrelationIDMetadataKey, correlationID)
			for k, v := range result.Metadata {
				outMsg.Metadata.Set(k, v)
			}
			out = append(out, outMsg)
		}

		metrics.RecordOperationSuccess(ctx, handlerName, "handler")
		return out, nil
	}
}
