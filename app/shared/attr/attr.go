// Package attr provides typed slog attribute helpers used across all modules.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type correlationIDKey struct{}

// CorrelationIDMetadataKey is the watermill metadata key carrying the
// correlation ID across message hops.
const CorrelationIDMetadataKey = "correlation_id"

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

func Float64(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

func Time(key string, value time.Time) slog.Attr {
	return slog.Time(key, value)
}

func UserID(key string, id uuid.UUID) slog.Attr {
	return slog.String(key, id.String())
}

// WithCorrelationID stores a correlation ID on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation ID stored on the context, if any.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ExtractCorrelationID returns a slog attribute for the context correlation ID.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(CorrelationIDMetadataKey, CorrelationID(ctx))
}

// CorrelationIDFromMsg returns a slog attribute for a message's correlation ID.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String(CorrelationIDMetadataKey, msg.Metadata.Get(CorrelationIDMetadataKey))
}
