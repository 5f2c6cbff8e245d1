// Package eventbus provides the NATS JetStream-backed watermill event bus
// connecting the story, user, and leaderboard modules.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/storyweave/storyweave-backend/app/shared/utils"
)

// EventBus is the messaging surface handed to modules.
type EventBus interface {
	// Publish sends msg to topic.
	Publish(ctx context.Context, topic string, msg *message.Message) error
	// Publisher returns a publisher that routes each message to the topic in
	// its metadata, for use as a watermill router publisher.
	Publisher() message.Publisher
	// Subscriber returns the underlying subscriber for router wiring.
	Subscriber() message.Subscriber
	Close() error
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	natsConn   *nc.Conn
	logger     *slog.Logger
}

// NewEventBus connects to NATS JetStream and builds the watermill pub/sub pair.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		logger.Error("Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	if err := InitializeStreams(ctx, js, logger); err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
			JetStream: wmnats.JetStreamConfig{AutoProvision: true},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
			JetStream: wmnats.JetStreamConfig{AutoProvision: true},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		natsConn:   natsConn,
		logger:     logger,
	}, nil
}

func (eb *eventBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	if msg.UUID == "" {
		msg.UUID = watermill.NewUUID()
	}
	msg.SetContext(ctx)

	eb.logger.DebugContext(ctx, "Publishing message",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
	)

	if err := eb.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Publisher() message.Publisher {
	return &topicRoutingPublisher{inner: eb.publisher}
}

func (eb *eventBus) Subscriber() message.Subscriber {
	return eb.subscriber
}

func (eb *eventBus) Close() error {
	if err := eb.publisher.Close(); err != nil {
		eb.logger.Error("Failed to close publisher", slog.Any("error", err))
	}
	if err := eb.subscriber.Close(); err != nil {
		eb.logger.Error("Failed to close subscriber", slog.Any("error", err))
	}
	eb.natsConn.Close()
	return nil
}

// topicRoutingPublisher publishes each message to the topic named in its
// metadata, so router handlers can emit messages for differing destinations.
type topicRoutingPublisher struct {
	inner message.Publisher
}

func (p *topicRoutingPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		destination := msg.Metadata.Get(utils.TopicMetadataKey)
		if destination == "" {
			destination = topic
		}
		if destination == "" {
			return fmt.Errorf("message %s has no destination topic", msg.UUID)
		}
		if err := p.inner.Publish(destination, msg); err != nil {
			return err
		}
	}
	return nil
}

func (p *topicRoutingPublisher) Close() error {
	return p.inner.Close()
}
