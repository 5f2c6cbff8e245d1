// Package utils provides watermill message construction helpers shared by the
// module routers and handlers.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/storyweave/storyweave-backend/app/shared/attr"
)

// TopicMetadataKey is the metadata key carrying the destination topic.
const TopicMetadataKey = "topic"

// Helpers abstracts message marshalling so handlers can be tested with fakes.
type Helpers interface {
	// CreateResultMessage builds a message for topic, carrying payload and
	// propagating the correlation ID from the originating message.
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	// CreateNewMessage builds a message for topic with a fresh correlation ID.
	CreateNewMessage(payload any, topic string) (*message.Message, error)
	// UnmarshalPayload decodes a message payload into out.
	UnmarshalPayload(msg *message.Message, out any) error
}

type helpers struct{}

// NewHelpers returns the JSON-based Helpers implementation.
func NewHelpers() Helpers {
	return helpers{}
}

func (helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(TopicMetadataKey, topic)

	if original != nil {
		if cid := original.Metadata.Get(attr.CorrelationIDMetadataKey); cid != "" {
			msg.Metadata.Set(attr.CorrelationIDMetadataKey, cid)
		}
	}
	if msg.Metadata.Get(attr.CorrelationIDMetadataKey) == "" {
		msg.Metadata.Set(attr.CorrelationIDMetadataKey, watermill.NewUUID())
	}

	return msg, nil
}

func (h helpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	return h.CreateResultMessage(nil, payload, topic)
}

func (helpers) UnmarshalPayload(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}
