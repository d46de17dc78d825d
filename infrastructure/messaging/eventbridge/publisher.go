// Package eventbridge publishes item lifecycle events to an AWS EventBridge
// bus so downstream consumers can react to mutations.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"itemstore-backend/domain/item"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const eventSource = "itemstore.backend"

// Publisher implements ports.EventPublisher using EventBridge
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends a single item event to the bus
func (p *Publisher) Publish(ctx context.Context, event item.Event) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.EventType()),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put event %s: %w", event.EventType(), err)
	}

	if out.FailedEntryCount > 0 {
		entry := out.Entries[0]
		p.logger.Warn("EventBridge rejected event",
			zap.String("eventType", event.EventType()),
			zap.String("itemID", event.AggregateID()),
			zap.String("errorCode", aws.ToString(entry.ErrorCode)),
			zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
		)
		return fmt.Errorf("event %s rejected: %s", event.EventType(), aws.ToString(entry.ErrorCode))
	}

	p.logger.Debug("Published item event",
		zap.String("eventType", event.EventType()),
		zap.String("itemID", event.AggregateID()),
	)

	return nil
}
