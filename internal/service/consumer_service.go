package service

import (
	"context"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder ships events off the process, e.g. to NATS.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	audit      logger.ILogger
	forwarder  EventForwarder
	logger     logger.ILogger
}

// NewConsumerService writes every contract event to the audit log and forwards it when forwarder is not nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	audit logger.ILogger,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		audit:      audit,
		forwarder:  forwarder,
		logger:     log,
	}
}

// Consume subscribes and processes messages in the background until ctx ends or the bus closes.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("EVENTS", "Failed to decode event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // undecodable messages are never retried
		return
	}

	cs.audit.Info("CONTRACT_EVENT", event.EventType(), event.Payload())

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{
				"event_type": event.EventType(),
				"error":      err.Error(),
			})
		}
	}
	msg.Ack()
}
