package service

import (
	"context"
	"encoding/json"

	"party-advisor-be/internal/pkg/logger"
	"party-advisor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService prefetches speech for every finalized reply.
type consumerService struct {
	subscriber    message.Subscriber
	topicName     string
	speechService ISpeechService
	logger        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	speechService ISpeechService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:    subscriber,
		topicName:     topicName,
		speechService: speechService,
		logger:        log,
	}
}

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
	// Acked unconditionally; playback retries failed speech.
	defer msg.Ack()

	if t := msg.Metadata.Get("event_type"); t != "" && t != events.TypeMessageFinalized {
		cs.logger.Debug("ConsumerService", "Ignoring event", map[string]interface{}{"event_type": t})
		return
	}

	var evt events.MessageFinalized
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{
			"uuid":  msg.UUID,
			"error": err.Error(),
		})
		return
	}

	if evt.Failed {
		cs.logger.Debug("ConsumerService", "Skipping failed reply", map[string]interface{}{"message_id": evt.MessageID})
		return
	}

	cs.speechService.Prefetch(ctx, evt)
}
