package leave

import (
	"context"
	"encoding/json"

	"github.com/Anugo1/Workforce-management-system/internal/events"

	"github.com/segmentio/kafka-go"
)

type EventPublisher interface {
	PublishLeaveRequested(ctx context.Context, event events.LeaveRequestedEvent) error
	PublishLeaveApproved(ctx context.Context, event events.LeaveApprovedEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) PublishLeaveRequested(context.Context, events.LeaveRequestedEvent) error {
	return nil
}

func (noopEventPublisher) PublishLeaveApproved(context.Context, events.LeaveApprovedEvent) error {
	return nil
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishLeaveRequested(
	ctx context.Context,
	event events.LeaveRequestedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.LeaveRequestedTopic,
		Key:   []byte(event.ID),
		Value: payload,
	})
}

func (p *kafkaEventPublisher) PublishLeaveApproved(
	ctx context.Context,
	event events.LeaveApprovedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.LeaveApprovedTopic,
		Key:   []byte(event.ID),
		Value: payload,
	})
}
