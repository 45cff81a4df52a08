package broker

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink appends order events to a topic keyed by order id.
type KafkaSink struct {
	writer messageWriter
}

// NewKafkaSink constructs sink writing to topic on brokers.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// Name identifies sink in logs and metrics.
func (s *KafkaSink) Name() string { return "kafka" }

// Handle writes event; events of one order share a partition.
func (s *KafkaSink) Handle(ctx context.Context, event model.OrderEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Order.ID),
		Value: body,
		Time:  event.OccurredAt.UTC(),
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
}

// Close flushes pending writes.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
