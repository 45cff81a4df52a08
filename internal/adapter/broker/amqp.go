package broker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConnection interface {
	channel() (amqpChannel, error)
	Close() error
}

type dialedConnection struct {
	conn *amqp.Connection
}

func (c dialedConnection) channel() (amqpChannel, error) {
	return c.conn.Channel()
}

func (c dialedConnection) Close() error {
	return c.conn.Close()
}

// AMQPSink publishes order events to a fanout exchange.
type AMQPSink struct {
	conn     amqpConnection
	exchange string
}

// DialAMQP connects to broker and declares durable fanout exchange.
func DialAMQP(url, exchange string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPSink{conn: dialedConnection{conn: conn}, exchange: exchange}, nil
}

// Name identifies sink in logs and metrics.
func (s *AMQPSink) Name() string { return "amqp" }

// Handle publishes event with its type as routing key.
func (s *AMQPSink) Handle(ctx context.Context, event model.OrderEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	ch, err := s.conn.channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	return ch.PublishWithContext(ctx, s.exchange, string(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	})
}

// Close releases broker connection.
func (s *AMQPSink) Close() error {
	return s.conn.Close()
}
