package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends JSON events to RabbitMQ. It dials a fresh connection per
// publish, which keeps it free of reconnect state at the cost of latency on
// a path where event volume is tiny.
type Publisher struct {
	url string
	log *slog.Logger
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, log *slog.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// Publish declares queueName (durable, idempotent) and sends event as a
// persistent JSON message. Errors are logged and returned so the caller can
// decide to ignore them.
func (p *Publisher) Publish(ctx context.Context, queueName string, event any) error {
	const op = "queue.Publish"
	log := p.log.With(slog.String("op", op), slog.String("queue", queueName))

	body, err := json.Marshal(event)
	if err != nil {
		log.Error("marshal event failed", slog.Any("err", err))
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Warn("dial failed", slog.Any("err", err))
		return fmt.Errorf("%s: dial: %w", op, err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("channel open failed", slog.Any("err", err))
		return fmt.Errorf("%s: channel: %w", op, err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Warn("queue declare failed", slog.Any("err", err))
		return fmt.Errorf("%s: declare: %w", op, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		log.Warn("publish failed", slog.Any("err", err))
		return fmt.Errorf("%s: publish: %w", op, err)
	}
	return nil
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
