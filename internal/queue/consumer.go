package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sethvargo/go-retry"
)

// Audit log files, relative to the consumer's log directory.
const (
	UserLogFile       = "users.log"
	SuggestionLogFile = "suggestions.log"
)

// AuditConsumer drains the user.registered and suggestion.created queues
// and appends one line per event to <dir>/users.log or
// <dir>/suggestions.log.
type AuditConsumer struct {
	url string
	dir string
	log *slog.Logger
}

func NewAuditConsumer(url, dir string, log *slog.Logger) *AuditConsumer {
	return &AuditConsumer{url: url, dir: dir, log: log.With(slog.String("component", "audit-consumer"))}
}

// Run connects to the broker and consumes until ctx is cancelled. Dial
// failures and dropped connections are retried with exponential backoff
// capped at 30s; a message that cannot be handled is rejected without
// requeue.
func (c *AuditConsumer) Run(ctx context.Context) error {
	b := retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("dial failed", slog.Any("err", err))
			return retry.RetryableError(err)
		}
		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("consume loop ended, reconnecting", slog.Any("err", err))
		return retry.RetryableError(err)
	})
}

func (c *AuditConsumer) subscribe(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

func (c *AuditConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("set qos failed", slog.Any("err", err))
	}
	users, err := c.subscribe(ch, UserRegisteredQueue)
	if err != nil {
		return err
	}
	suggestions, err := c.subscribe(ch, SuggestionCreatedQueue)
	if err != nil {
		return err
	}

	for {
		var (
			d     amqp.Delivery
			ok    bool
			queue string
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-users:
			queue = UserRegisteredQueue
		case d, ok = <-suggestions:
			queue = SuggestionCreatedQueue
		}
		if !ok {
			return fmt.Errorf("%s deliveries channel closed", queue)
		}
		if err := c.handleMessage(queue, d.Body); err != nil {
			c.log.Error("handle message failed", slog.String("queue", queue), slog.Any("err", err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func (c *AuditConsumer) handleMessage(queue string, body []byte) error {
	var (
		file string
		line string
	)
	switch queue {
	case UserRegisteredQueue:
		var ev UserRegisteredEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		if ev.UserID == "" {
			return errors.New("event without user_id")
		}
		file = UserLogFile
		line = fmt.Sprintf("[%s] User registered | user_id=%s | email=%s | company=%q\n",
			ev.RegisteredAt, ev.UserID, ev.Email, ev.CompanyName)
	case SuggestionCreatedQueue:
		var ev SuggestionCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		if ev.SuggestionID == "" {
			return errors.New("event without suggestion_id")
		}
		file = SuggestionLogFile
		line = fmt.Sprintf("[%s] Suggestion created | suggestion_id=%s | user_id=%s | source=%s | public=%t | headline=%q\n",
			ev.CreatedAt, ev.SuggestionID, ev.UserID, ev.Source, ev.IsPublic, ev.Headline)
	default:
		return fmt.Errorf("unknown queue %q", queue)
	}
	return c.appendLine(file, line)
}

func (c *AuditConsumer) appendLine(file, line string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.dir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.dir, file), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
