package event

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/pkg/logger"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type EventHandler func(ctx context.Context, e activity.Event) error

// Consumer feeds decoded events to a handler one message at a time. A message
// is committed only once it has been handled or found undecodable, and the
// next one is not fetched before that, so a committed offset never skips an
// unhandled event.
type Consumer struct {
	reader    MessageReader
	handle    EventHandler
	logger    logger.Logger
	baseDelay time.Duration
	maxDelay  time.Duration
}

func NewConsumer(reader MessageReader, handle EventHandler, log logger.Logger) *Consumer {
	return &Consumer{
		reader:    reader,
		handle:    handle,
		logger:    log,
		baseDelay: time.Second,
		maxDelay:  time.Minute,
	}
}

// Run blocks until ctx ends.
func (c *Consumer) Run(ctx context.Context) {
	fetchFailures := 0
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fetchFailures++
			c.logger.Error("Failed to read message from Kafka", err, zap.Int("attempt", fetchFailures))
			if !c.sleep(ctx, fetchFailures) {
				return
			}
			continue
		}
		fetchFailures = 0

		if !c.process(ctx, msg) {
			// Uncommitted: the group resumes from this message after a restart.
			return
		}
	}
}

// process reports false when ctx ended before msg could be handled.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	e, err := DecodeEvent(msg.Value)
	if err != nil {
		c.logger.Warn("Skipping undecodable event", zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset), zap.Error(err))
		c.commit(ctx, msg)
		return true
	}

	for attempt := 1; ; attempt++ {
		err := c.handle(ctx, e)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return false
		}
		c.logger.Error("Failed to handle event, retrying", err,
			zap.String("event_id", e.ID.String()),
			zap.Int("attempt", attempt),
		)
		if !c.sleep(ctx, attempt) {
			return false
		}
	}

	c.commit(ctx, msg)
	return true
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err, zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset))
	}
}

// sleep waits out the backoff for attempt and reports false if ctx ended first.
func (c *Consumer) sleep(ctx context.Context, attempt int) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.backoff(attempt)):
		return true
	}
}

// backoff doubles from baseDelay on every attempt, capped at maxDelay.
func (c *Consumer) backoff(attempt int) time.Duration {
	d := c.baseDelay
	for i := 1; i < attempt && d < c.maxDelay; i++ {
		d *= 2
	}
	if d > c.maxDelay {
		return c.maxDelay
	}
	return d
}
