package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/internal/config"
	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/pkg/logger"
)

const (
	TopicCVEvents             = "cv.events"
	TopicRecommendationEvents = "recommendation.events"
)

// TopicFor routes an event to its topic.
func TopicFor(t activity.EventType) string {
	if t.IsRecommendation() {
		return TopicRecommendationEvents
	}
	return TopicCVEvents
}

type KafkaProducerClient struct {
	CVEventsWriter             *kafka.Writer
	RecommendationEventsWriter *kafka.Writer
	logger                     logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
			Async:    true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Error("Failed to deliver Kafka messages", err, zap.String("topic", topic), zap.Int("count", len(messages)))
				}
			},
		}
	}

	log.Info("Initialize Kafka Producers successfully", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		CVEventsWriter:             newWriter(TopicCVEvents),
		RecommendationEventsWriter: newWriter(TopicRecommendationEvents),
		logger:                     log,
	}, nil
}

// Publish enqueues e keyed by its CV so every event of one CV lands on the same partition.
func (c *KafkaProducerClient) Publish(ctx context.Context, e activity.Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Type, err)
	}

	writer := c.CVEventsWriter
	if TopicFor(e.Type) == TopicRecommendationEvents {
		writer = c.RecommendationEventsWriter
	}

	return writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.CVID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.CVEventsWriter != nil {
		if err := c.CVEventsWriter.Close(); err != nil {
			c.logger.Warn("Failed to close cv events writer", zap.Error(err))
		}
	}
	if c.RecommendationEventsWriter != nil {
		if err := c.RecommendationEventsWriter.Close(); err != nil {
			c.logger.Warn("Failed to close recommendation events writer", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

// DecodeEvent parses a message value produced by Publish.
func DecodeEvent(value []byte) (activity.Event, error) {
	var e activity.Event
	if err := json.Unmarshal(value, &e); err != nil {
		return e, fmt.Errorf("unmarshal event: %w", err)
	}
	if !e.Type.Known() {
		return e, fmt.Errorf("unknown event type %q", e.Type)
	}
	return e, nil
}
