package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/deanb221/caravan/internal/pkg/config"

	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	Publish(ctx context.Context, key string, email Email) error
	Close() error
}

// KafkaPublisher hands staff emails to the mailer service over Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, email Email) error {
	value, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(email.Event)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher writes emails to the log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, key string, email Email) error {
	p.logger.InfoContext(ctx, "staff notification",
		"key", key,
		"to", email.To,
		"subject", email.Subject,
		"event", email.Event,
		"body", email.Body)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// NewPublisher picks Kafka when brokers are configured.
func NewPublisher(cfg config.KafkaConfig, logger *slog.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		return NewLogPublisher(logger)
	}
	return NewKafkaPublisher(cfg)
}
