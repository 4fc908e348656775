// Package events ships portfolio domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/logger"
)

// Publisher delivers committed domain events.
type Publisher interface {
	Publish(ctx context.Context, events ...models.Event) error
	Close() error
}

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Message is the JSON value written for every event.
type Message struct {
	Type          string    `json:"type"`
	PortfolioID   string    `json:"portfolio_id"`
	HoldingID     string    `json:"holding_id,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewMessage(e models.Event) Message {
	m := Message{
		Type:        string(e.Type),
		PortfolioID: e.PortfolioID.String(),
		OccurredAt:  e.OccurredAt,
	}
	if !e.HoldingID.IsZero() {
		m.HoldingID = e.HoldingID.String()
	}
	if !e.TransactionID.IsZero() {
		m.TransactionID = e.TransactionID.String()
	}
	return m
}

// KafkaPublisher keys every message by portfolio id, so a consumer sees the
// events of one portfolio in commit order.
type KafkaPublisher struct {
	writer Writer
}

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return NewPublisherWithWriter(w), nil
}

func NewPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...models.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(NewMessage(e))
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.PortfolioID.String()),
			Value: value,
			Time:  e.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(e.Type)},
			},
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher is used when no broker is configured; events only reach the
// debug log.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, events ...models.Event) error {
	for _, e := range events {
		logger.Ctx(ctx).Debug().
			Str("event_type", string(e.Type)).
			Str("portfolio_id", e.PortfolioID.String()).
			Msg("domain_event")
	}
	return nil
}

func (LogPublisher) Close() error { return nil }
