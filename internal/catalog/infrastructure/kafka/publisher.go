package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
	"github.com/ecommerce-refarch/product-catalog-service/pkg/tracing"
)

// Publisher emits order-state transitions on the change-order-state topic.
// The write waits for full acks, so message processing does not advance
// until the outcome is on the bus.
type Publisher struct {
	log    *slog.Logger
	writer *kafka.Writer
	topic  string
}

func NewPublisher(log *slog.Logger, brokers []string, topic string) *Publisher {
	return &Publisher{
		log: log,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		topic: topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, event domain.OrderUpdateRequested) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	headers := tracing.InjectKafkaHeaders(ctx, []kafka.Header{
		{Key: "event_type", Value: []byte("OrderUpdateRequested")},
	})
	msg := kafka.Message{
		Topic:   p.topic,
		Key:     []byte(strconv.FormatUint(event.ID, 10)),
		Value:   payload,
		Headers: headers,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("publish outcome failed", "order_id", event.ID, "err", err)
		return err
	}
	p.log.Info("sent message", "topic", p.topic, "order_id", event.ID, "state", event.State)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
