package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/application"
	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
	"github.com/ecommerce-refarch/product-catalog-service/pkg/idempotency"
	"github.com/ecommerce-refarch/product-catalog-service/pkg/tracing"
)

// Consumer is the message router: one consumer group over the validate-items
// and restore-stock topics, dispatching each message by the topic it arrived
// on. A malformed payload is logged and committed; an infrastructure failure
// during validation leaves the message uncommitted so the broker redelivers.
type Consumer struct {
	log         *slog.Logger
	reader      *kafka.Reader
	validation  *application.ValidationWorkflow
	restoration *application.RestorationWorkflow
	idem        *idempotency.Store
	tracer      trace.Tracer

	validateTopic string
	restoreTopic  string
}

type ConsumerConfig struct {
	Brokers       []string
	Group         string
	ValidateTopic string
	RestoreTopic  string
}

func NewConsumer(log *slog.Logger, cfg ConsumerConfig, validation *application.ValidationWorkflow, restoration *application.RestorationWorkflow, idem *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.Group,
		GroupTopics: []string{cfg.ValidateTopic, cfg.RestoreTopic},
	})
	return &Consumer{
		log:           log,
		reader:        r,
		validation:    validation,
		restoration:   restoration,
		idem:          idem,
		tracer:        otel.Tracer("catalog-consumer"),
		validateTopic: cfg.ValidateTopic,
		restoreTopic:  cfg.RestoreTopic,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.idem.Seen(ctx, key)
		if err != nil {
			c.log.Error("idempotency check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		if err := c.Handle(msgCtx, msg.Topic, msg.Value); err != nil {
			// Left uncommitted on purpose: at-least-once redelivery
			// is the retry mechanism for store/bus faults.
			c.log.Error("message processing failed", "topic", msg.Topic, "err", err)
			continue
		}
		if err := c.idem.Mark(ctx, key); err != nil {
			c.log.Error("idempotency mark failed", "err", err)
		}
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

// Handle classifies one inbound payload by topic and runs the matching
// workflow. Decode failures are swallowed after logging so one bad message
// never stalls the loop; only infrastructure faults propagate.
func (c *Consumer) Handle(ctx context.Context, topic string, payload []byte) error {
	c.log.Info("received message", "topic", topic)
	switch topic {
	case c.validateTopic:
		ctx, span := c.tracer.Start(ctx, "ConsumeValidateItems")
		defer span.End()

		var req domain.OrderValidationRequested
		if err := json.Unmarshal(payload, &req); err != nil {
			c.log.Error("malformed validation payload", "err", err)
			return nil
		}
		return c.validation.Handle(ctx, req)
	case c.restoreTopic:
		ctx, span := c.tracer.Start(ctx, "ConsumeRestoreStock")
		defer span.End()

		var req domain.StockRestoreRequested
		if err := json.Unmarshal(payload, &req); err != nil {
			c.log.Error("malformed restore payload", "err", err)
			return nil
		}
		c.restoration.Handle(ctx, req)
		return nil
	default:
		return fmt.Errorf("no handler for topic %s", topic)
	}
}
