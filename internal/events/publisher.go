package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

var published = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shared_payment",
	Subsystem: "events",
	Name:      "published_total",
	Help:      "Payment events handed to Kafka, by type and result.",
}, []string{"type", "result"})

// Message is the wire format of payment events.
type Message struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ShareToken  string    `json:"share_token,omitempty"`
	Method      string    `json:"method,omitempty"`
	Amount      string    `json:"amount"`
	PayerID     string    `json:"payer_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewMessage(e entities.PaymentEvent) Message {
	return Message{
		EventID:     e.EventID,
		Type:        string(e.Type),
		OrderID:     e.OrderID,
		OrderNumber: e.OrderNumber,
		ShareToken:  e.ShareToken,
		Method:      e.Method,
		Amount:      e.Amount.StringFixed(2),
		PayerID:     e.PayerID,
		OccurredAt:  e.OccurredAt.UTC(),
	}
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	logger *slog.Logger
	writer MessageWriter
}

func NewPublisher(logger *slog.Logger, writer MessageWriter) *Publisher {
	return &Publisher{
		logger: logger.With(slog.String("component", "events")),
		writer: writer,
	}
}

func NewWriter(cfg config.Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireAll,
	}
}

// Publish writes the event keyed by order id, so events of one order keep their order.
func (p *Publisher) Publish(ctx context.Context, event entities.PaymentEvent) error {
	value, err := json.Marshal(NewMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal payment event: %w", err)
	}

	carrier := HeaderCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, &carrier)

	msg := kafka.Message{
		Key:     []byte(event.OrderID),
		Value:   value,
		Headers: append(carrier, kafka.Header{Key: "event_type", Value: []byte(event.Type)}),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		published.WithLabelValues(string(event.Type), "error").Inc()
		return fmt.Errorf("failed to write payment event: %w", err)
	}

	published.WithLabelValues(string(event.Type), "ok").Inc()
	p.logger.DebugContext(ctx, "payment event published",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID),
	)
	return nil
}

// HeaderCarrier adapts kafka headers to the otel TextMapCarrier in both directions.
type HeaderCarrier []kafka.Header

func (c HeaderCarrier) Get(key string) string {
	for _, h := range c {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *HeaderCarrier) Set(key, value string) {
	*c = append(*c, kafka.Header{Key: key, Value: []byte(value)})
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, len(c))
	for i, h := range c {
		keys[i] = h.Key
	}
	return keys
}
