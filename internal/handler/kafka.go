package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/events"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type OrderSaver interface {
	SaveOrder(ctx context.Context, order entities.Order) error
}

// MessageReader is the part of kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaHandler struct {
	dlq      MessageWriter
	reader   MessageReader
	logger   *slog.Logger
	validate *validator.Validate
	saver    OrderSaver
	tracer   trace.Tracer
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, saver OrderSaver) *KafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.OrdersTopic,
		MaxWait: cfg.ReaderMaxWait,
	})
	dlq := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: cfg.BatchTimeout,
	}
	return NewKafkaHandlerWith(logger, reader, dlq, saver)
}

func NewKafkaHandlerWith(logger *slog.Logger, reader MessageReader, dlq MessageWriter, saver OrderSaver) *KafkaHandler {
	return &KafkaHandler{
		logger:   logger.With(slog.String("handler", "kafka")),
		reader:   reader,
		dlq:      dlq,
		validate: validator.New(),
		saver:    saver,
		tracer:   otel.Tracer("shared-payment-service/handler"),
	}
}

func (h *KafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		// Без записи в DLQ сообщение не коммитим, чтобы оно не потерялось
		if err := h.handle(ctx, m); err != nil {
			h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
			continue
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *KafkaHandler) handle(ctx context.Context, m kafka.Message) error {
	carrier := events.HeaderCarrier(m.Headers)
	ctx = otel.GetTextMapPropagator().Extract(ctx, &carrier)
	ctx, span := h.tracer.Start(ctx, "kafka.SaveOrder", trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", m.Topic),
			attribute.Int64("messaging.kafka.offset", m.Offset),
		),
	)
	defer span.End()

	start := time.Now()
	// В операции сохранения уже есть retry
	err := h.handleSaveOrder(ctx, m)
	orderProcessingDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		ordersProcessed.Inc()
		return nil
	}

	ordersFailed.Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	h.logger.ErrorContext(ctx, "failed to handle message",
		slog.Int64("offset", m.Offset),
		slog.String("key", string(m.Key)),
		slog.Any("error", err),
	)

	// В библиотеке уже есть retry
	if err := h.WriteToDLQ(ctx, m); err != nil {
		return err
	}
	ordersDLQ.Inc()
	return nil
}

func (h *KafkaHandler) handleSaveOrder(ctx context.Context, m kafka.Message) error {
	var order Order
	if err := json.Unmarshal(m.Value, &order); err != nil {
		return fmt.Errorf("failed to unmarshal order: %w", err)
	}

	if err := h.validate.Struct(order); err != nil {
		return fmt.Errorf("invalid order data: %w", err)
	}
	if err := order.checkAmounts(); err != nil {
		return fmt.Errorf("invalid order data: %w", err)
	}

	return h.saver.SaveOrder(ctx, OrderJSONToEntity(order))
}

func (h *KafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	return h.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	})
}

func (h *KafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
