package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_Publish(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	event := entities.PaymentEvent{
		EventID:     "e-1",
		Type:        entities.EventPaymentCompleted,
		OrderID:     "o-1",
		OrderNumber: "SO-1001",
		ShareToken:  "tok",
		Method:      "balance",
		Amount:      decimal.RequireFromString("100"),
		OccurredAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("MSK", 3*3600)),
	}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	t.Run("OK", func(t *testing.T) {
		w := &captureWriter{}
		require.NoError(t, events.NewPublisher(logger, w).Publish(ctx, event))
		require.Len(t, w.msgs, 1)

		m := w.msgs[0]
		assert.Equal(t, "o-1", string(m.Key))
		assert.Equal(t, "payment.completed", header(m, "event_type"))
		assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", header(m, "traceparent"))

		var got map[string]any
		require.NoError(t, json.Unmarshal(m.Value, &got))
		assert.Equal(t, "100.00", got["amount"])
		assert.Equal(t, "2026-03-01T09:00:00Z", got["occurred_at"])
		assert.NotContains(t, got, "payer_id")
	})

	t.Run("write error", func(t *testing.T) {
		w := &captureWriter{err: errors.New("leader not available")}
		err := events.NewPublisher(logger, w).Publish(ctx, event)
		assert.ErrorContains(t, err, "leader not available")
	})
}
