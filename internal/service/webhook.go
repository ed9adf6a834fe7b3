package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/provider"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/trm"

	"github.com/gowebpki/jcs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errAlreadySettled = errors.New("order already settled")

type WebhookRepo interface {
	RecordWebhookEvent(ctx context.Context, rec entities.WebhookRecord) (bool, error)
	MarkWebhookProcessed(ctx context.Context, fingerprint, result string) error
}

type WebhookService struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	shares    ShareRepo
	payments  PaymentConfigRepo
	webhooks  WebhookRepo
	providers ProviderResolver
	settler   *Settler
	clock     Clock
	tracer    trace.Tracer
}

func NewWebhookService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	shares ShareRepo,
	payments PaymentConfigRepo,
	webhooks WebhookRepo,
	providers ProviderResolver,
	settler *Settler,
	clock Clock,
) *WebhookService {
	return &WebhookService{
		logger:    logger.With(slog.String("service", "webhook")),
		txManager: txManager,
		orders:    orders,
		shares:    shares,
		payments:  payments,
		webhooks:  webhooks,
		providers: providers,
		settler:   settler,
		clock:     clock,
		tracer:    otel.Tracer("shared-payment-service/service"),
	}
}

// Process verifies a gateway notification and applies it exactly once. Replays and late
// notifications for already settled orders are acknowledged without changes.
func (s *WebhookService) Process(ctx context.Context, n entities.WebhookNotification) (entities.WebhookResult, error) {
	ctx, span := s.tracer.Start(ctx, "webhook.Process", trace.WithAttributes(attribute.String("gateway", n.Gateway)))
	defer span.End()

	res, err := s.process(ctx, n)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "webhook rejected")
		return res, err
	}
	span.SetAttributes(attribute.String("webhook.outcome", string(res.Outcome)))
	return res, nil
}

func (s *WebhookService) process(ctx context.Context, n entities.WebhookNotification) (entities.WebhookResult, error) {
	if n.Fields[gateway.FieldSign] == "" {
		return entities.WebhookResult{}, fmt.Errorf("%w: missing %s", entities.ErrValidation, gateway.FieldSign)
	}

	cfg, err := s.payments.GetGatewayConfigByName(ctx, n.Gateway)
	if err != nil {
		return entities.WebhookResult{}, err
	}
	p, err := s.providers.Resolve(cfg)
	if err != nil {
		s.logger.WarnContext(ctx, "webhook for misconfigured gateway", slog.String("gateway", n.Gateway), slog.Any("error", err))
		return entities.WebhookResult{}, fmt.Errorf("%w: gateway %s", entities.ErrNotFound, n.Gateway)
	}
	verifier, ok := p.(provider.CallbackVerifier)
	if !ok {
		return entities.WebhookResult{}, fmt.Errorf("%w: gateway %s does not accept callbacks", entities.ErrNotFound, n.Gateway)
	}

	fingerprint, payload, err := Fingerprint(n.Fields)
	if err != nil {
		return entities.WebhookResult{}, err
	}

	if err := verifier.VerifyCallback(cfg, n.Fields); err != nil {
		s.logger.WarnContext(ctx, "webhook signature mismatch",
			slog.String("gateway", n.Gateway),
			slog.String("reference", n.Fields[gateway.FieldOutTradeNo]),
			slog.String("remote", n.Remote),
		)
		s.audit(ctx, entities.WebhookRecord{
			Fingerprint: RejectedFingerprint(fingerprint),
			Gateway:     n.Gateway,
			Reference:   n.Fields[gateway.FieldOutTradeNo],
			Status:      n.Fields[gateway.FieldTradeStatus],
			Payload:     payload,
			Result:      entities.WebhookResultRejected,
			ReceivedAt:  s.clock(),
		})
		return entities.WebhookResult{}, err
	}

	cb, err := gateway.ParseCallback(n.Fields)
	if err != nil {
		return entities.WebhookResult{}, err
	}
	ref, err := entities.ParseGatewayRef(cb.Reference)
	if err != nil {
		return entities.WebhookResult{}, err
	}

	rec := entities.WebhookRecord{
		Fingerprint:    fingerprint,
		Gateway:        n.Gateway,
		Reference:      cb.Reference,
		Status:         cb.Status,
		SignatureValid: true,
		Payload:        payload,
		ReceivedAt:     s.clock(),
	}

	var (
		result entities.WebhookResult
		order  entities.Order
		req    SettleRequest
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		recorded, err := s.webhooks.RecordWebhookEvent(ctx, rec)
		if err != nil {
			return err
		}
		if !recorded {
			result = entities.WebhookResult{Outcome: entities.WebhookDuplicate, Message: "notification already processed"}
			return nil
		}

		req, err = s.settleRequest(ctx, ref)
		if err != nil {
			return err
		}
		req.Method = n.Fields[gateway.FieldType]

		if cb.Succeeded() {
			req.Amount = cb.Amount
			order, err = s.settler.Complete(ctx, req)
			if errors.Is(err, entities.ErrAlreadyPaid) || errors.Is(err, entities.ErrInvalidState) {
				// откатываем, чтобы не оставить списанный остаток
				return errAlreadySettled
			}
			if err != nil {
				return err
			}
			result = entities.WebhookResult{Outcome: entities.WebhookCompleted, Message: "payment completed"}
		} else {
			var changed bool
			order, changed, err = s.settler.Fail(ctx, req)
			if err != nil {
				return err
			}
			if !changed {
				return errAlreadySettled
			}
			result = entities.WebhookResult{Outcome: entities.WebhookFailed, Message: "payment failed"}
		}

		return s.webhooks.MarkWebhookProcessed(ctx, fingerprint, string(result.Outcome))
	})
	switch {
	case errors.Is(err, errAlreadySettled):
		result = entities.WebhookResult{Outcome: entities.WebhookIgnored, Message: "order already settled"}
		s.recordIgnored(ctx, rec)
	case errors.Is(err, entities.ErrInsufficientInventory):
		// платеж прошел, а товара нет, нужен ручной возврат
		s.logger.ErrorContext(ctx, "paid order can't be fulfilled, manual refund required",
			slog.String("gateway", n.Gateway),
			slog.String("reference", cb.Reference),
			slog.String("trade_no", cb.TradeNo),
			slog.Any("error", err),
		)
		return entities.WebhookResult{}, err
	case err != nil:
		return entities.WebhookResult{}, err
	}

	switch result.Outcome {
	case entities.WebhookCompleted:
		s.settler.Publish(ctx, entities.EventPaymentCompleted, order, req)
	case entities.WebhookFailed:
		s.settler.Publish(ctx, entities.EventPaymentFailed, order, req)
	}

	s.logger.InfoContext(ctx, "webhook processed",
		slog.String("gateway", n.Gateway),
		slog.String("reference", cb.Reference),
		slog.String("outcome", string(result.Outcome)),
	)
	return result, nil
}

func (s *WebhookService) settleRequest(ctx context.Context, ref entities.GatewayRef) (SettleRequest, error) {
	switch ref.Kind {
	case entities.RefShared:
		share, err := s.shares.GetShareByTokenForUpdate(ctx, ref.Value)
		if err != nil {
			return SettleRequest{}, err
		}
		return SettleRequest{OrderID: share.OrderID, Share: &share}, nil
	case entities.RefDirect:
		order, err := s.orders.GetOrderByNumber(ctx, ref.Value)
		if err != nil {
			return SettleRequest{}, err
		}
		return SettleRequest{OrderID: order.ID}, nil
	}
	return SettleRequest{}, fmt.Errorf("%w: unknown order reference", entities.ErrValidation)
}

// recordIgnored logs a late notification for an order that was settled by someone else.
func (s *WebhookService) recordIgnored(ctx context.Context, rec entities.WebhookRecord) {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		recorded, err := s.webhooks.RecordWebhookEvent(ctx, rec)
		if err != nil || !recorded {
			return err
		}
		return s.webhooks.MarkWebhookProcessed(ctx, rec.Fingerprint, string(entities.WebhookIgnored))
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record ignored webhook", slog.String("gateway", rec.Gateway), slog.Any("error", err))
	}
}

// audit keeps rejected notifications for investigation. Failures are only logged.
func (s *WebhookService) audit(ctx context.Context, rec entities.WebhookRecord) {
	if _, err := s.webhooks.RecordWebhookEvent(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "failed to record rejected webhook", slog.String("gateway", rec.Gateway), slog.Any("error", err))
	}
}

// RejectedFingerprint keys the audit row of a notification that failed verification.
// It never collides with the key of a verified delivery of the same payload.
func RejectedFingerprint(fingerprint string) string {
	return entities.WebhookResultRejected + ":" + fingerprint
}

// Fingerprint identifies a notification payload independently of field order.
func Fingerprint(fields map[string]string) (string, json.RawMessage, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", nil, fmt.Errorf("failed to canonicalize webhook payload: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), canonical, nil
}
