package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/provider"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/trm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type PaymentConfigRepo interface {
	ListActiveMethods(ctx context.Context) ([]entities.PaymentMethod, error)
	GetActiveMethod(ctx context.Context, method string) (entities.PaymentMethod, error)
	GetGatewayConfig(ctx context.Context, gatewayID string) (entities.GatewayConfig, error)
	GetGatewayConfigByName(ctx context.Context, name string) (entities.GatewayConfig, error)
}

type ProviderResolver interface {
	Resolve(cfg entities.GatewayConfig) (provider.Provider, error)
}

type PaymentService struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	shares    ShareRepo
	payments  PaymentConfigRepo
	providers ProviderResolver
	settler   *Settler
	cfg       config.Share
	clock     Clock
	tracer    trace.Tracer
}

func NewPaymentService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	shares ShareRepo,
	payments PaymentConfigRepo,
	providers ProviderResolver,
	settler *Settler,
	cfg config.Share,
	clock Clock,
) *PaymentService {
	return &PaymentService{
		logger:    logger.With(slog.String("service", "payment")),
		txManager: txManager,
		orders:    orders,
		shares:    shares,
		payments:  payments,
		providers: providers,
		settler:   settler,
		cfg:       cfg,
		clock:     clock,
		tracer:    otel.Tracer("shared-payment-service/service"),
	}
}

type binding struct {
	cfg      entities.GatewayConfig
	provider provider.Provider
}

// PaymentMethods lists methods that are enabled, belong to an active and valid provider config
// and are declared by that provider.
func (s *PaymentService) PaymentMethods(ctx context.Context) ([]entities.PaymentMethod, error) {
	methods, err := s.payments.ListActiveMethods(ctx)
	if err != nil {
		return nil, err
	}

	bindings := make(map[string]*binding)
	available := make([]entities.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		b, seen := bindings[m.GatewayID]
		if !seen {
			cfg, p, err := s.resolveGateway(ctx, m.GatewayID)
			switch {
			case err == nil:
				b = &binding{cfg: cfg, provider: p}
			case !errors.Is(err, entities.ErrMethodUnavailable):
				return nil, err
			}
			bindings[m.GatewayID] = b
		}
		if b == nil || !provider.Declares(b.provider, b.cfg, m.Method) {
			continue
		}
		available = append(available, m)
	}
	return available, nil
}

// resolveGateway loads a provider config and validates it. Misconfigured or inactive
// providers make their methods unavailable.
func (s *PaymentService) resolveGateway(ctx context.Context, gatewayID string) (entities.GatewayConfig, provider.Provider, error) {
	cfg, err := s.payments.GetGatewayConfig(ctx, gatewayID)
	if errors.Is(err, entities.ErrNotFound) {
		return cfg, nil, entities.ErrMethodUnavailable
	}
	if err != nil {
		return cfg, nil, err
	}
	if !cfg.Active {
		return cfg, nil, entities.ErrMethodUnavailable
	}

	p, err := s.providers.Resolve(cfg)
	if err != nil {
		s.logger.WarnContext(ctx, "payment provider is misconfigured",
			slog.String("gateway", cfg.Name), slog.Any("error", err))
		return cfg, nil, entities.ErrMethodUnavailable
	}
	return cfg, p, nil
}

// SubmitPayment starts or performs the payment of a shared order by whoever holds the token.
func (s *PaymentService) SubmitPayment(ctx context.Context, token, method, payerID string) (entities.PaymentOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "payment.Submit", trace.WithAttributes(attribute.String("payment.method", method)))
	defer span.End()

	outcome, err := s.submit(ctx, token, method, payerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment rejected")
	}
	return outcome, err
}

func (s *PaymentService) submit(ctx context.Context, token, method, payerID string) (entities.PaymentOutcome, error) {
	share, err := s.shares.GetShareByToken(ctx, token)
	if err != nil {
		return entities.PaymentOutcome{}, err
	}
	if share.Expired(s.clock()) {
		return entities.PaymentOutcome{}, entities.ErrShareExpired
	}

	order, err := s.orders.GetOrder(ctx, share.OrderID)
	if err != nil {
		return entities.PaymentOutcome{}, err
	}
	if order.Paid() {
		return entities.PaymentOutcome{}, entities.ErrAlreadyPaid
	}
	if !order.Payable() {
		return entities.PaymentOutcome{}, fmt.Errorf("%w: order is %s", entities.ErrInvalidState, order.Status)
	}

	// список методов перечитывается на каждый платеж, кэш не используется
	pm, err := s.payments.GetActiveMethod(ctx, method)
	if errors.Is(err, entities.ErrNotFound) {
		return entities.PaymentOutcome{}, entities.ErrMethodUnavailable
	}
	if err != nil {
		return entities.PaymentOutcome{}, err
	}
	cfg, p, err := s.resolveGateway(ctx, pm.GatewayID)
	if err != nil {
		return entities.PaymentOutcome{}, err
	}
	if !provider.Declares(p, cfg, method) {
		return entities.PaymentOutcome{}, entities.ErrMethodUnavailable
	}

	ref := entities.SharedRef(token)
	res := p.ProcessPayment(ctx, cfg, entities.PaymentRequest{
		Amount:    order.Total,
		Reference: ref,
		Method:    method,
		Subject:   "Order " + order.OrderNumber,
		NotifyURL: s.notifyURL(cfg),
		ReturnURL: s.successURL(token),
	})
	if !res.Success {
		s.logger.WarnContext(ctx, "payment provider failed",
			slog.String("gateway", cfg.Name), slog.String("order_id", order.ID), slog.String("error", res.Error))
		return entities.PaymentOutcome{}, &entities.GatewayError{Message: res.Error}
	}

	if res.Settlement == entities.SettlementDirect {
		return s.settleDirect(ctx, token, method, payerID)
	}

	ok, err := s.orders.SetGatewayReference(ctx, order.ID, ref.String(), method)
	if err != nil {
		return entities.PaymentOutcome{}, err
	}
	if !ok {
		return entities.PaymentOutcome{}, entities.ErrAlreadyPaid
	}

	s.logger.InfoContext(ctx, "payment redirect issued",
		slog.String("order_id", order.ID), slog.String("gateway", cfg.Name), slog.String("method", method))
	return entities.PaymentOutcome{RedirectURL: res.PaymentURL}, nil
}

func (s *PaymentService) settleDirect(ctx context.Context, token, method, payerID string) (entities.PaymentOutcome, error) {
	var (
		order entities.Order
		req   SettleRequest
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		share, err := s.shares.GetShareByTokenForUpdate(ctx, token)
		if err != nil {
			return err
		}
		if share.Expired(s.clock()) {
			return entities.ErrShareExpired
		}

		req = SettleRequest{OrderID: share.OrderID, Share: &share, Method: method, PayerID: payerID}
		order, err = s.settler.Complete(ctx, req)
		return err
	})
	if err != nil {
		return entities.PaymentOutcome{}, err
	}

	s.settler.Publish(ctx, entities.EventPaymentCompleted, order, req)
	s.logger.InfoContext(ctx, "shared order settled", slog.String("order_id", order.ID), slog.String("method", method))
	return entities.PaymentOutcome{Settled: true, RedirectURL: s.successURL(token)}, nil
}

func (s *PaymentService) successURL(token string) string {
	return s.cfg.PublicOrigin + "/payment/success?share=" + url.QueryEscape(token)
}

func (s *PaymentService) notifyURL(cfg entities.GatewayConfig) string {
	if cfg.WebhookURL != "" {
		return cfg.WebhookURL
	}
	return s.cfg.PublicOrigin + "/webhooks/" + url.PathEscape(cfg.Name)
}
