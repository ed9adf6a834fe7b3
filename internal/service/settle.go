package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	GetOrderForUpdate(ctx context.Context, orderID string) (entities.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (entities.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]entities.OrderItem, error)
	CompareAndSetPayment(ctx context.Context, orderID string, status entities.OrderStatus, payment entities.PaymentStatus, method string) (bool, error)
	SetGatewayReference(ctx context.Context, orderID, reference, method string) (bool, error)
}

type ShareRepo interface {
	CreateShare(ctx context.Context, share entities.SharedOrder) (bool, error)
	GetShareByToken(ctx context.Context, token string) (entities.SharedOrder, error)
	GetShareByTokenForUpdate(ctx context.Context, token string) (entities.SharedOrder, error)
	GetShareByOrderID(ctx context.Context, orderID string) (entities.SharedOrder, error)
	CompareAndSetShareStatus(ctx context.Context, shareID string, from, to entities.PaymentStatus) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.PaymentEvent) error
}

type Clock func() time.Time

// SettleRequest identifies the order to finalize. Share is nil for payments made by order number.
type SettleRequest struct {
	OrderID string
	Share   *entities.SharedOrder
	Method  string
	PayerID string
	// Amount, when set, must equal the order total.
	Amount string
}

// Settler performs the guarded order payment transitions. Complete and Fail must be
// called inside a transaction; Publish only after it committed.
type Settler struct {
	logger *slog.Logger
	orders OrderRepo
	shares ShareRepo
	guard  *Guard
	events EventPublisher
	clock  Clock
}

func NewSettler(logger *slog.Logger, orders OrderRepo, shares ShareRepo, guard *Guard, events EventPublisher, clock Clock) *Settler {
	return &Settler{
		logger: logger.With(slog.String("service", "settler")),
		orders: orders,
		shares: shares,
		guard:  guard,
		events: events,
		clock:  clock,
	}
}

// Complete moves the order from (pending, pending) to (processing, completed) and reserves inventory.
// All checks run before the first write.
func (s *Settler) Complete(ctx context.Context, req SettleRequest) (entities.Order, error) {
	order, err := s.orders.GetOrderForUpdate(ctx, req.OrderID)
	if err != nil {
		return entities.Order{}, err
	}

	if order.Paid() {
		return order, entities.ErrAlreadyPaid
	}
	if !order.Payable() {
		return order, fmt.Errorf("%w: order is %s, payment %s", entities.ErrInvalidState, order.Status, order.PaymentStatus)
	}
	if err := entities.ValidateTransition(order.Status, entities.StatusProcessing); err != nil {
		return order, err
	}
	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || !amount.Equal(order.Total) {
			return order, fmt.Errorf("%w: paid amount %q does not match order total %s",
				entities.ErrValidation, req.Amount, order.Total.StringFixed(2))
		}
	}

	items, err := s.orders.GetOrderItems(ctx, order.ID)
	if err != nil {
		return order, err
	}
	if err := s.guard.Reserve(ctx, items); err != nil {
		return order, err
	}

	ok, err := s.orders.CompareAndSetPayment(ctx, order.ID, entities.StatusProcessing, entities.PaymentCompleted, req.Method)
	if err != nil {
		return order, err
	}
	if !ok {
		return order, entities.ErrAlreadyPaid
	}
	if err := s.setShareStatus(ctx, req.Share, entities.PaymentCompleted); err != nil {
		return order, err
	}

	order.Status = entities.StatusProcessing
	order.PaymentStatus = entities.PaymentCompleted
	if req.Method != "" {
		order.PaymentMethod = req.Method
	}
	order.Items = items
	return order, nil
}

// Fail cancels a pending order after a failed payment. It reports false when the order
// was no longer pending and nothing changed.
func (s *Settler) Fail(ctx context.Context, req SettleRequest) (entities.Order, bool, error) {
	order, err := s.orders.GetOrderForUpdate(ctx, req.OrderID)
	if err != nil {
		return entities.Order{}, false, err
	}
	if !order.Payable() {
		return order, false, nil
	}

	ok, err := s.orders.CompareAndSetPayment(ctx, order.ID, entities.StatusCancelled, entities.PaymentFailed, "")
	if err != nil || !ok {
		return order, false, err
	}
	if err := s.setShareStatus(ctx, req.Share, entities.PaymentFailed); err != nil {
		return order, false, err
	}

	order.Status = entities.StatusCancelled
	order.PaymentStatus = entities.PaymentFailed
	return order, true, nil
}

func (s *Settler) setShareStatus(ctx context.Context, share *entities.SharedOrder, to entities.PaymentStatus) error {
	if share == nil {
		return nil
	}
	if _, err := s.shares.CompareAndSetShareStatus(ctx, share.ID, entities.PaymentPending, to); err != nil {
		return err
	}
	return nil
}

// Publish announces a committed transition. Failures are logged, the transition stands.
func (s *Settler) Publish(ctx context.Context, typ entities.PaymentEventType, order entities.Order, req SettleRequest) {
	event := entities.PaymentEvent{
		EventID:     uuid.NewString(),
		Type:        typ,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Method:      order.PaymentMethod,
		Amount:      order.Total,
		PayerID:     req.PayerID,
		OccurredAt:  s.clock(),
	}
	if req.Share != nil {
		event.ShareToken = req.Share.Token
	}

	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish payment event",
			slog.String("type", string(typ)),
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}
}
