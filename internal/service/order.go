package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/trm"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"

	"golang.org/x/sync/errgroup"
)

type OrderStore interface {
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]entities.OrderItem, error)

	// Операции идемпотентны, т.к. используется ON CONFLICT DO NOTHING
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error

	UpdateStatus(ctx context.Context, orderID string, from, to entities.OrderStatus, trackingNumber string) (bool, error)
}

type OrderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderStore
	retry     utils.RetryConfig
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderStore) *OrderService {
	return &OrderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		retry: utils.RetryConfig{
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			MaxAttempts:  5,
			Multiplier:   2,
		},
	}
}

// SaveOrder stores an order snapshot received from checkout. Replays of the same order are no-ops.
func (s *OrderService) SaveOrder(ctx context.Context, order entities.Order) error {
	fn := func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.repo.SaveOrder(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}

			s.logger.DebugContext(ctx, "order saved", slog.String("order_id", order.ID), slog.String("order_number", order.OrderNumber))
			return nil
		})
	}

	return utils.Retry(ctx, s.retry, fn, entities.ErrValidation)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	var (
		order entities.Order
		items []entities.OrderItem
	)
	fn := func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			order, err = s.repo.GetOrder(gctx, orderID)
			return err
		})
		g.Go(func() error {
			var err error
			items, err = s.repo.GetOrderItems(gctx, orderID)
			return err
		})
		return g.Wait()
	}
	if err := utils.Retry(ctx, s.retry, fn, entities.ErrNotFound); err != nil {
		return entities.Order{}, err
	}

	order.Items = items
	return order, nil
}

// UpdateStatus is the operator status edit. The transition is validated against the
// current status and applied only if nobody changed the order meanwhile.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, to entities.OrderStatus, trackingNumber string) (entities.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if err := entities.ValidateTransition(order.Status, to); err != nil {
		return order, err
	}

	ok, err := s.repo.UpdateStatus(ctx, orderID, order.Status, to, trackingNumber)
	if err != nil {
		return order, err
	}
	if !ok {
		return order, fmt.Errorf("%w: order status changed concurrently", entities.ErrInvalidState)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(to)),
	)

	order.Status = to
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	return order, nil
}
