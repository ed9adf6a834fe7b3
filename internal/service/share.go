package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type ShareService struct {
	logger *slog.Logger
	orders OrderRepo
	shares ShareRepo
	cache  Cache
	cfg    config.Share
	clock  Clock
}

func NewShareService(logger *slog.Logger, orders OrderRepo, shares ShareRepo, cache Cache, cfg config.Share, clock Clock) *ShareService {
	return &ShareService{
		logger: logger.With(slog.String("service", "share")),
		orders: orders,
		shares: shares,
		cache:  cache,
		cfg:    cfg,
		clock:  clock,
	}
}

// CreateShare issues the payment link of an order for its owner. A live link issued earlier is returned as is.
func (s *ShareService) CreateShare(ctx context.Context, userID, orderID string) (entities.ShareLink, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return entities.ShareLink{}, err
	}
	if order.UserID != userID {
		return entities.ShareLink{}, entities.ErrForbidden
	}
	if !order.Payable() {
		return entities.ShareLink{}, fmt.Errorf("%w: order is %s, payment %s", entities.ErrInvalidState, order.Status, order.PaymentStatus)
	}

	existing, err := s.shares.GetShareByOrderID(ctx, orderID)
	switch {
	case err == nil:
		return s.reuse(existing)
	case !errors.Is(err, entities.ErrNotFound):
		return entities.ShareLink{}, err
	}

	token, err := NewToken(s.cfg.TokenLength)
	if err != nil {
		return entities.ShareLink{}, err
	}
	now := s.clock()
	share := entities.SharedOrder{
		ID:        uuid.NewString(),
		Token:     token,
		OrderID:   orderID,
		ExpiresAt: now.Add(s.cfg.TTL),
		Status:    entities.PaymentPending,
		CreatedAt: now,
	}

	created, err := s.shares.CreateShare(ctx, share)
	if err != nil {
		return entities.ShareLink{}, err
	}
	if !created {
		// параллельный запрос успел создать ссылку раньше
		existing, err := s.shares.GetShareByOrderID(ctx, orderID)
		if err != nil {
			return entities.ShareLink{}, err
		}
		return s.reuse(existing)
	}

	s.logger.InfoContext(ctx, "shared order created", slog.String("order_id", orderID), slog.Time("expires_at", share.ExpiresAt))
	return s.link(share), nil
}

func (s *ShareService) reuse(share entities.SharedOrder) (entities.ShareLink, error) {
	if share.Expired(s.clock()) {
		return entities.ShareLink{}, entities.ErrShareExpired
	}
	return s.link(share), nil
}

func (s *ShareService) link(share entities.SharedOrder) entities.ShareLink {
	return entities.ShareLink{
		Token:     share.Token,
		URL:       SharedOrderURL(s.cfg.PublicOrigin, share.Token),
		ExpiresAt: share.ExpiresAt,
	}
}

func SharedOrderURL(origin, token string) string {
	return origin + "/shared-order/" + token
}

// GetSharedOrder returns the read-only view of a shared order. Expired and settled shares stay viewable.
func (s *ShareService) GetSharedOrder(ctx context.Context, token string) (entities.SharedOrderView, error) {
	share, err := s.shares.GetShareByToken(ctx, token)
	if err != nil {
		return entities.SharedOrderView{}, err
	}

	var (
		order entities.Order
		items []entities.OrderItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.orders.GetOrder(gctx, share.OrderID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items(gctx, share.OrderID)
		return err
	})
	if err := g.Wait(); err != nil {
		return entities.SharedOrderView{}, err
	}

	return entities.SharedOrderView{
		Token:         share.Token,
		OrderNumber:   order.OrderNumber,
		Items:         items,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Shipping:      order.Shipping,
		Total:         order.Total,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		ExpiresAt:     share.ExpiresAt,
		State:         share.State(order, s.clock()),
	}, nil
}

// items are immutable snapshots, so they are safe to cache.
func (s *ShareService) items(ctx context.Context, orderID string) ([]entities.OrderItem, error) {
	if data, ok := s.cache.Get(orderID); ok {
		items, err := entities.UnmarshalItems(data)
		if err == nil {
			return items, nil
		}
		s.logger.WarnContext(ctx, "failed to decode cached items", slog.String("order_id", orderID), slog.Any("error", err))
	}

	items, err := s.orders.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	data, err := entities.MarshalItems(items)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode items", slog.String("order_id", orderID), slog.Any("error", err))
		return items, nil
	}
	s.cache.Set(orderID, data)
	return items, nil
}
