package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) getOrder(ctx context.Context, where sq.Eq, forUpdate bool) (entities.Order, error) {
	q := r.qb.Select(orderColumns...).From("orders").Where(where)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	query, args := q.MustSql()

	var order Order
	if err := r.getContext(ctx, &order, query, args...); err != nil {
		return entities.Order{}, notFound(err, "order")
	}
	return order.ToEntity(), nil
}

func (r *postgresRepo) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	return r.getOrder(ctx, sq.Eq{"id": orderID}, false)
}

// GetOrderForUpdate locks the order row until the surrounding transaction ends.
func (r *postgresRepo) GetOrderForUpdate(ctx context.Context, orderID string) (entities.Order, error) {
	return r.getOrder(ctx, sq.Eq{"id": orderID}, true)
}

func (r *postgresRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	return r.getOrder(ctx, sq.Eq{"order_number": orderNumber}, false)
}

func (r *postgresRepo) GetOrderItems(ctx context.Context, orderID string) ([]entities.OrderItem, error) {
	query, args := r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id").
		MustSql()

	var rows []OrderItem
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}

	items := make([]entities.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.ToEntity())
	}
	return items, nil
}

// Операции сохранения идемпотентны: ON CONFLICT DO NOTHING
func (r *postgresRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(
			"id", "order_number", "user_id", "status", "payment_status", "payment_method",
			"subtotal", "tax", "shipping", "total", "shipping_address_id", "created_at", "updated_at",
		).
		Values(
			o.ID, o.OrderNumber, o.UserID, o.Status, o.PaymentStatus, nullString(o.PaymentMethod),
			o.Subtotal, o.Tax, o.Shipping, o.Total, nullString(o.ShippingAddressID), o.CreatedAt, o.CreatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresRepo) SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("id", "order_id", "product_id", "product_name", "quantity", "unit_price").
		Suffix("ON CONFLICT (id) DO NOTHING")
	for _, it := range items {
		q = q.Values(it.ID, orderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

// CompareAndSetPayment moves a pending, unpaid order to (status, payment).
// It reports false when the order already left the pending state.
func (r *postgresRepo) CompareAndSetPayment(
	ctx context.Context, orderID string, status entities.OrderStatus, payment entities.PaymentStatus, method string,
) (bool, error) {
	q := r.qb.Update("orders").
		Set("status", status).
		Set("payment_status", payment).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{
			"id":             orderID,
			"status":         entities.StatusPending,
			"payment_status": entities.PaymentPending,
		})
	if method != "" {
		q = q.Set("payment_method", method)
	}
	query, args := q.MustSql()

	ok, err := r.execAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order payment: %w", err)
	}
	return ok, nil
}

// SetGatewayReference records the outgoing gateway reference while the payment is still pending.
func (r *postgresRepo) SetGatewayReference(ctx context.Context, orderID, reference, method string) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("gateway_reference", reference).
		Set("payment_method", method).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": orderID, "payment_status": entities.PaymentPending}).
		MustSql()

	ok, err := r.execAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to set gateway reference: %w", err)
	}
	return ok, nil
}

// UpdateStatus applies an order status change only if the order is still in from.
func (r *postgresRepo) UpdateStatus(
	ctx context.Context, orderID string, from, to entities.OrderStatus, trackingNumber string,
) (bool, error) {
	q := r.qb.Update("orders").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": orderID, "status": from})
	if trackingNumber != "" {
		q = q.Set("tracking_number", trackingNumber)
	}
	query, args := q.MustSql()

	ok, err := r.execAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return ok, nil
}
