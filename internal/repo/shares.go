package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

// CreateShare inserts the share unless the order already has one.
// It reports whether this call created the row.
func (r *postgresRepo) CreateShare(ctx context.Context, s entities.SharedOrder) (bool, error) {
	query, args := r.qb.Insert("shared_orders").
		Columns("id", "token", "order_id", "expires_at", "status", "created_at").
		Values(s.ID, s.Token, s.OrderID, s.ExpiresAt, s.Status, s.CreatedAt).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		MustSql()

	ok, err := r.execAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to create shared order: %w", err)
	}
	return ok, nil
}

func (r *postgresRepo) getShare(ctx context.Context, where sq.Eq, forUpdate bool) (entities.SharedOrder, error) {
	q := r.qb.Select(shareColumns...).From("shared_orders").Where(where)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	query, args := q.MustSql()

	var share SharedOrder
	if err := r.getContext(ctx, &share, query, args...); err != nil {
		return entities.SharedOrder{}, notFound(err, "shared order")
	}
	return share.ToEntity(), nil
}

func (r *postgresRepo) GetShareByToken(ctx context.Context, token string) (entities.SharedOrder, error) {
	return r.getShare(ctx, sq.Eq{"token": token}, false)
}

func (r *postgresRepo) GetShareByTokenForUpdate(ctx context.Context, token string) (entities.SharedOrder, error) {
	return r.getShare(ctx, sq.Eq{"token": token}, true)
}

func (r *postgresRepo) GetShareByOrderID(ctx context.Context, orderID string) (entities.SharedOrder, error) {
	return r.getShare(ctx, sq.Eq{"order_id": orderID}, false)
}

func (r *postgresRepo) CompareAndSetShareStatus(ctx context.Context, shareID string, from, to entities.PaymentStatus) (bool, error) {
	query, args := r.qb.Update("shared_orders").
		Set("status", to).
		Where(sq.Eq{"id": shareID, "status": from}).
		MustSql()

	ok, err := r.execAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update shared order status: %w", err)
	}
	return ok, nil
}
