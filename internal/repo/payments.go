package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

func (r *postgresRepo) activeMethods() sq.SelectBuilder {
	return r.qb.Select("pm.method", "pm.display_name", "pm.icon_url", "pm.gateway_id", "pg.test_mode").
		From("payment_methods pm").
		Join("payment_gateways pg ON pg.id = pm.gateway_id").
		Where(sq.Eq{"pm.enabled": true, "pg.active": true})
}

// ListActiveMethods returns enabled methods whose gateway is active. It always reads the database.
func (r *postgresRepo) ListActiveMethods(ctx context.Context) ([]entities.PaymentMethod, error) {
	query, args := r.activeMethods().OrderBy("pm.method").MustSql()

	var rows []PaymentMethod
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select payment methods: %w", err)
	}

	methods := make([]entities.PaymentMethod, 0, len(rows))
	for _, row := range rows {
		methods = append(methods, row.ToEntity())
	}
	return methods, nil
}

func (r *postgresRepo) GetActiveMethod(ctx context.Context, method string) (entities.PaymentMethod, error) {
	query, args := r.activeMethods().Where(sq.Eq{"pm.method": method}).MustSql()

	var row PaymentMethod
	if err := r.getContext(ctx, &row, query, args...); err != nil {
		return entities.PaymentMethod{}, notFound(err, "payment method")
	}
	return row.ToEntity(), nil
}

func (r *postgresRepo) getGateway(ctx context.Context, where sq.Eq) (entities.GatewayConfig, error) {
	query, args := r.qb.Select(gatewayColumns...).From("payment_gateways").Where(where).MustSql()

	var row GatewayConfig
	if err := r.getContext(ctx, &row, query, args...); err != nil {
		return entities.GatewayConfig{}, notFound(err, "payment gateway")
	}
	return row.ToEntity(), nil
}

func (r *postgresRepo) GetGatewayConfig(ctx context.Context, gatewayID string) (entities.GatewayConfig, error) {
	return r.getGateway(ctx, sq.Eq{"id": gatewayID})
}

func (r *postgresRepo) GetGatewayConfigByName(ctx context.Context, name string) (entities.GatewayConfig, error) {
	return r.getGateway(ctx, sq.Eq{"name": name})
}
