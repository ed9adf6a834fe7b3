package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

// LockInventory locks the product rows in id order and returns their stock by product id.
// Products missing from the catalog are absent from the result.
func (r *postgresRepo) LockInventory(ctx context.Context, productIDs []string) (map[string]entities.Stock, error) {
	if len(productIDs) == 0 {
		return map[string]entities.Stock{}, nil
	}

	query, args := r.qb.Select("id", "name", "inventory").
		From("products").
		Where(sq.Eq{"id": productIDs}).
		OrderBy("id").
		Suffix("FOR UPDATE").
		MustSql()

	var rows []Stock
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to lock inventory: %w", err)
	}

	stock := make(map[string]entities.Stock, len(rows))
	for _, row := range rows {
		stock[row.ProductID] = entities.Stock{ProductID: row.ProductID, Name: row.Name, Available: row.Inventory}
	}
	return stock, nil
}

// DecrementInventory never drives inventory below zero; it reports false when stock is short.
func (r *postgresRepo) DecrementInventory(ctx context.Context, productID string, quantity int) (bool, error) {
	query, args := r.qb.Update("products").
		Set("inventory", sq.Expr("inventory - ?", quantity)).
		Where(sq.Eq{"id": productID}).
		Where(sq.GtOrEq{"inventory": quantity}).
		MustSql()

	ok, err := r.execAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to decrement inventory: %w", err)
	}
	return ok, nil
}
