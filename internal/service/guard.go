package service

import (
	"context"
	"slices"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
)

type InventoryRepo interface {
	LockInventory(ctx context.Context, productIDs []string) (map[string]entities.Stock, error)
	DecrementInventory(ctx context.Context, productID string, quantity int) (bool, error)
}

// Guard reserves stock for an order being finalized. It must run inside the
// settlement transaction: on a shortfall nothing is decremented.
type Guard struct {
	inventory InventoryRepo
}

func NewGuard(inventory InventoryRepo) *Guard {
	return &Guard{inventory: inventory}
}

func (g *Guard) Reserve(ctx context.Context, items []entities.OrderItem) error {
	requested := make(map[string]int, len(items))
	names := make(map[string]string, len(items))
	for _, it := range items {
		requested[it.ProductID] += it.Quantity
		names[it.ProductID] = it.ProductName
	}

	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	stock, err := g.inventory.LockInventory(ctx, ids)
	if err != nil {
		return err
	}

	// сначала проверяем все позиции, потом списываем
	for _, id := range ids {
		if available := stock[id].Available; available < requested[id] {
			return &entities.InsufficientInventoryError{
				ProductID:   id,
				ProductName: names[id],
				Requested:   requested[id],
				Available:   available,
			}
		}
	}

	for _, id := range ids {
		ok, err := g.inventory.DecrementInventory(ctx, id, requested[id])
		if err != nil {
			return err
		}
		if !ok {
			return &entities.InsufficientInventoryError{
				ProductID:   id,
				ProductName: names[id],
				Requested:   requested[id],
				Available:   stock[id].Available,
			}
		}
	}
	return nil
}
