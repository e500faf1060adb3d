package repository

import (
	"context"
	"time"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
)

type inventoryRepository struct {
	*collection[entity.InventoryItem]
}

func NewInventoryRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.InventoryRepository {
	return &inventoryRepository{
		collection: newCollection[entity.InventoryItem](store, locker, domainRepo.KeyInventory),
	}
}

func (r *inventoryRepository) AdjustStock(ctx context.Context, id string, delta int) (*entity.InventoryItem, error) {
	return r.Update(ctx, id, func(item *entity.InventoryItem) error {
		if item.Stock+delta < 0 {
			return domainRepo.ErrInsufficientStock
		}
		item.Stock += delta
		item.UpdatedDate = time.Now()
		return nil
	})
}
