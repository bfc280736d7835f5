package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// ModifyInventoryUseCase — правки описи клиентом до подтверждения.
type ModifyInventoryUseCase struct {
	inventoryRepo repository.InventoryRepository
}

func NewModifyInventoryUseCase(inventoryRepo repository.InventoryRepository) *ModifyInventoryUseCase {
	return &ModifyInventoryUseCase{inventoryRepo: inventoryRepo}
}

func (uc *ModifyInventoryUseCase) load(ctx context.Context, moveRequestID uuid.UUID) (*entity.Inventory, error) {
	inv, err := uc.inventoryRepo.FindByMoveRequestID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.ErrInventoryNotFound
	}
	return inv, nil
}

func (uc *ModifyInventoryUseCase) save(ctx context.Context, inv *entity.Inventory) (*entity.Inventory, error) {
	if err := uc.inventoryRepo.Update(ctx, inv); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить опись")
	}
	return inv, nil
}

func (uc *ModifyInventoryUseCase) AddItem(ctx context.Context, moveRequestID uuid.UUID, input ItemInput) (*entity.Inventory, error) {
	inv, err := uc.load(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}

	item, err := newItem(input)
	if err != nil {
		return nil, err
	}
	if err := inv.AddItem(item); err != nil {
		return nil, err
	}

	return uc.save(ctx, inv)
}

func (uc *ModifyInventoryUseCase) UpdateItem(ctx context.Context, moveRequestID uuid.UUID, index int, input ItemInput) (*entity.Inventory, error) {
	inv, err := uc.load(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}

	item, err := newItem(input)
	if err != nil {
		return nil, err
	}
	if err := inv.UpdateItem(index, item); err != nil {
		return nil, err
	}

	return uc.save(ctx, inv)
}

func (uc *ModifyInventoryUseCase) RemoveItem(ctx context.Context, moveRequestID uuid.UUID, index int) (*entity.Inventory, error) {
	inv, err := uc.load(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}

	if err := inv.RemoveItem(index); err != nil {
		return nil, err
	}

	return uc.save(ctx, inv)
}

func (uc *ModifyInventoryUseCase) ReplaceItems(ctx context.Context, moveRequestID uuid.UUID, inputs []ItemInput) (*entity.Inventory, error) {
	inv, err := uc.load(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.Item, 0, len(inputs))
	for _, in := range inputs {
		item, err := newItem(in)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := inv.ReplaceItems(items); err != nil {
		return nil, err
	}

	return uc.save(ctx, inv)
}
