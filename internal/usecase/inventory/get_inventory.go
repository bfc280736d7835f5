package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

type GetInventoryUseCase struct {
	inventoryRepo repository.InventoryRepository
}

func NewGetInventoryUseCase(inventoryRepo repository.InventoryRepository) *GetInventoryUseCase {
	return &GetInventoryUseCase{inventoryRepo: inventoryRepo}
}

func (uc *GetInventoryUseCase) ByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) (*entity.Inventory, error) {
	inv, err := uc.inventoryRepo.FindByMoveRequestID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.ErrInventoryNotFound
	}
	return inv, nil
}
