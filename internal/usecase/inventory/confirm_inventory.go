package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// ConfirmInventoryUseCase фиксирует опись и продвигает заявку.
// После подтверждения опись неизменяема, заявка готова к оценкам.
type ConfirmInventoryUseCase struct {
	inventoryRepo   repository.InventoryRepository
	moveRequestRepo repository.MoveRequestRepository
	clk             clock.Clock
}

func NewConfirmInventoryUseCase(inventoryRepo repository.InventoryRepository, moveRequestRepo repository.MoveRequestRepository, clk clock.Clock) *ConfirmInventoryUseCase {
	return &ConfirmInventoryUseCase{inventoryRepo: inventoryRepo, moveRequestRepo: moveRequestRepo, clk: clk}
}

func (uc *ConfirmInventoryUseCase) Execute(ctx context.Context, moveRequestID uuid.UUID) (*entity.Inventory, error) {
	inv, err := uc.inventoryRepo.FindByMoveRequestID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.ErrInventoryNotFound
	}

	request, err := uc.moveRequestRepo.FindByID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.ErrMoveRequestNotFound
	}

	now := uc.clk.Now()
	if err := inv.Confirm(now); err != nil {
		return nil, err
	}
	if err := request.ConfirmInventory(now); err != nil {
		return nil, err
	}

	if err := uc.inventoryRepo.Update(ctx, inv); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить опись")
	}
	if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
	}

	return inv, nil
}
