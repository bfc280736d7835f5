package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// CreateFromDetectedUseCase создаёт опись из результатов распознавания
// и привязывает её к заявке. Само распознавание живёт во внешнем
// контуре: сюда приходят уже готовые позиции.
type CreateFromDetectedUseCase struct {
	inventoryRepo   repository.InventoryRepository
	moveRequestRepo repository.MoveRequestRepository
	clk             clock.Clock
}

func NewCreateFromDetectedUseCase(inventoryRepo repository.InventoryRepository, moveRequestRepo repository.MoveRequestRepository, clk clock.Clock) *CreateFromDetectedUseCase {
	return &CreateFromDetectedUseCase{inventoryRepo: inventoryRepo, moveRequestRepo: moveRequestRepo, clk: clk}
}

type DetectedItemInput struct {
	Name       string
	Quantity   int
	Confidence float64
	Category   string
	Volume     *float64
}

func (uc *CreateFromDetectedUseCase) Execute(ctx context.Context, moveRequestID uuid.UUID, items []DetectedItemInput) (*entity.Inventory, error) {
	request, err := uc.moveRequestRepo.FindByID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.ErrMoveRequestNotFound
	}

	existing, err := uc.inventoryRepo.FindByMoveRequestID(ctx, moveRequestID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "опись уже создана для заявки")
	}

	detected := make([]entity.Item, 0, len(items))
	for _, in := range items {
		item, err := entity.DetectedItem(in.Name, in.Quantity, in.Confidence, in.Category, in.Volume)
		if err != nil {
			return nil, err
		}
		detected = append(detected, item)
	}

	now := uc.clk.Now()
	inv, err := entity.NewInventoryFromDetected(moveRequestID, detected, now)
	if err != nil {
		return nil, err
	}

	if err := request.AttachInventory(inv.ID, now); err != nil {
		return nil, err
	}

	if err := uc.inventoryRepo.Create(ctx, inv); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить опись")
	}
	if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
	}

	return inv, nil
}

// ItemInput — позиция, приходящая из ручного редактирования описи.
type ItemInput struct {
	Name       string
	Quantity   int
	Confidence *float64
	Source     string
	Category   string
	Volume     *float64
}

func newItem(in ItemInput) (entity.Item, error) {
	source, err := valueobject.NewItemSource(in.Source)
	if err != nil {
		return entity.Item{}, err
	}
	return entity.NewItem(in.Name, in.Quantity, in.Confidence, source, in.Category, in.Volume)
}
