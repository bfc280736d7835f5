package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
)

type InventoryRepository interface {
	Create(ctx context.Context, inventory *entity.Inventory) error
	Update(ctx context.Context, inventory *entity.Inventory) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Inventory, error)
	FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) (*entity.Inventory, error)
}
