package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
)

type MoveRequestRepository interface {
	Create(ctx context.Context, request *entity.MoveRequest) error
	Update(ctx context.Context, request *entity.MoveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MoveRequest, error)
	List(ctx context.Context, filter MoveRequestFilter) ([]*entity.MoveRequest, int, error)
}

type MoveRequestFilter struct {
	Status string
	Limit  int
	Offset int
}
