package moverequest

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

type GetMoveRequestUseCase struct {
	moveRequestRepo repository.MoveRequestRepository
}

func NewGetMoveRequestUseCase(moveRequestRepo repository.MoveRequestRepository) *GetMoveRequestUseCase {
	return &GetMoveRequestUseCase{moveRequestRepo: moveRequestRepo}
}

func (uc *GetMoveRequestUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.MoveRequest, error) {
	request, err := uc.moveRequestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.ErrMoveRequestNotFound
	}
	return request, nil
}

// List возвращает страницу заявок для административного обзора.
func (uc *GetMoveRequestUseCase) List(ctx context.Context, filter repository.MoveRequestFilter) ([]*entity.MoveRequest, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.moveRequestRepo.List(ctx, filter)
}
