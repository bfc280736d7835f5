package moverequest

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

type ExpireMoveRequestUseCase struct {
	moveRequestRepo repository.MoveRequestRepository
	clk             clock.Clock
}

func NewExpireMoveRequestUseCase(moveRequestRepo repository.MoveRequestRepository, clk clock.Clock) *ExpireMoveRequestUseCase {
	return &ExpireMoveRequestUseCase{moveRequestRepo: moveRequestRepo, clk: clk}
}

func (uc *ExpireMoveRequestUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.MoveRequest, error) {
	request, err := uc.moveRequestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.ErrMoveRequestNotFound
	}

	if err := request.Expire(uc.clk.Now()); err != nil {
		return nil, err
	}

	if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
	}

	return request, nil
}
