package moverequest

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// AssignProviderUseCase закрепляет заявку за выбранной компанией и
// переводит её в ожидание финальной оферты.
type AssignProviderUseCase struct {
	moveRequestRepo repository.MoveRequestRepository
	providerRepo    repository.ProviderRepository
	clk             clock.Clock
}

func NewAssignProviderUseCase(moveRequestRepo repository.MoveRequestRepository, providerRepo repository.ProviderRepository, clk clock.Clock) *AssignProviderUseCase {
	return &AssignProviderUseCase{moveRequestRepo: moveRequestRepo, providerRepo: providerRepo, clk: clk}
}

func (uc *AssignProviderUseCase) Execute(ctx context.Context, requestID, providerID uuid.UUID) (*entity.MoveRequest, error) {
	request, err := uc.moveRequestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.ErrMoveRequestNotFound
	}

	provider, err := uc.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.ErrProviderNotFound
	}
	if !provider.CanQuote() {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "компания не одобрена")
	}

	now := uc.clk.Now()
	if err := request.AssignProvider(providerID, now); err != nil {
		return nil, err
	}
	if err := request.MarkFinalOfferPending(now); err != nil {
		return nil, err
	}

	if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
	}

	return request, nil
}
