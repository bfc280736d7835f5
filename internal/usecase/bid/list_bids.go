package bid

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

type ListBidsUseCase struct {
	bidRepo repository.BidRepository
}

func NewListBidsUseCase(bidRepo repository.BidRepository) *ListBidsUseCase {
	return &ListBidsUseCase{bidRepo: bidRepo}
}

func (uc *ListBidsUseCase) ByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Bid, error) {
	return uc.bidRepo.FindByMoveRequestID(ctx, moveRequestID)
}

func (uc *ListBidsUseCase) ByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Bid, error) {
	return uc.bidRepo.FindByProviderID(ctx, providerID)
}

func (uc *ListBidsUseCase) ByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	b, err := uc.bidRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.ErrBidNotFound
	}
	return b, nil
}
