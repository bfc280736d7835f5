package quote

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

type GetQuotesUseCase struct {
	quoteRepo repository.QuoteRepository
}

func NewGetQuotesUseCase(quoteRepo repository.QuoteRepository) *GetQuotesUseCase {
	return &GetQuotesUseCase{quoteRepo: quoteRepo}
}

func (uc *GetQuotesUseCase) ByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Quote, error) {
	return uc.quoteRepo.FindByMoveRequestID(ctx, moveRequestID)
}

// LatestForProvider — самая свежая оценка компании по заявке.
func (uc *GetQuotesUseCase) LatestForProvider(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Quote, error) {
	q, err := uc.quoteRepo.FindLatestByProviderAndMoveRequest(ctx, providerID, moveRequestID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, apperror.ErrQuoteNotFound
	}
	return q, nil
}
