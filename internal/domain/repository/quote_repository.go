package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Quote, error)
	// FindLatestByProviderAndMoveRequest возвращает самую свежую оценку
	// пары (компания, заявка): пересчёт порождает новые записи,
	// история при этом сохраняется.
	FindLatestByProviderAndMoveRequest(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Quote, error)
}
