package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
)

type BidRepository interface {
	Create(ctx context.Context, bid *entity.Bid) error
	Update(ctx context.Context, bid *entity.Bid) error
	// UpdateFromSubmitted сохраняет оферту, покидающую статус submitted,
	// с оптимистической проверкой: если запись в базе уже не submitted,
	// возвращается конфликт. Так гонка двух одновременных принятий
	// решается в пользу первого.
	UpdateFromSubmitted(ctx context.Context, bid *entity.Bid) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Bid, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Bid, error)
	FindByProviderAndMoveRequest(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Bid, error)
}
