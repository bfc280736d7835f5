package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
)

// ProviderRepository — справочник компаний-перевозчиков.
// Регистрация и модерация компаний происходят во внешнем контуре,
// ядро только читает одобренные компании и их прайс-параметры.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	FindApproved(ctx context.Context) ([]*entity.Provider, error)
}
