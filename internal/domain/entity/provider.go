package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// Provider — компания-перевозчик. Регистрация и модерация компаний
// живут во внешнем контуре; ядру нужны только одобренные компании
// и их прайс-параметры для расчёта оценок.
type Provider struct {
	ID         uuid.UUID
	Name       string
	Approved   bool
	Conditions valueobject.PricingConditions
	CreatedAt  time.Time
}

func NewProvider(name string, conditions valueobject.PricingConditions, now time.Time) (*Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название компании обязательно")
	}

	return &Provider{
		ID:         uuid.New(),
		Name:       name,
		Conditions: conditions,
		CreatedAt:  now,
	}, nil
}

// CanQuote: оценки считаются только для одобренных компаний.
func (p *Provider) CanQuote() bool {
	return p.Approved
}
