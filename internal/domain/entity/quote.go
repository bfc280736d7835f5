package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// DefaultQuoteValidityDays — срок действия оценки по умолчанию.
const DefaultQuoteValidityDays = 7

// Quote — автоматическая предварительная оценка стоимости переезда
// для пары (заявка, компания). После создания не изменяется: пересчёт
// порождает новую оценку, старая остаётся в истории.
type Quote struct {
	ID              uuid.UUID
	MoveRequestID   uuid.UUID
	ProviderID      uuid.UUID
	TotalPrice      float64
	PriceRangeLow   float64
	PriceRangeHigh  float64
	Breakdown       valueobject.CostBreakdown
	EstimatedHours  float64
	EstimatedVolume float64
	Currency        string
	CalculatedAt    time.Time
	ValidUntil      *time.Time
}

// NewQuote строит оценку из результата движка расчёта.
// Минимальная цена компании применяется здесь — единственный раз:
// движок всегда отдаёт расшифровку без нижнего порога.
func NewQuote(
	moveRequestID, providerID uuid.UUID,
	breakdown valueobject.CostBreakdown,
	estimatedHours, estimatedVolume float64,
	conditions valueobject.PricingConditions,
	validityDays int,
	now time.Time,
) (*Quote, error) {
	if moveRequestID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "идентификатор заявки обязателен")
	}
	if providerID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "идентификатор компании обязателен")
	}
	if estimatedHours < 0 || estimatedVolume < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценочные часы и объём не могут быть отрицательными")
	}
	if validityDays <= 0 {
		validityDays = DefaultQuoteValidityDays
	}

	total := valueobject.Round2(conditions.ApplyMinimumPrice(breakdown.Total))
	low := valueobject.Round2(total * 0.85)
	high := valueobject.Round2(total * 1.15)
	validUntil := now.Add(time.Duration(validityDays) * 24 * time.Hour)

	q := &Quote{
		ID:              uuid.New(),
		MoveRequestID:   moveRequestID,
		ProviderID:      providerID,
		TotalPrice:      total,
		PriceRangeLow:   low,
		PriceRangeHigh:  high,
		Breakdown:       breakdown,
		EstimatedHours:  estimatedHours,
		EstimatedVolume: estimatedVolume,
		Currency:        conditions.Currency,
		CalculatedAt:    now,
		ValidUntil:      &validUntil,
	}
	if q.Currency == "" {
		q.Currency = "EUR"
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate проверяет инварианты оценки. Вызывается и конструктором,
// и репозиторием при восстановлении из базы.
func (q *Quote) Validate() error {
	if q.TotalPrice < 0 {
		return apperror.New(apperror.ErrCodeValidation, "итоговая цена не может быть отрицательной")
	}
	if q.PriceRangeLow > q.TotalPrice {
		return apperror.New(apperror.ErrCodeValidation, "нижняя граница диапазона не может превышать итоговую цену")
	}
	if q.PriceRangeHigh < q.TotalPrice {
		return apperror.New(apperror.ErrCodeValidation, "верхняя граница диапазона не может быть меньше итоговой цены")
	}
	return nil
}

// IsValid: оценка действительна, пока не наступил ValidUntil.
func (q *Quote) IsValid(now time.Time) bool {
	return q.ValidUntil == nil || now.Before(*q.ValidUntil)
}

func (q *Quote) IsExpired(now time.Time) bool {
	return q.ValidUntil != nil && !now.Before(*q.ValidUntil)
}

// FormattedPriceRange — диапазон цены в человекочитаемом виде.
func (q *Quote) FormattedPriceRange() string {
	return fmt.Sprintf("%.2f %s - %.2f %s", q.PriceRangeLow, q.Currency, q.PriceRangeHigh, q.Currency)
}
