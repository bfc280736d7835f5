package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// Границы срока действия оферты в днях.
const (
	MinBidValidityDays = 1
	MaxBidValidityDays = 90
)

// Bid — подтверждённая компанией оферта, производная от оценки,
// но с собственным жизненным циклом переговоров:
// draft → submitted → accepted/rejected/expired.
// Терминальные статусы дальше не мутируются.
type Bid struct {
	ID              uuid.UUID
	MoveRequestID   uuid.UUID
	ProviderID      uuid.UUID
	QuoteID         *uuid.UUID
	TotalPrice      float64
	Breakdown       valueobject.CostBreakdown
	ValidityDays    int
	Notes           string
	Status          valueobject.BidStatus
	CreatedAt       time.Time
	SubmittedAt     *time.Time
	AcceptedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason string
}

func newBid(moveRequestID, providerID uuid.UUID, quoteID *uuid.UUID, totalPrice float64, breakdown valueobject.CostBreakdown, validityDays int, notes string, now time.Time) (*Bid, error) {
	if moveRequestID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "идентификатор заявки обязателен")
	}
	if providerID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "идентификатор компании обязателен")
	}
	if totalPrice < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "цена оферты не может быть отрицательной")
	}
	if validityDays < MinBidValidityDays || validityDays > MaxBidValidityDays {
		return nil, apperror.New(apperror.ErrCodeValidation, "срок действия оферты должен быть от 1 до 90 дней")
	}

	return &Bid{
		ID:            uuid.New(),
		MoveRequestID: moveRequestID,
		ProviderID:    providerID,
		QuoteID:       quoteID,
		TotalPrice:    valueobject.Round2(totalPrice),
		Breakdown:     breakdown,
		ValidityDays:  validityDays,
		Notes:         strings.TrimSpace(notes),
		Status:        valueobject.BidStatusDraft,
		CreatedAt:     now,
	}, nil
}

// NewBidFromQuote создаёт черновик оферты с ценой из оценки.
func NewBidFromQuote(quote *Quote, validityDays int, notes string, now time.Time) (*Bid, error) {
	if quote == nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценка обязательна")
	}
	quoteID := quote.ID
	return newBid(quote.MoveRequestID, quote.ProviderID, &quoteID, quote.TotalPrice, quote.Breakdown, validityDays, notes, now)
}

// NewAdjustedBid создаёт черновик оферты с ценой, скорректированной компанией.
func NewAdjustedBid(moveRequestID, providerID uuid.UUID, quoteID *uuid.UUID, adjustedPrice float64, breakdown valueobject.CostBreakdown, validityDays int, notes string, now time.Time) (*Bid, error) {
	return newBid(moveRequestID, providerID, quoteID, adjustedPrice, breakdown, validityDays, notes, now)
}

// UpdatePrice меняет цену и расшифровку. Допустимо только в черновике.
func (b *Bid) UpdatePrice(newPrice float64, newBreakdown valueobject.CostBreakdown, newNotes string) error {
	if b.Status != valueobject.BidStatusDraft {
		return apperror.New(apperror.ErrCodeInvalidState, "цену можно менять только в черновике оферты")
	}
	if newPrice < 0 {
		return apperror.New(apperror.ErrCodeValidation, "цена оферты не может быть отрицательной")
	}

	b.TotalPrice = valueobject.Round2(newPrice)
	b.Breakdown = newBreakdown
	if trimmed := strings.TrimSpace(newNotes); trimmed != "" {
		b.Notes = trimmed
	}
	return nil
}

// Submit передаёт оферту клиенту.
func (b *Bid) Submit(now time.Time) error {
	if !b.Status.CanTransitionTo(valueobject.BidStatusSubmitted) {
		return apperror.New(apperror.ErrCodeInvalidState, "подать можно только черновик оферты")
	}

	b.Status = valueobject.BidStatusSubmitted
	b.SubmittedAt = &now
	return nil
}

// Accept фиксирует принятие оферты клиентом. Проверка срока действия
// выполняется вызывающей стороной до вызова.
func (b *Bid) Accept(now time.Time) error {
	if !b.Status.CanTransitionTo(valueobject.BidStatusAccepted) {
		return apperror.New(apperror.ErrCodeInvalidState, "принять можно только поданную оферту")
	}

	b.Status = valueobject.BidStatusAccepted
	b.AcceptedAt = &now
	return nil
}

// Reject фиксирует отказ клиента. Причина обязательна.
func (b *Bid) Reject(now time.Time, reason string) error {
	if !b.Status.CanTransitionTo(valueobject.BidStatusRejected) {
		return apperror.New(apperror.ErrCodeInvalidState, "отклонить можно только поданную оферту")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperror.New(apperror.ErrCodeValidation, "причина отказа обязательна")
	}

	b.Status = valueobject.BidStatusRejected
	b.RejectedAt = &now
	b.RejectionReason = reason
	return nil
}

// Expire помечает поданную оферту просроченной.
func (b *Bid) Expire() error {
	if !b.Status.CanTransitionTo(valueobject.BidStatusExpired) {
		return apperror.New(apperror.ErrCodeInvalidState, "просрочить можно только поданную оферту")
	}

	b.Status = valueobject.BidStatusExpired
	return nil
}

// ExpiryDate — расчётный момент истечения: SubmittedAt + ValidityDays
// календарных дней. Для неподанной оферты отсутствует.
func (b *Bid) ExpiryDate() *time.Time {
	if b.SubmittedAt == nil {
		return nil
	}
	expiry := b.SubmittedAt.Add(time.Duration(b.ValidityDays) * 24 * time.Hour)
	return &expiry
}

// IsExpired: просроченной считается только поданная оферта, чей срок
// вышел. Терминальные статусы задним числом не просрочиваются.
func (b *Bid) IsExpired(now time.Time) bool {
	if b.Status != valueobject.BidStatusSubmitted {
		return false
	}
	expiry := b.ExpiryDate()
	return expiry != nil && !now.Before(*expiry)
}

// Validate проверяет статусные инварианты полей-меток времени.
// Вызывается репозиторием после восстановления записи из базы.
func (b *Bid) Validate() error {
	switch b.Status {
	case valueobject.BidStatusDraft:
		if b.SubmittedAt != nil || b.AcceptedAt != nil || b.RejectedAt != nil || b.RejectionReason != "" {
			return apperror.New(apperror.ErrCodeValidation, "черновик оферты не может иметь меток подачи или решения")
		}
	case valueobject.BidStatusSubmitted:
		if b.SubmittedAt == nil {
			return apperror.New(apperror.ErrCodeValidation, "поданная оферта обязана иметь submittedAt")
		}
		if b.AcceptedAt != nil || b.RejectedAt != nil || b.RejectionReason != "" {
			return apperror.New(apperror.ErrCodeValidation, "поданная оферта не может иметь меток решения")
		}
	case valueobject.BidStatusAccepted:
		if b.SubmittedAt == nil || b.AcceptedAt == nil {
			return apperror.New(apperror.ErrCodeValidation, "принятая оферта обязана иметь submittedAt и acceptedAt")
		}
		if b.RejectedAt != nil || b.RejectionReason != "" {
			return apperror.New(apperror.ErrCodeValidation, "принятая оферта не может иметь меток отказа")
		}
	case valueobject.BidStatusRejected:
		if b.SubmittedAt == nil || b.RejectedAt == nil {
			return apperror.New(apperror.ErrCodeValidation, "отклонённая оферта обязана иметь submittedAt и rejectedAt")
		}
		if b.RejectionReason == "" {
			return apperror.New(apperror.ErrCodeValidation, "отклонённая оферта обязана иметь причину отказа")
		}
	case valueobject.BidStatusExpired:
		if b.SubmittedAt == nil {
			return apperror.New(apperror.ErrCodeValidation, "просроченная оферта обязана иметь submittedAt")
		}
	default:
		return apperror.New(apperror.ErrCodeValidation, "некорректный статус оферты")
	}
	return nil
}
