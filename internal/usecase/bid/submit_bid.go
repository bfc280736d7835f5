package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// Срок действия оферты, который компания может выбрать при подаче.
// Доменный предел шире (до 90 дней), но через API принимаем 1-30.
const (
	defaultSubmitValidityDays = 7
	maxSubmitValidityDays     = 30
)

// SubmitBidUseCase — компания подаёт финальную оферту по заявке.
// Цена либо берётся из последней оценки, либо корректируется компанией.
type SubmitBidUseCase struct {
	bidRepo         repository.BidRepository
	quoteRepo       repository.QuoteRepository
	providerRepo    repository.ProviderRepository
	moveRequestRepo repository.MoveRequestRepository
	clk             clock.Clock
}

func NewSubmitBidUseCase(
	bidRepo repository.BidRepository,
	quoteRepo repository.QuoteRepository,
	providerRepo repository.ProviderRepository,
	moveRequestRepo repository.MoveRequestRepository,
	clk clock.Clock,
) *SubmitBidUseCase {
	return &SubmitBidUseCase{
		bidRepo:         bidRepo,
		quoteRepo:       quoteRepo,
		providerRepo:    providerRepo,
		moveRequestRepo: moveRequestRepo,
		clk:             clk,
	}
}

type SubmitBidInput struct {
	ProviderID    uuid.UUID
	MoveRequestID uuid.UUID
	// AdjustedPrice задаётся, когда компания отступает от оценки.
	// При nil цена и расшифровка берутся из последней оценки.
	AdjustedPrice *float64
	ValidityDays  int
	Notes         string
}

func (uc *SubmitBidUseCase) Execute(ctx context.Context, input SubmitBidInput) (*entity.Bid, error) {
	provider, err := uc.providerRepo.FindByID(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.ErrProviderNotFound
	}
	if !provider.CanQuote() {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "компания не одобрена")
	}

	request, err := uc.moveRequestRepo.FindByID(ctx, input.MoveRequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.ErrMoveRequestNotFound
	}

	// Повторная подача: черновик замещается, поданную или принятую
	// оферту второй раз подать нельзя.
	existing, err := uc.bidRepo.FindByProviderAndMoveRequest(ctx, input.ProviderID, input.MoveRequestID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case valueobject.BidStatusSubmitted, valueobject.BidStatusAccepted:
			return nil, apperror.New(apperror.ErrCodeConflict, "оферта по этой заявке уже подана")
		case valueobject.BidStatusDraft:
			if err := uc.bidRepo.Delete(ctx, existing.ID); err != nil {
				return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось заменить черновик оферты")
			}
		}
	}

	quote, err := uc.quoteRepo.FindLatestByProviderAndMoveRequest(ctx, input.ProviderID, input.MoveRequestID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	now := uc.clk.Now()
	validityDays := clampValidityDays(input.ValidityDays)

	var newBid *entity.Bid
	switch {
	case input.AdjustedPrice != nil:
		var quoteID *uuid.UUID
		breakdown := valueobject.CostBreakdown{}
		if quote != nil {
			quoteID = &quote.ID
			breakdown = quote.Breakdown
		}
		newBid, err = entity.NewAdjustedBid(input.MoveRequestID, input.ProviderID, quoteID, *input.AdjustedPrice, breakdown, validityDays, input.Notes, now)
	case quote != nil:
		newBid, err = entity.NewBidFromQuote(quote, validityDays, input.Notes, now)
	default:
		return nil, apperror.New(apperror.ErrCodeInvalidState, "нет оценки для подачи оферты: сначала рассчитайте оценку или укажите цену")
	}
	if err != nil {
		return nil, err
	}

	if err := newBid.Submit(now); err != nil {
		return nil, err
	}

	if err := uc.bidRepo.Create(ctx, newBid); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить оферту")
	}

	// Продвигаем заявку до final_offer_submitted, если она ещё не там.
	if request.Status != valueobject.MoveRequestStatusFinalOfferSubmitted {
		if err := request.MarkFinalOfferSubmitted(now); err == nil {
			if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
				return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
			}
		}
	}

	return newBid, nil
}

func clampValidityDays(days int) int {
	if days <= 0 {
		return defaultSubmitValidityDays
	}
	if days > maxSubmitValidityDays {
		return maxSubmitValidityDays
	}
	return days
}
