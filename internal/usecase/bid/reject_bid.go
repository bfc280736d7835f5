package bid

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// Причина по умолчанию, когда клиент не объяснил отказ.
const defaultRejectionReason = "клиент отклонил оферту"

// RejectBidUseCase — клиент отклоняет отдельную оферту.
// Заявка завершается статусом rejected, только когда по ней не
// осталось ни одной живой поданной оферты: отказ одной компании
// не мешает клиенту принять другую.
type RejectBidUseCase struct {
	bidRepo         repository.BidRepository
	moveRequestRepo repository.MoveRequestRepository
	clk             clock.Clock
}

func NewRejectBidUseCase(bidRepo repository.BidRepository, moveRequestRepo repository.MoveRequestRepository, clk clock.Clock) *RejectBidUseCase {
	return &RejectBidUseCase{bidRepo: bidRepo, moveRequestRepo: moveRequestRepo, clk: clk}
}

func (uc *RejectBidUseCase) Execute(ctx context.Context, bidID uuid.UUID, reason string) (*entity.Bid, error) {
	rejected, err := uc.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if rejected == nil {
		return nil, apperror.ErrBidNotFound
	}

	if strings.TrimSpace(reason) == "" {
		reason = defaultRejectionReason
	}

	now := uc.clk.Now()
	if err := rejected.Reject(now, reason); err != nil {
		return nil, err
	}
	if err := uc.bidRepo.UpdateFromSubmitted(ctx, rejected); err != nil {
		return nil, err
	}

	if err := uc.finalizeIfNoneLeft(ctx, rejected.MoveRequestID, now); err != nil {
		return nil, err
	}

	return rejected, nil
}

// finalizeIfNoneLeft переводит заявку в rejected, когда все поданные
// оферты по ней исчерпаны (приняты решением или просрочены).
func (uc *RejectBidUseCase) finalizeIfNoneLeft(ctx context.Context, moveRequestID uuid.UUID, now time.Time) error {
	bids, err := uc.bidRepo.FindByMoveRequestID(ctx, moveRequestID)
	if err != nil {
		return err
	}
	for _, b := range bids {
		if b.Status == valueobject.BidStatusSubmitted && !b.IsExpired(now) {
			return nil
		}
	}

	request, err := uc.moveRequestRepo.FindByID(ctx, moveRequestID)
	if err != nil {
		return err
	}
	if request == nil {
		return apperror.ErrMoveRequestNotFound
	}

	if err := request.Reject(now); err != nil {
		// Заявка могла уже покинуть переговорную стадию, это не ошибка отказа.
		if apperror.IsInvalidState(err) {
			return nil
		}
		return err
	}
	if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
	}
	return nil
}
