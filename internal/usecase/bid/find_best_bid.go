package bid

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// FindBestBidUseCase подбирает клиенту лучшую живую оферту по заявке.
// Лучшая — самая дешёвая; при равной цене выигрывает поданная раньше,
// при равном моменте подачи — меньший идентификатор. Порядок полностью
// детерминирован, повторный вызов даёт тот же результат.
type FindBestBidUseCase struct {
	bidRepo repository.BidRepository
	clk     clock.Clock
}

func NewFindBestBidUseCase(bidRepo repository.BidRepository, clk clock.Clock) *FindBestBidUseCase {
	return &FindBestBidUseCase{bidRepo: bidRepo, clk: clk}
}

func (uc *FindBestBidUseCase) Execute(ctx context.Context, moveRequestID uuid.UUID) (*entity.Bid, error) {
	bids, err := uc.bidRepo.FindByMoveRequestID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	alive := make([]*entity.Bid, 0, len(bids))
	for _, b := range bids {
		if b.Status == valueobject.BidStatusSubmitted && !b.IsExpired(now) {
			alive = append(alive, b)
		}
	}
	if len(alive) == 0 {
		return nil, apperror.New(apperror.ErrCodeNotFound, "нет действующих оферт по заявке")
	}

	sort.Slice(alive, func(i, j int) bool {
		if alive[i].TotalPrice != alive[j].TotalPrice {
			return alive[i].TotalPrice < alive[j].TotalPrice
		}
		ti, tj := alive[i].SubmittedAt, alive[j].SubmittedAt
		if ti != nil && tj != nil && !ti.Equal(*tj) {
			return ti.Before(*tj)
		}
		return alive[i].ID.String() < alive[j].ID.String()
	})

	return alive[0], nil
}
