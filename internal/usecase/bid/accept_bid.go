package bid

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/logger"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// Причина, с которой система отклоняет проигравшие оферты.
const competingBidAcceptedReason = "принята конкурирующая оферта"

// AcceptBidUseCase — клиент принимает оферту компании.
// Принятие каскадно отклоняет все остальные поданные оферты по той же
// заявке и завершает заявку статусом accepted. Порядок сохранений
// строгий: сначала принятая оферта, затем конкуренты, затем заявка —
// обрыв посередине оставляет систему в восстановимом состоянии
// «оферта принята, конкуренты ещё не отклонены», но никогда не
// в «заявка завершена при живых конкурентах».
type AcceptBidUseCase struct {
	bidRepo         repository.BidRepository
	moveRequestRepo repository.MoveRequestRepository
	clk             clock.Clock
}

func NewAcceptBidUseCase(bidRepo repository.BidRepository, moveRequestRepo repository.MoveRequestRepository, clk clock.Clock) *AcceptBidUseCase {
	return &AcceptBidUseCase{bidRepo: bidRepo, moveRequestRepo: moveRequestRepo, clk: clk}
}

// CompetitorOutcome — итог отклонения одной конкурирующей оферты.
// Сбои отклонения не фатальны и собираются сюда для вызывающего.
type CompetitorOutcome struct {
	BidID    uuid.UUID
	Rejected bool
	Err      error
}

func (uc *AcceptBidUseCase) Execute(ctx context.Context, bidID uuid.UUID) (*entity.Bid, []CompetitorOutcome, error) {
	accepted, err := uc.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		return nil, nil, err
	}
	if accepted == nil {
		return nil, nil, apperror.ErrBidNotFound
	}

	if accepted.Status != valueobject.BidStatusSubmitted {
		return nil, nil, apperror.New(apperror.ErrCodeInvalidState, "принять можно только поданную оферту")
	}

	now := uc.clk.Now()

	// Просроченную оферту принять нельзя: помечаем её expired и выходим.
	if accepted.IsExpired(now) {
		if err := accepted.Expire(); err != nil {
			return nil, nil, err
		}
		if err := uc.bidRepo.UpdateFromSubmitted(ctx, accepted); err != nil {
			return nil, nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось пометить оферту просроченной")
		}
		return nil, nil, apperror.ErrBidExpired
	}

	if err := accepted.Accept(now); err != nil {
		return nil, nil, err
	}
	// Оптимистическая проверка: при гонке двух принятий побеждает
	// первое сохранение, второе получает конфликт.
	if err := uc.bidRepo.UpdateFromSubmitted(ctx, accepted); err != nil {
		return nil, nil, err
	}

	outcomes := uc.rejectCompetitors(ctx, accepted, now)

	request, err := uc.moveRequestRepo.FindByID(ctx, accepted.MoveRequestID)
	if err != nil {
		return nil, outcomes, err
	}
	if request == nil {
		return nil, outcomes, apperror.ErrMoveRequestNotFound
	}

	if err := request.Accept(now); err != nil {
		return nil, outcomes, err
	}
	if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
		return nil, outcomes, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось завершить заявку")
	}

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"bid_id":          accepted.ID,
			"move_request_id": accepted.MoveRequestID,
			"provider_id":     accepted.ProviderID,
		}).Info("оферта принята клиентом, заявка завершена")
	}

	return accepted, outcomes, nil
}

// rejectCompetitors отклоняет остальные поданные оферты заявки.
// Каждая оферта обрабатывается независимо: сбой одной не мешает
// остальным и не откатывает принятие.
func (uc *AcceptBidUseCase) rejectCompetitors(ctx context.Context, accepted *entity.Bid, now time.Time) []CompetitorOutcome {
	competitors, err := uc.bidRepo.FindByMoveRequestID(ctx, accepted.MoveRequestID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"move_request_id": accepted.MoveRequestID,
				"error":           err.Error(),
			}).Error("не удалось получить конкурирующие оферты")
		}
		return nil
	}

	var outcomes []CompetitorOutcome
	for _, competitor := range competitors {
		if competitor.ID == accepted.ID || competitor.Status != valueobject.BidStatusSubmitted {
			continue
		}

		outcome := CompetitorOutcome{BidID: competitor.ID}
		if err := competitor.Reject(now, competingBidAcceptedReason); err != nil {
			outcome.Err = err
		} else if err := uc.bidRepo.UpdateFromSubmitted(ctx, competitor); err != nil {
			outcome.Err = err
		} else {
			outcome.Rejected = true
		}

		if outcome.Err != nil && logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"bid_id": competitor.ID,
				"error":  outcome.Err.Error(),
			}).Warn("не удалось отклонить конкурирующую оферту")
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
