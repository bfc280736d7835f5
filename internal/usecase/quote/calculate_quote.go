package quote

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/logger"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
	"github.com/ignatzorin/mymove-backend/internal/pricing"
)

// CalculateQuoteUseCase считает предварительную оценку стоимости
// переезда по прайс-параметрам компании и подтверждённой описи.
type CalculateQuoteUseCase struct {
	providerRepo    repository.ProviderRepository
	moveRequestRepo repository.MoveRequestRepository
	inventoryRepo   repository.InventoryRepository
	quoteRepo       repository.QuoteRepository
	engine          *pricing.Engine
	validityDays    int
	clk             clock.Clock
}

func NewCalculateQuoteUseCase(
	providerRepo repository.ProviderRepository,
	moveRequestRepo repository.MoveRequestRepository,
	inventoryRepo repository.InventoryRepository,
	quoteRepo repository.QuoteRepository,
	engine *pricing.Engine,
	validityDays int,
	clk clock.Clock,
) *CalculateQuoteUseCase {
	return &CalculateQuoteUseCase{
		providerRepo:    providerRepo,
		moveRequestRepo: moveRequestRepo,
		inventoryRepo:   inventoryRepo,
		quoteRepo:       quoteRepo,
		engine:          engine,
		validityDays:    validityDays,
		clk:             clk,
	}
}

// Execute считает и сохраняет оценку одной компании. Старая оценка
// пары (компания, заявка) не редактируется: создаётся новая запись.
func (uc *CalculateQuoteUseCase) Execute(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Quote, error) {
	provider, err := uc.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperror.ErrProviderNotFound
	}
	if !provider.CanQuote() {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "компания не одобрена и не может считать оценки")
	}

	request, err := uc.moveRequestRepo.FindByID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.ErrMoveRequestNotFound
	}

	inv, err := uc.inventoryRepo.FindByMoveRequestID(ctx, moveRequestID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.ErrInventoryNotFound
	}
	if inv.Status != valueobject.InventoryStatusConfirmed {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "оценка возможна только по подтверждённой описи")
	}

	details := request.MoveDetails
	distanceKm := uc.engine.EstimateDistance(&details.FromAddress, &details.ToAddress)

	breakdown, err := uc.engine.ComputeBreakdown(&provider.Conditions, &details.FromFloor, &details.ToFloor, inv, distanceKm)
	if err != nil {
		return nil, err
	}

	hours := uc.engine.EstimateWorkHours(&details.FromFloor, &details.ToFloor, inv.TotalVolume, distanceKm, inv.TotalItemCount())

	q, err := entity.NewQuote(moveRequestID, providerID, breakdown, hours, inv.TotalVolume, provider.Conditions, uc.validityDays, uc.clk.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.quoteRepo.Create(ctx, q); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить оценку")
	}

	return q, nil
}

// ProviderOutcome — результат расчёта оценки для одной компании
// при веерном расчёте по всем одобренным компаниям.
type ProviderOutcome struct {
	ProviderID uuid.UUID
	Quote      *entity.Quote
	Err        error
}

// ExecuteForAllApproved считает оценки всех одобренных компаний.
// Сбой расчёта одной компании не прерывает остальные: итоги
// собираются по каждой компании отдельно. После хотя бы одной
// успешной оценки заявка переводится в estimates_ready.
func (uc *CalculateQuoteUseCase) ExecuteForAllApproved(ctx context.Context, moveRequestID uuid.UUID) ([]ProviderOutcome, error) {
	providers, err := uc.providerRepo.FindApproved(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список компаний")
	}
	if len(providers) == 0 {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "нет одобренных компаний для расчёта")
	}

	outcomes := make([]ProviderOutcome, 0, len(providers))
	succeeded := 0
	for _, provider := range providers {
		q, err := uc.Execute(ctx, provider.ID, moveRequestID)
		outcomes = append(outcomes, ProviderOutcome{ProviderID: provider.ID, Quote: q, Err: err})
		if err != nil {
			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"provider_id":     provider.ID,
					"move_request_id": moveRequestID,
					"error":           err.Error(),
				}).Warn("не удалось рассчитать оценку компании")
			}
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		return outcomes, apperror.New(apperror.ErrCodeInternal, "не удалось рассчитать ни одной оценки")
	}

	request, err := uc.moveRequestRepo.FindByID(ctx, moveRequestID)
	if err != nil {
		return outcomes, err
	}
	if request == nil {
		return outcomes, apperror.ErrMoveRequestNotFound
	}

	if err := request.MarkEstimatesReady(uc.clk.Now()); err == nil {
		if err := uc.moveRequestRepo.Update(ctx, request); err != nil {
			return outcomes, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить заявку")
		}
	}

	return outcomes, nil
}
