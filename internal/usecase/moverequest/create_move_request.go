package moverequest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

type CreateMoveRequestUseCase struct {
	moveRequestRepo repository.MoveRequestRepository
	clk             clock.Clock
}

func NewCreateMoveRequestUseCase(moveRequestRepo repository.MoveRequestRepository, clk clock.Clock) *CreateMoveRequestUseCase {
	return &CreateMoveRequestUseCase{moveRequestRepo: moveRequestRepo, clk: clk}
}

type AddressInput struct {
	Street         string
	HouseNumber    string
	PostalCode     string
	City           string
	Country        string
	AdditionalInfo string
}

type FloorInput struct {
	Floor                 int
	HasElevator           bool
	NeedsNoParkingZone    bool
	WalkingDistanceMeters *int
	NarrowStairs          bool
	CarryOverThresholds   bool
}

type CreateMoveRequestInput struct {
	VideoID    uuid.UUID
	From       AddressInput
	To         AddressInput
	FromFloor  FloorInput
	ToFloor    FloorInput
	NeedsBoxes bool
	BoxesCount *int
	MoveDate   time.Time
}

func (uc *CreateMoveRequestUseCase) Execute(ctx context.Context, input CreateMoveRequestInput) (*entity.MoveRequest, error) {
	from, err := valueobject.NewAddress(input.From.Street, input.From.HouseNumber, input.From.PostalCode, input.From.City, input.From.Country, input.From.AdditionalInfo)
	if err != nil {
		return nil, err
	}
	to, err := valueobject.NewAddress(input.To.Street, input.To.HouseNumber, input.To.PostalCode, input.To.City, input.To.Country, input.To.AdditionalInfo)
	if err != nil {
		return nil, err
	}
	fromFloor, err := newFloor(input.FromFloor)
	if err != nil {
		return nil, err
	}
	toFloor, err := newFloor(input.ToFloor)
	if err != nil {
		return nil, err
	}

	details, err := valueobject.NewMoveDetails(from, to, fromFloor, toFloor, input.NeedsBoxes, input.BoxesCount, input.MoveDate)
	if err != nil {
		return nil, err
	}

	request, err := entity.NewMoveRequest(input.VideoID, details, uc.clk.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.moveRequestRepo.Create(ctx, request); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить заявку")
	}

	return request, nil
}

func newFloor(input FloorInput) (valueobject.FloorDetails, error) {
	return valueobject.NewFloorDetails(input.Floor, input.HasElevator, input.NeedsNoParkingZone, input.WalkingDistanceMeters, input.NarrowStairs, input.CarryOverThresholds)
}
