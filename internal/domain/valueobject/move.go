package valueobject

import (
	"fmt"
	"strings"
	"time"

	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// Address — почтовый адрес одной из сторон переезда.
type Address struct {
	Street         string
	HouseNumber    string
	PostalCode     string
	City           string
	Country        string
	AdditionalInfo string
}

func NewAddress(street, houseNumber, postalCode, city, country, additionalInfo string) (Address, error) {
	a := Address{
		Street:         strings.TrimSpace(street),
		HouseNumber:    strings.TrimSpace(houseNumber),
		PostalCode:     strings.TrimSpace(postalCode),
		City:           strings.TrimSpace(city),
		Country:        strings.TrimSpace(country),
		AdditionalInfo: strings.TrimSpace(additionalInfo),
	}

	if a.Street == "" {
		return Address{}, apperror.New(apperror.ErrCodeValidation, "улица обязательна")
	}
	if a.HouseNumber == "" {
		return Address{}, apperror.New(apperror.ErrCodeValidation, "номер дома обязателен")
	}
	if a.PostalCode == "" {
		return Address{}, apperror.New(apperror.ErrCodeValidation, "почтовый индекс обязателен")
	}
	if a.City == "" {
		return Address{}, apperror.New(apperror.ErrCodeValidation, "город обязателен")
	}
	if a.Country == "" {
		return Address{}, apperror.New(apperror.ErrCodeValidation, "страна обязательна")
	}

	return a, nil
}

// SameCity сравнивает города без учёта регистра.
func (a Address) SameCity(other Address) bool {
	return a.City != "" && strings.EqualFold(a.City, other.City)
}

func (a Address) FormattedLine() string {
	return fmt.Sprintf("%s %s, %s %s, %s", a.Street, a.HouseNumber, a.PostalCode, a.City, a.Country)
}

// FloorDetails описывает этаж и условия подъёма на одной стороне переезда.
// Floor: 0 — первый этаж, отрицательные значения — подвал.
type FloorDetails struct {
	Floor                 int
	HasElevator           bool
	NeedsNoParkingZone    bool
	WalkingDistanceMeters *int
	NarrowStairs          bool
	CarryOverThresholds   bool
}

func NewFloorDetails(floor int, hasElevator, needsNoParkingZone bool, walkingDistanceMeters *int, narrowStairs, carryOverThresholds bool) (FloorDetails, error) {
	if floor < -10 || floor > 200 {
		return FloorDetails{}, apperror.New(apperror.ErrCodeValidation, "этаж вне допустимого диапазона")
	}
	if walkingDistanceMeters != nil && (*walkingDistanceMeters < 0 || *walkingDistanceMeters > 2000) {
		return FloorDetails{}, apperror.New(apperror.ErrCodeValidation, "дистанция подноса вне допустимого диапазона")
	}

	return FloorDetails{
		Floor:                 floor,
		HasElevator:           hasElevator,
		NeedsNoParkingZone:    needsNoParkingZone,
		WalkingDistanceMeters: walkingDistanceMeters,
		NarrowStairs:          narrowStairs,
		CarryOverThresholds:   carryOverThresholds,
	}, nil
}

func GroundFloor(hasElevator, needsNoParkingZone bool) FloorDetails {
	return FloorDetails{Floor: 0, HasElevator: hasElevator, NeedsNoParkingZone: needsNoParkingZone}
}

// MoveDetails собирает параметры переезда: адреса, этажи, дата.
type MoveDetails struct {
	FromAddress Address
	ToAddress   Address
	FromFloor   FloorDetails
	ToFloor     FloorDetails
	NeedsBoxes  bool
	BoxesCount  *int
	MoveDate    time.Time
}

func NewMoveDetails(from, to Address, fromFloor, toFloor FloorDetails, needsBoxes bool, boxesCount *int, moveDate time.Time) (MoveDetails, error) {
	if moveDate.IsZero() {
		return MoveDetails{}, apperror.New(apperror.ErrCodeValidation, "дата переезда обязательна")
	}
	if needsBoxes && (boxesCount == nil || *boxesCount <= 0) {
		return MoveDetails{}, apperror.New(apperror.ErrCodeValidation, "количество коробок должно быть положительным")
	}
	if !needsBoxes && boxesCount != nil {
		return MoveDetails{}, apperror.New(apperror.ErrCodeValidation, "количество коробок указывается только вместе с needsBoxes")
	}

	return MoveDetails{
		FromAddress: from,
		ToAddress:   to,
		FromFloor:   fromFloor,
		ToFloor:     toFloor,
		NeedsBoxes:  needsBoxes,
		BoxesCount:  boxesCount,
		MoveDate:    moveDate,
	}, nil
}
