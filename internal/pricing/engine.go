package pricing

import (
	"fmt"
	"math"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// Константы модели расчёта.
const (
	volumeRatePerM3       = 15.00 // EUR за m³
	floorSurchargePerLvl  = 25.00 // EUR за этаж без лифта
	elevatorDiscount      = 0.80  // скидка 20% при наличии лифта
	kmRate                = 2.50  // EUR за км сверх порога
	freeDistanceKm        = 50.0  // км без надбавки за дистанцию
	avgSpeedKmh           = 50.0  // средняя скорость для оценки времени
	setupTimeMinutes      = 30.0  // подготовка/сборка на каждой стороне
	itemMinutes           = 5.0   // минут на предмет
	volumePerHourM3       = 20.0  // m³ погрузки в час
	workersPerJob         = 2.0   // грузчиков на заказ
	minimumJobHours       = 2.0   // минимальная длительность заказа
	defaultDistanceKm     = 10.0  // дистанция при неизвестных адресах
	sameCityDistanceKm    = 8.0
	defaultFarDistanceKm  = 50.0
)

// Engine — движок расчёта стоимости переезда. Детерминированный и без
// состояния: одинаковые входы всегда дают одинаковую расшифровку.
// Минимальная цена компании здесь НЕ применяется — движок отдаёт
// расшифровку без нижнего порога, порог накладывает создание оценки.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// ComputeBreakdown считает расшифровку стоимости по параметрам переезда.
// Отсутствующие этажи и пустая опись трактуются как нулевой вклад:
// компания может получить оценку до того, как собраны все данные.
func (e *Engine) ComputeBreakdown(
	conditions *valueobject.PricingConditions,
	fromFloor, toFloor *valueobject.FloorDetails,
	inventory *entity.Inventory,
	distanceKm float64,
) (valueobject.CostBreakdown, error) {
	if conditions == nil {
		return valueobject.CostBreakdown{}, apperror.New(apperror.ErrCodeValidation, "прайс-параметры компании обязательны")
	}

	details := make([]valueobject.BreakdownDetail, 0, 6)
	addDetail := func(label string, amount float64) {
		if amount > 0 {
			details = append(details, valueobject.BreakdownDetail{Label: label, Amount: valueobject.Round2(amount)})
		}
	}

	baseFee := conditions.BaseFeeOrZero()
	travelFee := conditions.TravelFee
	addDetail("Базовая плата", baseFee)
	addDetail("Плата за выезд", travelFee)

	totalVolume := 0.0
	itemCount := 0
	if inventory != nil {
		totalVolume = inventory.TotalVolume
		itemCount = inventory.TotalItemCount()
	}

	volumeCost := valueobject.Round2(volumeRatePerM3 * totalVolume)
	addDetail(fmt.Sprintf("Объём (%.2f m³)", totalVolume), volumeCost)

	distanceSurcharge := e.distanceSurcharge(distanceKm)
	addDetail(fmt.Sprintf("Надбавка за дистанцию (%.1f км)", distanceKm), distanceSurcharge)

	floorSurcharge := valueobject.Round2(singleFloorSurcharge(fromFloor) + singleFloorSurcharge(toFloor))
	addDetail("Надбавка за этажи", floorSurcharge)

	hours := e.EstimateWorkHours(fromFloor, toFloor, totalVolume, distanceKm, itemCount)
	laborCost := valueobject.Round2(conditions.HourlyRate * hours * workersPerJob)
	addDetail(fmt.Sprintf("Работа (%s)", formatHours(hours)), laborCost)

	return valueobject.NewCostBreakdown(baseFee, travelFee, laborCost, volumeCost, floorSurcharge, distanceSurcharge, 0, details), nil
}

// EstimateWorkHours оценивает трудозатраты в часах. Не убывает по
// объёму, дистанции и количеству предметов.
func (e *Engine) EstimateWorkHours(fromFloor, toFloor *valueobject.FloorDetails, totalVolume, distanceKm float64, itemCount int) float64 {
	drivingHours := distanceKm / avgSpeedKmh * 2 // туда и обратно
	volumeHours := totalVolume / volumePerHourM3
	itemHours := float64(itemCount) * itemMinutes / 60.0
	setupHours := setupTimeMinutes * 2.0 / 60.0

	floorFactor := math.Max(floorFactor(fromFloor), floorFactor(toFloor))

	total := drivingHours + volumeHours*floorFactor + itemHours + setupHours
	return math.Max(total, minimumJobHours)
}

// EstimateDistance — грубая эвристика вместо геокодирования:
// один город — 8 км, разные — 50 км, неизвестные адреса — 10 км.
// Результат передаётся в ComputeBreakdown параметром, чтобы подмена
// эвристики на геокодер не трогала сам движок.
func (e *Engine) EstimateDistance(from, to *valueobject.Address) float64 {
	if from == nil || to == nil {
		return defaultDistanceKm
	}
	if from.SameCity(*to) {
		return sameCityDistanceKm
	}
	return defaultFarDistanceKm
}

func (e *Engine) distanceSurcharge(distanceKm float64) float64 {
	if distanceKm <= freeDistanceKm {
		return 0
	}
	return valueobject.Round2(kmRate * (distanceKm - freeDistanceKm))
}

// singleFloorSurcharge: первый этаж бесплатен независимо от лифта,
// выше и ниже — по тарифу за этаж, лифт даёт скидку.
func singleFloorSurcharge(floor *valueobject.FloorDetails) float64 {
	if floor == nil || floor.Floor == 0 {
		return 0
	}

	surcharge := floorSurchargePerLvl * math.Abs(float64(floor.Floor))
	if floor.HasElevator {
		surcharge *= elevatorDiscount
	}
	return valueobject.Round2(surcharge)
}

// floorFactor — множитель трудозатрат за этажность одной стороны.
func floorFactor(floor *valueobject.FloorDetails) float64 {
	if floor == nil {
		return 1.0
	}

	factor := 1.0 + math.Abs(float64(floor.Floor))*0.1
	if floor.HasElevator {
		factor *= 0.7
	}
	return factor
}

func formatHours(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%dч %02dмин", h, m)
}
