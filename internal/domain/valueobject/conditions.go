package valueobject

import (
	"strings"

	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// Граничные значения для прайс-параметров компании.
const (
	MaxHourlyRate         = 500.00
	MaxTravelFee          = 1000.00
	MaxExtraChargePercent = 100.00
)

// PricingConditions — прайс-параметры компании-перевозчика.
// Валидация диапазонов выполняется здесь, на границе,
// движок расчёта получает уже проверенные значения.
type PricingConditions struct {
	HourlyRate         float64
	TravelFee          float64
	BaseFee            *float64
	ExtraChargePercent *float64
	MinimumPrice       *float64
	Currency           string
}

func NewPricingConditions(hourlyRate, travelFee float64, baseFee, extraChargePercent, minimumPrice *float64, currency string) (PricingConditions, error) {
	if hourlyRate <= 0 {
		return PricingConditions{}, apperror.New(apperror.ErrCodeValidation, "почасовая ставка должна быть положительной")
	}
	if hourlyRate > MaxHourlyRate {
		return PricingConditions{}, apperror.New(apperror.ErrCodeValidation, "почасовая ставка превышает допустимый максимум")
	}
	if travelFee < 0 {
		return PricingConditions{}, apperror.New(apperror.ErrCodeValidation, "плата за выезд не может быть отрицательной")
	}
	if travelFee > MaxTravelFee {
		return PricingConditions{}, apperror.New(apperror.ErrCodeValidation, "плата за выезд превышает допустимый максимум")
	}

	if baseFee != nil {
		if *baseFee < 0 {
			return PricingConditions{}, apperror.New(apperror.ErrCodeValidation, "базовая плата не может быть отрицательной")
		}
		rounded := Round2(*baseFee)
		baseFee = &rounded
	}
	if extraChargePercent != nil {
		if *extraChargePercent < 0 || *extraChargePercent > MaxExtraChargePercent {
			return PricingConditions{}, apperror.New(apperror.ErrCodeValidation, "наценка вне допустимого диапазона")
		}
		rounded := Round2(*extraChargePercent)
		extraChargePercent = &rounded
	}
	if minimumPrice != nil {
		if *minimumPrice < 0 {
			return PricingConditions{}, apperror.New(apperror.ErrCodeValidation, "минимальная цена не может быть отрицательной")
		}
		rounded := Round2(*minimumPrice)
		minimumPrice = &rounded
	}

	if currency == "" {
		currency = "EUR"
	}

	return PricingConditions{
		HourlyRate:         Round2(hourlyRate),
		TravelFee:          Round2(travelFee),
		BaseFee:            baseFee,
		ExtraChargePercent: extraChargePercent,
		MinimumPrice:       minimumPrice,
		Currency:           strings.ToUpper(currency),
	}, nil
}

// ApplyMinimumPrice поднимает расчётную цену до минимальной, если она задана.
func (c PricingConditions) ApplyMinimumPrice(calculated float64) float64 {
	if c.MinimumPrice == nil {
		return calculated
	}
	if calculated < *c.MinimumPrice {
		return *c.MinimumPrice
	}
	return calculated
}

// BaseFeeOrZero возвращает базовую плату либо ноль.
func (c PricingConditions) BaseFeeOrZero() float64 {
	if c.BaseFee == nil {
		return 0
	}
	return *c.BaseFee
}
