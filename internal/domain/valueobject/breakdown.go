package valueobject

// BreakdownDetail — одна строка расшифровки цены для клиента.
// Порядок строк сохраняется таким, каким его записал движок расчёта.
type BreakdownDetail struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// CostBreakdown — расшифровка стоимости переезда по компонентам.
// Все суммы неотрицательны и округлены до двух знаков.
// Total равен Subtotal: налоговый слой в системе отсутствует.
type CostBreakdown struct {
	BaseFee           float64           `json:"base_fee"`
	TravelFee         float64           `json:"travel_fee"`
	LaborCost         float64           `json:"labor_cost"`
	VolumeCost        float64           `json:"volume_cost"`
	FloorSurcharge    float64           `json:"floor_surcharge"`
	DistanceSurcharge float64           `json:"distance_surcharge"`
	OtherSurcharges   float64           `json:"other_surcharges"`
	Subtotal          float64           `json:"subtotal"`
	Total             float64           `json:"total"`
	Details           []BreakdownDetail `json:"details"`
}

// NewCostBreakdown нормализует компоненты и вычисляет итог.
// Subtotal и Total никогда не принимаются извне.
func NewCostBreakdown(baseFee, travelFee, laborCost, volumeCost, floorSurcharge, distanceSurcharge, otherSurcharges float64, details []BreakdownDetail) CostBreakdown {
	b := CostBreakdown{
		BaseFee:           Round2(baseFee),
		TravelFee:         Round2(travelFee),
		LaborCost:         Round2(laborCost),
		VolumeCost:        Round2(volumeCost),
		FloorSurcharge:    Round2(floorSurcharge),
		DistanceSurcharge: Round2(distanceSurcharge),
		OtherSurcharges:   Round2(otherSurcharges),
	}

	b.Subtotal = Round2(b.BaseFee + b.TravelFee + b.LaborCost + b.VolumeCost + b.FloorSurcharge + b.DistanceSurcharge + b.OtherSurcharges)
	b.Total = b.Subtotal

	if details != nil {
		b.Details = make([]BreakdownDetail, len(details))
		copy(b.Details, details)
	}

	return b
}

// IsZero сообщает, что расшифровка пустая (все компоненты нулевые).
func (b CostBreakdown) IsZero() bool {
	return b.Total == 0 && b.Subtotal == 0
}
