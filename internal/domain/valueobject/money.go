package valueobject

import (
	"fmt"
	"math"

	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// Money хранит денежную сумму с точностью до цента.
// Все денежные расчёты в системе округляются half-up до двух знаков.
type Money struct {
	Amount   float64
	Currency string
}

func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "сумма не может быть отрицательной")
	}
	if currency == "" {
		currency = "EUR"
	}
	return Money{Amount: Round2(amount), Currency: currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount, m.Currency)
}

// Round2 округляет сумму half-up до двух десятичных знаков.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
