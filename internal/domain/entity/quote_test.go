package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
)

func testBreakdown(total float64) valueobject.CostBreakdown {
	return valueobject.NewCostBreakdown(0, 0, total, 0, 0, 0, 0, nil)
}

func TestNewQuote_PriceRangeBracketsTotal(t *testing.T) {
	conditions, err := valueobject.NewPricingConditions(65, 45, nil, nil, nil, "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, err := entity.NewQuote(uuid.New(), uuid.New(), testBreakdown(500), 3, 12, conditions, 7, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.TotalPrice != 500 {
		t.Errorf("expected total 500, got %f", q.TotalPrice)
	}
	if q.PriceRangeLow != 425 {
		t.Errorf("expected low 425, got %f", q.PriceRangeLow)
	}
	if q.PriceRangeHigh != 575 {
		t.Errorf("expected high 575, got %f", q.PriceRangeHigh)
	}
	if q.PriceRangeLow > q.TotalPrice || q.PriceRangeHigh < q.TotalPrice {
		t.Error("total must lie inside the price range")
	}
}

func TestNewQuote_MinimumPriceFloor(t *testing.T) {
	minimum := 250.0
	conditions, err := valueobject.NewPricingConditions(55, 60, nil, nil, &minimum, "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Расчётная цена ниже минимальной поднимается до порога.
	q, err := entity.NewQuote(uuid.New(), uuid.New(), testBreakdown(180), 2, 4, conditions, 7, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TotalPrice != 250 {
		t.Errorf("expected minimum price 250, got %f", q.TotalPrice)
	}

	// Цена выше минимальной не трогается.
	q, err = entity.NewQuote(uuid.New(), uuid.New(), testBreakdown(400), 2, 4, conditions, 7, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TotalPrice != 400 {
		t.Errorf("expected price 400, got %f", q.TotalPrice)
	}
}

func TestNewQuote_DefaultValidityDays(t *testing.T) {
	conditions, err := valueobject.NewPricingConditions(65, 45, nil, nil, nil, "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, err := entity.NewQuote(uuid.New(), uuid.New(), testBreakdown(300), 2, 4, conditions, 0, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.ValidUntil == nil {
		t.Fatal("expected validUntil to be set")
	}
	want := testNow.Add(entity.DefaultQuoteValidityDays * 24 * time.Hour)
	if !q.ValidUntil.Equal(want) {
		t.Errorf("expected validUntil %v, got %v", want, q.ValidUntil)
	}
}

func TestQuote_ValidityBoundary(t *testing.T) {
	conditions, err := valueobject.NewPricingConditions(65, 45, nil, nil, nil, "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, err := entity.NewQuote(uuid.New(), uuid.New(), testBreakdown(300), 2, 4, conditions, 7, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := testNow.Add(7 * 24 * time.Hour)
	if !q.IsValid(deadline.Add(-time.Second)) {
		t.Error("quote must be valid one second before the deadline")
	}
	if q.IsValid(deadline) {
		t.Error("quote must be invalid exactly at the deadline")
	}
	if !q.IsExpired(deadline) {
		t.Error("quote must be expired exactly at the deadline")
	}
}

func TestQuote_Validate_RangeInvariants(t *testing.T) {
	q := &entity.Quote{TotalPrice: 100, PriceRangeLow: 120, PriceRangeHigh: 150}
	if err := q.Validate(); err == nil {
		t.Error("expected error when low exceeds total")
	}

	q = &entity.Quote{TotalPrice: 100, PriceRangeLow: 85, PriceRangeHigh: 90}
	if err := q.Validate(); err == nil {
		t.Error("expected error when high is below total")
	}

	q = &entity.Quote{TotalPrice: 100, PriceRangeLow: 85, PriceRangeHigh: 115}
	if err := q.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
