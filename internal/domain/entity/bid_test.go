package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newDraftBid(t *testing.T, price float64, validityDays int) *entity.Bid {
	t.Helper()
	b, err := entity.NewAdjustedBid(uuid.New(), uuid.New(), nil, price, valueobject.CostBreakdown{}, validityDays, "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func newSubmittedBid(t *testing.T, price float64, validityDays int) *entity.Bid {
	t.Helper()
	b := newDraftBid(t, price, validityDays)
	if err := b.Submit(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestNewAdjustedBid_Validation(t *testing.T) {
	if _, err := entity.NewAdjustedBid(uuid.Nil, uuid.New(), nil, 100, valueobject.CostBreakdown{}, 7, "", testNow); err == nil {
		t.Error("expected error for nil move request id")
	}
	if _, err := entity.NewAdjustedBid(uuid.New(), uuid.Nil, nil, 100, valueobject.CostBreakdown{}, 7, "", testNow); err == nil {
		t.Error("expected error for nil provider id")
	}
	if _, err := entity.NewAdjustedBid(uuid.New(), uuid.New(), nil, -1, valueobject.CostBreakdown{}, 7, "", testNow); err == nil {
		t.Error("expected error for negative price")
	}
	if _, err := entity.NewAdjustedBid(uuid.New(), uuid.New(), nil, 100, valueobject.CostBreakdown{}, 0, "", testNow); err == nil {
		t.Error("expected error for zero validity days")
	}
	if _, err := entity.NewAdjustedBid(uuid.New(), uuid.New(), nil, 100, valueobject.CostBreakdown{}, 91, "", testNow); err == nil {
		t.Error("expected error for validity days over maximum")
	}
}

func TestBid_UpdatePrice_OnlyInDraft(t *testing.T) {
	b := newDraftBid(t, 900, 7)

	if err := b.UpdatePrice(850, valueobject.CostBreakdown{}, "скидка"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalPrice != 850 {
		t.Errorf("expected price 850, got %f", b.TotalPrice)
	}
	if b.Notes != "скидка" {
		t.Errorf("expected notes to be updated, got %q", b.Notes)
	}

	if err := b.Submit(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.UpdatePrice(800, valueobject.CostBreakdown{}, ""); err == nil {
		t.Error("expected error updating price after submit")
	}
}

func TestBid_Lifecycle(t *testing.T) {
	b := newDraftBid(t, 900, 7)

	if err := b.Accept(testNow); err == nil {
		t.Error("expected error accepting a draft")
	}
	if err := b.Submit(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.SubmittedAt == nil {
		t.Fatal("expected submittedAt to be set")
	}
	if err := b.Submit(testNow); err == nil {
		t.Error("expected error submitting twice")
	}

	if err := b.Accept(testNow.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != valueobject.BidStatusAccepted {
		t.Errorf("expected status accepted, got %s", b.Status)
	}
	if err := b.Reject(testNow, "поздно"); err == nil {
		t.Error("expected error rejecting an accepted bid")
	}
	if err := b.Expire(); err == nil {
		t.Error("expected error expiring an accepted bid")
	}
}

func TestBid_Reject_RequiresReason(t *testing.T) {
	b := newSubmittedBid(t, 900, 7)

	if err := b.Reject(testNow, "   "); err == nil {
		t.Error("expected error for blank reason")
	}
	if err := b.Reject(testNow, "слишком дорого"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.RejectionReason != "слишком дорого" {
		t.Errorf("expected trimmed reason, got %q", b.RejectionReason)
	}
}

func TestBid_ExpiryDate(t *testing.T) {
	b := newDraftBid(t, 900, 7)
	if b.ExpiryDate() != nil {
		t.Error("expected no expiry date before submit")
	}

	if err := b.Submit(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expiry := b.ExpiryDate()
	if expiry == nil {
		t.Fatal("expected expiry date after submit")
	}
	want := testNow.Add(7 * 24 * time.Hour)
	if !expiry.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, expiry)
	}
}

func TestBid_IsExpired_Boundary(t *testing.T) {
	b := newSubmittedBid(t, 900, 7)
	deadline := testNow.Add(7 * 24 * time.Hour)

	if b.IsExpired(deadline.Add(-time.Second)) {
		t.Error("bid must still be valid one second before the deadline")
	}
	if !b.IsExpired(deadline) {
		t.Error("bid must be expired exactly at the deadline")
	}
	if !b.IsExpired(deadline.Add(time.Hour)) {
		t.Error("bid must be expired after the deadline")
	}
}

func TestBid_IsExpired_TerminalStatusesIgnoreDeadline(t *testing.T) {
	b := newSubmittedBid(t, 900, 7)
	if err := b.Accept(testNow.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.IsExpired(testNow.Add(30 * 24 * time.Hour)) {
		t.Error("accepted bid must not be reported as expired")
	}
}

func TestBid_Validate_StatusInvariants(t *testing.T) {
	b := newSubmittedBid(t, 900, 7)
	if err := b.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Поданная оферта не может нести метки решения.
	rejectedAt := testNow.Add(time.Hour)
	b.RejectedAt = &rejectedAt
	if err := b.Validate(); err == nil {
		t.Error("expected error for submitted bid with rejection timestamp")
	}

	b.RejectedAt = nil
	b.Status = valueobject.BidStatusRejected
	if err := b.Validate(); err == nil {
		t.Error("expected error for rejected bid without rejection fields")
	}
}
