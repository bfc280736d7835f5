package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
)

func newRequest(t *testing.T) *entity.MoveRequest {
	t.Helper()
	request, err := entity.NewMoveRequest(uuid.New(), valueobject.MoveDetails{MoveDate: testNow.Add(14 * 24 * time.Hour)}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return request
}

func advanceToFinalOffer(t *testing.T, request *entity.MoveRequest) {
	t.Helper()
	if err := request.AttachInventory(uuid.New(), testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.ConfirmInventory(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.MarkEstimatesReady(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.MarkFinalOfferSubmitted(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewMoveRequest_RequiresVideo(t *testing.T) {
	if _, err := entity.NewMoveRequest(uuid.Nil, valueobject.MoveDetails{}, testNow); err == nil {
		t.Fatal("expected error for nil video id")
	}
}

func TestMoveRequest_HappyPath(t *testing.T) {
	request := newRequest(t)
	if request.Status != valueobject.MoveRequestStatusDraft {
		t.Fatalf("expected draft status, got %s", request.Status)
	}

	if err := request.AttachInventory(uuid.New(), testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != valueobject.MoveRequestStatusInventoryPending {
		t.Errorf("expected inventory_pending, got %s", request.Status)
	}

	if err := request.ConfirmInventory(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.MarkEstimatesReady(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.AssignProvider(uuid.New(), testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.MarkFinalOfferPending(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.MarkFinalOfferSubmitted(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.Accept(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != valueobject.MoveRequestStatusAccepted {
		t.Errorf("expected accepted, got %s", request.Status)
	}
	if request.IsActive() {
		t.Error("accepted request must not be active")
	}
}

func TestMoveRequest_AttachInventory_Twice(t *testing.T) {
	request := newRequest(t)
	if err := request.AttachInventory(uuid.New(), testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.AttachInventory(uuid.New(), testNow); err == nil {
		t.Fatal("expected conflict on second inventory attach")
	}
}

func TestMoveRequest_ConfirmInventory_WithoutInventory(t *testing.T) {
	request := newRequest(t)
	if err := request.ConfirmInventory(testNow); err == nil {
		t.Fatal("expected error confirming without inventory")
	}
}

func TestMoveRequest_AssignProvider_Twice(t *testing.T) {
	request := newRequest(t)
	if err := request.AssignProvider(uuid.New(), testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := request.AssignProvider(uuid.New(), testNow); err == nil {
		t.Fatal("expected conflict on second provider assignment")
	}
}

func TestMoveRequest_SkippedStagesRejected(t *testing.T) {
	request := newRequest(t)

	if err := request.MarkEstimatesReady(testNow); err == nil {
		t.Error("expected error marking estimates ready from draft")
	}
	if err := request.Accept(testNow); err == nil {
		t.Error("expected error accepting from draft")
	}
	if err := request.Reject(testNow); err == nil {
		t.Error("expected error rejecting from draft")
	}
}

func TestMoveRequest_TerminalStatusesFrozen(t *testing.T) {
	request := newRequest(t)
	advanceToFinalOffer(t, request)
	if err := request.Accept(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := request.AttachInventory(uuid.New(), testNow); err == nil {
		t.Error("expected error attaching inventory to a finished request")
	}
	if err := request.AssignProvider(uuid.New(), testNow); err == nil {
		t.Error("expected error assigning provider to a finished request")
	}
	if err := request.Expire(testNow); err == nil {
		t.Error("expected error expiring a finished request")
	}
}

func TestMoveRequest_ExpireFromAnyActiveStatus(t *testing.T) {
	request := newRequest(t)
	if err := request.Expire(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != valueobject.MoveRequestStatusExpired {
		t.Errorf("expected expired, got %s", request.Status)
	}

	request = newRequest(t)
	advanceToFinalOffer(t, request)
	if err := request.Expire(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != valueobject.MoveRequestStatusExpired {
		t.Errorf("expected expired, got %s", request.Status)
	}
}

func TestMoveRequest_Validate(t *testing.T) {
	request := newRequest(t)
	if err := request.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Статус с обязательной описью, но без привязанной описи.
	request.Status = valueobject.MoveRequestStatusEstimatesReady
	if err := request.Validate(); err == nil {
		t.Error("expected error for estimates_ready without inventory")
	}

	request = newRequest(t)
	sentAt := testNow
	request.SentAt = &sentAt
	if err := request.Validate(); err == nil {
		t.Error("expected error for sentAt outside of sent status")
	}
}
