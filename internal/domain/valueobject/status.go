package valueobject

import "github.com/ignatzorin/mymove-backend/internal/pkg/apperror"

// MoveRequestStatus описывает этап обработки заявки на переезд.
//
// Основной поток:
// draft → inventory_pending → inventory_confirmed → estimates_ready →
// company_selected → final_offer_pending → final_offer_submitted → accepted/rejected.
// Любой незавершённый статус может перейти в expired.
// Статусы ready_to_send/sent/failed остались от старого поведения рассылки.
type MoveRequestStatus string

const (
	MoveRequestStatusDraft               MoveRequestStatus = "draft"
	MoveRequestStatusInventoryPending    MoveRequestStatus = "inventory_pending"
	MoveRequestStatusInventoryConfirmed  MoveRequestStatus = "inventory_confirmed"
	MoveRequestStatusEstimatesReady      MoveRequestStatus = "estimates_ready"
	MoveRequestStatusCompanySelected     MoveRequestStatus = "company_selected"
	MoveRequestStatusFinalOfferPending   MoveRequestStatus = "final_offer_pending"
	MoveRequestStatusFinalOfferSubmitted MoveRequestStatus = "final_offer_submitted"
	MoveRequestStatusAccepted            MoveRequestStatus = "accepted"
	MoveRequestStatusRejected            MoveRequestStatus = "rejected"
	MoveRequestStatusExpired             MoveRequestStatus = "expired"

	// Legacy-статусы старого flow рассылки предложений.
	MoveRequestStatusReadyToSend MoveRequestStatus = "ready_to_send"
	MoveRequestStatusSent        MoveRequestStatus = "sent"
	MoveRequestStatusFailed      MoveRequestStatus = "failed"
)

func (s MoveRequestStatus) IsValid() bool {
	switch s {
	case MoveRequestStatusDraft, MoveRequestStatusInventoryPending, MoveRequestStatusInventoryConfirmed,
		MoveRequestStatusEstimatesReady, MoveRequestStatusCompanySelected, MoveRequestStatusFinalOfferPending,
		MoveRequestStatusFinalOfferSubmitted, MoveRequestStatusAccepted, MoveRequestStatusRejected,
		MoveRequestStatusExpired, MoveRequestStatusReadyToSend, MoveRequestStatusSent, MoveRequestStatusFailed:
		return true
	}
	return false
}

// IsTerminal сообщает, завершён ли жизненный цикл заявки.
func (s MoveRequestStatus) IsTerminal() bool {
	switch s {
	case MoveRequestStatusAccepted, MoveRequestStatusRejected, MoveRequestStatusExpired:
		return true
	}
	return false
}

// RequiresInventory сообщает, обязана ли заявка в этом статусе
// иметь привязанную инвентарную опись.
func (s MoveRequestStatus) RequiresInventory() bool {
	switch s {
	case MoveRequestStatusInventoryConfirmed, MoveRequestStatusEstimatesReady,
		MoveRequestStatusCompanySelected, MoveRequestStatusFinalOfferPending,
		MoveRequestStatusFinalOfferSubmitted:
		return true
	}
	return false
}

func NewMoveRequestStatus(status string) (MoveRequestStatus, error) {
	s := MoveRequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

// BidStatus описывает жизненный цикл оферты компании.
type BidStatus string

const (
	BidStatusDraft     BidStatus = "draft"
	BidStatusSubmitted BidStatus = "submitted"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusExpired   BidStatus = "expired"
)

func (s BidStatus) IsValid() bool {
	switch s {
	case BidStatusDraft, BidStatusSubmitted, BidStatusAccepted, BidStatusRejected, BidStatusExpired:
		return true
	}
	return false
}

// IsTerminal: из accepted/rejected/expired переходов больше нет.
func (s BidStatus) IsTerminal() bool {
	switch s {
	case BidStatusAccepted, BidStatusRejected, BidStatusExpired:
		return true
	}
	return false
}

func (s BidStatus) CanTransitionTo(newStatus BidStatus) bool {
	transitions := map[BidStatus][]BidStatus{
		BidStatusDraft:     {BidStatusSubmitted},
		BidStatusSubmitted: {BidStatusAccepted, BidStatusRejected, BidStatusExpired},
		BidStatusAccepted:  {},
		BidStatusRejected:  {},
		BidStatusExpired:   {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewBidStatus(status string) (BidStatus, error) {
	s := BidStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус оферты")
	}
	return s, nil
}

// InventoryStatus: опись редактируется только до подтверждения.
type InventoryStatus string

const (
	InventoryStatusDraft     InventoryStatus = "draft"
	InventoryStatusConfirmed InventoryStatus = "confirmed"
)

func (s InventoryStatus) IsValid() bool {
	return s == InventoryStatusDraft || s == InventoryStatusConfirmed
}

func NewInventoryStatus(status string) (InventoryStatus, error) {
	s := InventoryStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус описи")
	}
	return s, nil
}

// ItemSource указывает происхождение позиции описи: распознана
// автоматически или внесена вручную. Понижение detected → manual
// происходит при правке позиции и назад не откатывается.
type ItemSource string

const (
	ItemSourceDetected ItemSource = "detected"
	ItemSourceManual   ItemSource = "manual"
)

func (s ItemSource) IsValid() bool {
	return s == ItemSourceDetected || s == ItemSourceManual
}

func NewItemSource(source string) (ItemSource, error) {
	s := ItemSource(source)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный источник позиции")
	}
	return s, nil
}
