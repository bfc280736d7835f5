package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// MoveRequest — корневой агрегат заявки на переезд.
// Статус отражает самый продвинутый этап обработки: опись, оценки,
// выбор компании, финальная оферта. Заявка никогда не удаляется,
// только продвигается по статусам через методы-переходы.
type MoveRequest struct {
	ID          uuid.UUID
	Status      valueobject.MoveRequestStatus
	VideoID     uuid.UUID
	InventoryID *uuid.UUID
	ProviderID  *uuid.UUID
	MoveDetails valueobject.MoveDetails
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SentAt      *time.Time
	ExpiresAt   *time.Time
}

func NewMoveRequest(videoID uuid.UUID, details valueobject.MoveDetails, now time.Time) (*MoveRequest, error) {
	if videoID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "ссылка на видео обязательна")
	}

	return &MoveRequest{
		ID:          uuid.New(),
		Status:      valueobject.MoveRequestStatusDraft,
		VideoID:     videoID,
		MoveDetails: details,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AttachInventory привязывает инвентарную опись к заявке.
// Повторная привязка запрещена.
func (m *MoveRequest) AttachInventory(inventoryID uuid.UUID, now time.Time) error {
	if inventoryID == uuid.Nil {
		return apperror.New(apperror.ErrCodeValidation, "идентификатор описи обязателен")
	}
	if m.InventoryID != nil {
		return apperror.New(apperror.ErrCodeConflict, "опись уже привязана к заявке")
	}
	if m.Status.IsTerminal() {
		return apperror.New(apperror.ErrCodeInvalidState, "заявка уже завершена")
	}

	m.InventoryID = &inventoryID
	m.Status = valueobject.MoveRequestStatusInventoryPending
	m.UpdatedAt = now
	return nil
}

// ConfirmInventory фиксирует, что клиент подтвердил опись.
func (m *MoveRequest) ConfirmInventory(now time.Time) error {
	if m.InventoryID == nil {
		return apperror.New(apperror.ErrCodeInvalidState, "невозможно подтвердить опись: опись не привязана")
	}
	if m.Status != valueobject.MoveRequestStatusDraft && m.Status != valueobject.MoveRequestStatusInventoryPending {
		return apperror.New(apperror.ErrCodeInvalidState, "невозможно подтвердить опись в текущем статусе")
	}

	m.Status = valueobject.MoveRequestStatusInventoryConfirmed
	m.UpdatedAt = now
	return nil
}

// MarkEstimatesReady отмечает, что оценки компаний рассчитаны.
func (m *MoveRequest) MarkEstimatesReady(now time.Time) error {
	if m.Status != valueobject.MoveRequestStatusInventoryConfirmed {
		return apperror.New(apperror.ErrCodeInvalidState, "оценки возможны только после подтверждения описи")
	}

	m.Status = valueobject.MoveRequestStatusEstimatesReady
	m.UpdatedAt = now
	return nil
}

// AssignProvider закрепляет заявку за выбранной компанией.
// Повторное назначение запрещено: выбор компании не пересматривается.
func (m *MoveRequest) AssignProvider(providerID uuid.UUID, now time.Time) error {
	if providerID == uuid.Nil {
		return apperror.New(apperror.ErrCodeValidation, "идентификатор компании обязателен")
	}
	if m.ProviderID != nil {
		return apperror.New(apperror.ErrCodeConflict, "компания уже назначена на заявку")
	}
	if m.Status.IsTerminal() {
		return apperror.New(apperror.ErrCodeInvalidState, "заявка уже завершена")
	}

	m.ProviderID = &providerID
	m.Status = valueobject.MoveRequestStatusCompanySelected
	m.UpdatedAt = now
	return nil
}

// MarkFinalOfferPending: заявка ждёт финальную оферту компании.
func (m *MoveRequest) MarkFinalOfferPending(now time.Time) error {
	if m.Status != valueobject.MoveRequestStatusCompanySelected {
		return apperror.New(apperror.ErrCodeInvalidState, "ожидание оферты возможно только после выбора компании")
	}

	m.Status = valueobject.MoveRequestStatusFinalOfferPending
	m.UpdatedAt = now
	return nil
}

// MarkFinalOfferSubmitted: компания подала финальную оферту.
func (m *MoveRequest) MarkFinalOfferSubmitted(now time.Time) error {
	switch m.Status {
	case valueobject.MoveRequestStatusEstimatesReady,
		valueobject.MoveRequestStatusCompanySelected,
		valueobject.MoveRequestStatusFinalOfferPending:
		m.Status = valueobject.MoveRequestStatusFinalOfferSubmitted
		m.UpdatedAt = now
		return nil
	}
	return apperror.New(apperror.ErrCodeInvalidState, "оферта не может быть подана в текущем статусе заявки")
}

// Accept завершает заявку принятием оферты.
func (m *MoveRequest) Accept(now time.Time) error {
	if m.Status != valueobject.MoveRequestStatusFinalOfferSubmitted && m.Status != valueobject.MoveRequestStatusSent {
		return apperror.New(apperror.ErrCodeInvalidState, "принять заявку можно только после подачи финальной оферты")
	}

	m.Status = valueobject.MoveRequestStatusAccepted
	m.SentAt = nil
	m.ExpiresAt = nil
	m.UpdatedAt = now
	return nil
}

// Reject завершает заявку отказом клиента.
func (m *MoveRequest) Reject(now time.Time) error {
	if m.Status != valueobject.MoveRequestStatusFinalOfferSubmitted && m.Status != valueobject.MoveRequestStatusSent {
		return apperror.New(apperror.ErrCodeInvalidState, "отклонить заявку можно только после подачи финальной оферты")
	}

	m.Status = valueobject.MoveRequestStatusRejected
	m.SentAt = nil
	m.ExpiresAt = nil
	m.UpdatedAt = now
	return nil
}

// Expire переводит любую незавершённую заявку в expired.
func (m *MoveRequest) Expire(now time.Time) error {
	if m.Status.IsTerminal() {
		return apperror.New(apperror.ErrCodeInvalidState, "заявка уже завершена")
	}

	m.Status = valueobject.MoveRequestStatusExpired
	m.SentAt = nil
	m.ExpiresAt = nil
	m.UpdatedAt = now
	return nil
}

// ---- Legacy-переходы старого flow рассылки ----

func (m *MoveRequest) MarkReadyToSend(now time.Time) error {
	if m.Status.IsTerminal() {
		return apperror.New(apperror.ErrCodeInvalidState, "заявка уже завершена")
	}
	m.Status = valueobject.MoveRequestStatusReadyToSend
	m.SentAt = nil
	m.UpdatedAt = now
	return nil
}

func (m *MoveRequest) MarkSent(now time.Time) error {
	if m.Status.IsTerminal() {
		return apperror.New(apperror.ErrCodeInvalidState, "заявка уже завершена")
	}
	m.Status = valueobject.MoveRequestStatusSent
	m.SentAt = &now
	m.UpdatedAt = now
	return nil
}

func (m *MoveRequest) MarkFailed(now time.Time) error {
	if m.Status.IsTerminal() {
		return apperror.New(apperror.ErrCodeInvalidState, "заявка уже завершена")
	}
	m.Status = valueobject.MoveRequestStatusFailed
	m.SentAt = nil
	m.UpdatedAt = now
	return nil
}

// IsActive: заявка ещё в работе.
func (m *MoveRequest) IsActive() bool {
	return !m.Status.IsTerminal()
}

// IsExpired проверяет необязательный дедлайн заявки.
func (m *MoveRequest) IsExpired(now time.Time) bool {
	if m.ExpiresAt == nil {
		return false
	}
	return now.After(*m.ExpiresAt)
}

// Validate проверяет межполевые инварианты агрегата. Вызывается
// репозиторием после восстановления записи из базы.
func (m *MoveRequest) Validate() error {
	if !m.Status.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	if m.Status.RequiresInventory() && m.InventoryID == nil {
		return apperror.New(apperror.ErrCodeValidation, "в этом статусе у заявки должна быть опись")
	}
	if m.SentAt != nil && m.Status != valueobject.MoveRequestStatusSent {
		return apperror.New(apperror.ErrCodeValidation, "sentAt допустим только в статусе sent")
	}
	return nil
}
