package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// Item — позиция инвентарной описи.
// Confidence обязателен для распознанных позиций и запрещён для ручных.
type Item struct {
	Name       string
	Quantity   int
	Confidence *float64
	Source     valueobject.ItemSource
	Category   string
	Volume     *float64
}

func NewItem(name string, quantity int, confidence *float64, source valueobject.ItemSource, category string, volume *float64) (Item, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)

	if name == "" {
		return Item{}, apperror.New(apperror.ErrCodeValidation, "название позиции обязательно")
	}
	if quantity < 1 {
		return Item{}, apperror.New(apperror.ErrCodeValidation, "количество должно быть не меньше единицы")
	}
	if !source.IsValid() {
		return Item{}, apperror.New(apperror.ErrCodeValidation, "некорректный источник позиции")
	}

	switch source {
	case valueobject.ItemSourceDetected:
		if confidence == nil {
			return Item{}, apperror.New(apperror.ErrCodeValidation, "для распознанной позиции обязателен confidence")
		}
		if *confidence < 0 || *confidence > 1 {
			return Item{}, apperror.New(apperror.ErrCodeValidation, "confidence должен быть в диапазоне [0, 1]")
		}
	case valueobject.ItemSourceManual:
		if confidence != nil {
			return Item{}, apperror.New(apperror.ErrCodeValidation, "для ручной позиции confidence не указывается")
		}
	}

	if volume != nil && *volume < 0 {
		return Item{}, apperror.New(apperror.ErrCodeValidation, "объём не может быть отрицательным")
	}

	return Item{
		Name:       name,
		Quantity:   quantity,
		Confidence: confidence,
		Source:     source,
		Category:   category,
		Volume:     volume,
	}, nil
}

func ManualItem(name string, quantity int, category string, volume *float64) (Item, error) {
	return NewItem(name, quantity, nil, valueobject.ItemSourceManual, category, volume)
}

func DetectedItem(name string, quantity int, confidence float64, category string, volume *float64) (Item, error) {
	return NewItem(name, quantity, &confidence, valueobject.ItemSourceDetected, category, volume)
}

// ToManual понижает распознанную позицию до ручной. Обратного пути нет:
// после правки клиентом позиция больше не считается распознанной.
func (i Item) ToManual() Item {
	if i.Source == valueobject.ItemSourceManual {
		return i
	}
	i.Source = valueobject.ItemSourceManual
	i.Confidence = nil
	return i
}

// TotalVolume — объём позиции с учётом количества.
func (i Item) TotalVolume() float64 {
	if i.Volume == nil {
		return 0
	}
	return *i.Volume * float64(i.Quantity)
}

// Inventory — инвентарная опись одной заявки на переезд (1:1).
// TotalVolume пересчитывается при каждой мутации и никогда
// не принимается извне. После подтверждения опись неизменяема.
type Inventory struct {
	ID            uuid.UUID
	MoveRequestID uuid.UUID
	Items         []Item
	Status        valueobject.InventoryStatus
	CreatedAt     time.Time
	ConfirmedAt   *time.Time
	TotalVolume   float64
}

func NewInventory(moveRequestID uuid.UUID, now time.Time) (*Inventory, error) {
	if moveRequestID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "идентификатор заявки обязателен")
	}

	return &Inventory{
		ID:            uuid.New(),
		MoveRequestID: moveRequestID,
		Items:         []Item{},
		Status:        valueobject.InventoryStatusDraft,
		CreatedAt:     now,
	}, nil
}

// NewInventoryFromDetected создаёт опись из результатов распознавания.
// Все позиции обязаны иметь источник detected.
func NewInventoryFromDetected(moveRequestID uuid.UUID, items []Item, now time.Time) (*Inventory, error) {
	inv, err := NewInventory(moveRequestID, now)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.Source != valueobject.ItemSourceDetected {
			return nil, apperror.New(apperror.ErrCodeValidation, "все позиции из распознавания должны иметь источник detected")
		}
	}

	inv.Items = append(inv.Items, items...)
	inv.recalculate()
	return inv, nil
}

func (inv *Inventory) ensureDraft() error {
	if inv.Status != valueobject.InventoryStatusDraft {
		return apperror.New(apperror.ErrCodeInvalidState, "опись нельзя изменять после подтверждения")
	}
	return nil
}

// AddItem добавляет позицию в конец описи.
func (inv *Inventory) AddItem(item Item) error {
	if err := inv.ensureDraft(); err != nil {
		return err
	}

	inv.Items = append(inv.Items, item)
	inv.recalculate()
	return nil
}

// UpdateItem заменяет позицию по индексу. Если у распознанной позиции
// поменялись идентифицирующие поля, она понижается до ручной.
func (inv *Inventory) UpdateItem(index int, updated Item) error {
	if err := inv.ensureDraft(); err != nil {
		return err
	}
	if index < 0 || index >= len(inv.Items) {
		return apperror.New(apperror.ErrCodeValidation, "некорректный индекс позиции")
	}

	current := inv.Items[index]
	if current.Source == valueobject.ItemSourceDetected && identityChanged(current, updated) {
		updated = updated.ToManual()
	}

	inv.Items[index] = updated
	inv.recalculate()
	return nil
}

// RemoveItem удаляет позицию по индексу.
func (inv *Inventory) RemoveItem(index int) error {
	if err := inv.ensureDraft(); err != nil {
		return err
	}
	if index < 0 || index >= len(inv.Items) {
		return apperror.New(apperror.ErrCodeValidation, "некорректный индекс позиции")
	}

	inv.Items = append(inv.Items[:index], inv.Items[index+1:]...)
	inv.recalculate()
	return nil
}

// ReplaceItems заменяет все позиции целиком (полная корректировка клиентом).
func (inv *Inventory) ReplaceItems(items []Item) error {
	if err := inv.ensureDraft(); err != nil {
		return err
	}

	inv.Items = make([]Item, len(items))
	copy(inv.Items, items)
	inv.recalculate()
	return nil
}

// Confirm фиксирует опись. Дальнейшие изменения запрещены.
func (inv *Inventory) Confirm(now time.Time) error {
	if err := inv.ensureDraft(); err != nil {
		return err
	}

	inv.Status = valueobject.InventoryStatusConfirmed
	inv.ConfirmedAt = &now
	return nil
}

func (inv *Inventory) recalculate() {
	total := 0.0
	for _, item := range inv.Items {
		total += item.TotalVolume()
	}
	inv.TotalVolume = total
}

// TotalItemCount — суммарное количество предметов с учётом Quantity.
func (inv *Inventory) TotalItemCount() int {
	count := 0
	for _, item := range inv.Items {
		count += item.Quantity
	}
	return count
}

// ItemTypeCount — количество различных позиций описи.
func (inv *Inventory) ItemTypeCount() int {
	return len(inv.Items)
}

func (inv *Inventory) DetectedItemCount() int {
	count := 0
	for _, item := range inv.Items {
		if item.Source == valueobject.ItemSourceDetected {
			count++
		}
	}
	return count
}

func (inv *Inventory) ManualItemCount() int {
	count := 0
	for _, item := range inv.Items {
		if item.Source == valueobject.ItemSourceManual {
			count++
		}
	}
	return count
}

// AverageDetectedConfidence — средний confidence распознанных позиций.
// Второе значение false, если распознанных позиций нет.
func (inv *Inventory) AverageDetectedConfidence() (float64, bool) {
	sum := 0.0
	count := 0
	for _, item := range inv.Items {
		if item.Source == valueobject.ItemSourceDetected && item.Confidence != nil {
			sum += *item.Confidence
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func (inv *Inventory) IsEmpty() bool {
	return len(inv.Items) == 0
}

func identityChanged(current, updated Item) bool {
	return !strings.EqualFold(current.Name, updated.Name) || current.Category != updated.Category
}
