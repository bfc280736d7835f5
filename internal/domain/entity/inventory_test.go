package entity_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
)

func detectedItem(t *testing.T, name string, quantity int, confidence, volume float64) entity.Item {
	t.Helper()
	item, err := entity.DetectedItem(name, quantity, confidence, "furniture", &volume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return item
}

func manualItem(t *testing.T, name string, quantity int, volume float64) entity.Item {
	t.Helper()
	item, err := entity.ManualItem(name, quantity, "misc", &volume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return item
}

func TestNewItem_ConfidenceRules(t *testing.T) {
	volume := 1.0

	if _, err := entity.NewItem("Диван", 1, nil, valueobject.ItemSourceDetected, "", &volume); err == nil {
		t.Error("expected error for detected item without confidence")
	}

	bad := 1.5
	if _, err := entity.NewItem("Диван", 1, &bad, valueobject.ItemSourceDetected, "", &volume); err == nil {
		t.Error("expected error for confidence above one")
	}

	stray := 0.9
	if _, err := entity.NewItem("Диван", 1, &stray, valueobject.ItemSourceManual, "", &volume); err == nil {
		t.Error("expected error for manual item with confidence")
	}

	if _, err := entity.ManualItem("Диван", 0, "", &volume); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestInventory_TotalVolumeRecalculated(t *testing.T) {
	inv, err := entity.NewInventory(uuid.New(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := inv.AddItem(manualItem(t, "Диван", 1, 2.5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inv.AddItem(manualItem(t, "Коробка", 4, 0.5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.TotalVolume != 4.5 {
		t.Errorf("expected total volume 4.5, got %f", inv.TotalVolume)
	}
	if inv.TotalItemCount() != 5 {
		t.Errorf("expected 5 items, got %d", inv.TotalItemCount())
	}

	if err := inv.RemoveItem(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.TotalVolume != 2.0 {
		t.Errorf("expected total volume 2.0 after removal, got %f", inv.TotalVolume)
	}

	if err := inv.ReplaceItems([]entity.Item{manualItem(t, "Шкаф", 1, 3.0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.TotalVolume != 3.0 {
		t.Errorf("expected total volume 3.0 after replace, got %f", inv.TotalVolume)
	}
}

func TestInventory_UpdateItem_DowngradesDetectedOnIdentityChange(t *testing.T) {
	inv, err := entity.NewInventoryFromDetected(uuid.New(), []entity.Item{
		detectedItem(t, "Стол", 1, 0.92, 1.2),
	}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Правка только количества и объёма не меняет происхождение.
	same := detectedItem(t, "Стол", 2, 0.92, 1.0)
	if err := inv.UpdateItem(0, same); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Items[0].Source != valueobject.ItemSourceDetected {
		t.Error("expected item to stay detected after quantity change")
	}

	// Переименование понижает позицию до ручной, confidence очищается.
	renamed := detectedItem(t, "Письменный стол", 2, 0.92, 1.0)
	if err := inv.UpdateItem(0, renamed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Items[0].Source != valueobject.ItemSourceManual {
		t.Error("expected renamed item to become manual")
	}
	if inv.Items[0].Confidence != nil {
		t.Error("expected confidence to be cleared after downgrade")
	}
}

func TestInventory_ConfirmFreezes(t *testing.T) {
	inv, err := entity.NewInventory(uuid.New(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inv.AddItem(manualItem(t, "Диван", 1, 2.5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := inv.Confirm(testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != valueobject.InventoryStatusConfirmed {
		t.Errorf("expected confirmed status, got %s", inv.Status)
	}
	if inv.ConfirmedAt == nil {
		t.Fatal("expected confirmedAt to be set")
	}

	if err := inv.Confirm(testNow); err == nil {
		t.Error("expected error confirming twice")
	}
	if err := inv.AddItem(manualItem(t, "Коробка", 1, 0.5)); err == nil {
		t.Error("expected error adding item after confirmation")
	}
	if err := inv.RemoveItem(0); err == nil {
		t.Error("expected error removing item after confirmation")
	}
	if err := inv.ReplaceItems(nil); err == nil {
		t.Error("expected error replacing items after confirmation")
	}
}

func TestNewInventoryFromDetected_RejectsManualItems(t *testing.T) {
	_, err := entity.NewInventoryFromDetected(uuid.New(), []entity.Item{
		manualItem(t, "Диван", 1, 2.5),
	}, testNow)
	if err == nil {
		t.Fatal("expected error for manual item in detected inventory")
	}
}

func TestInventory_Counters(t *testing.T) {
	inv, err := entity.NewInventoryFromDetected(uuid.New(), []entity.Item{
		detectedItem(t, "Стол", 1, 0.9, 1.2),
		detectedItem(t, "Стул", 4, 0.7, 0.3),
	}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inv.AddItem(manualItem(t, "Лампа", 2, 0.1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.ItemTypeCount() != 3 {
		t.Errorf("expected 3 item types, got %d", inv.ItemTypeCount())
	}
	if inv.DetectedItemCount() != 2 {
		t.Errorf("expected 2 detected items, got %d", inv.DetectedItemCount())
	}
	if inv.ManualItemCount() != 1 {
		t.Errorf("expected 1 manual item, got %d", inv.ManualItemCount())
	}

	avg, ok := inv.AverageDetectedConfidence()
	if !ok {
		t.Fatal("expected average confidence to be available")
	}
	if avg < 0.79 || avg > 0.81 {
		t.Errorf("expected average confidence 0.8, got %f", avg)
	}
}
