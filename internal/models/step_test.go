package models

import "testing"

func TestStep_Sequence(t *testing.T) {
	order := []Step{
		StepChooseProduct,
		StepChooseSize,
		StepChooseQuantity,
		StepChooseDelivery,
		StepReadyToSend,
	}

	for i := 0; i < len(order)-1; i++ {
		if got := order[i].Next(); got != order[i+1] {
			t.Errorf("%s.Next() = %s, want %s", order[i], got, order[i+1])
		}
		if got := order[i+1].Prev(); got != order[i] {
			t.Errorf("%s.Prev() = %s, want %s", order[i+1], got, order[i])
		}
	}

	if got := StepReadyToSend.Next(); got != StepReadyToSend {
		t.Errorf("terminal step advanced to %s", got)
	}
	if got := StepChooseProduct.Prev(); got != StepChooseProduct {
		t.Errorf("first step went back to %s", got)
	}
	if !StepReadyToSend.Terminal() || StepChooseProduct.Terminal() {
		t.Error("Terminal() misidentifies steps")
	}
}

func TestEnums_Valid(t *testing.T) {
	for _, p := range []ProductType{LocalLamb, RomanianLamb, ImportedLamb, Chicken} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if ProductType("goat").Valid() {
		t.Error("unknown product type should be invalid")
	}

	for _, z := range []DeliveryZone{ZonePickup, ZoneSweileh, ZoneAmman, ZoneAmmanFar, ZoneOutside} {
		if !z.Valid() {
			t.Errorf("%s should be valid", z)
		}
	}
	if DeliveryZone("mars").Valid() {
		t.Error("unknown zone should be invalid")
	}
	if Step("teleport").Valid() {
		t.Error("unknown step should be invalid")
	}
}
