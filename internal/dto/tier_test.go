package dto

import "testing"

func TestCreateTierRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  CreateTierRequest
		ok   bool
	}{
		{"valid", CreateTierRequest{Name: "GA", Quantity: 10}, true},
		{"missing name", CreateTierRequest{Quantity: 10}, false},
		{"zero quantity", CreateTierRequest{Name: "GA"}, false},
		{"negative price", CreateTierRequest{Name: "GA", Quantity: 10, Price: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := tt.req.Validate()
			if ok != tt.ok {
				t.Errorf("expected ok=%v, got %v (%s)", tt.ok, ok, msg)
			}
		})
	}
}

func TestCreateTierRequestToTier(t *testing.T) {
	req := CreateTierRequest{Name: "VIP", Price: 49.99, Quantity: 40}
	tier := req.ToTier()
	if tier.PriceCents != 4999 {
		t.Errorf("expected 4999 cents, got %d", tier.PriceCents)
	}
	if tier.Quantity != 40 {
		t.Errorf("expected quantity 40, got %d", tier.Quantity)
	}
}

func TestUpdateTierRequestValidate(t *testing.T) {
	empty := UpdateTierRequest{}
	if ok, _ := empty.Validate(); ok {
		t.Error("empty update must be rejected")
	}

	name := ""
	blank := UpdateTierRequest{Name: &name}
	if ok, _ := blank.Validate(); ok {
		t.Error("blank name must be rejected")
	}

	qty := 5
	valid := UpdateTierRequest{Quantity: &qty}
	if ok, msg := valid.Validate(); !ok {
		t.Errorf("expected valid, got %s", msg)
	}
}

func TestUpdateTierRequestToPatch(t *testing.T) {
	price := 10.0
	req := UpdateTierRequest{Price: &price}
	patch := req.ToPatch()
	if patch.PriceCents == nil || *patch.PriceCents != 1000 {
		t.Errorf("expected price cents pointer to 1000, got %v", patch.PriceCents)
	}
	if patch.Quantity != nil {
		t.Error("unset quantity must stay nil")
	}
}
