package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"shoes":    "SHOES",
		"  Shoes ": "SHOES",
		"SHOES":    "SHOES",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidationRequestDecoding(t *testing.T) {
	payload := `{
        "id": 1652692351138,
        "shoppingCart": {
            "id": 7, "userId": "u1", "completed": true,
            "items": [{"productId": 1, "unitPrice": 42.4, "quantity": 100, "totalPrice": 4240}],
            "totalPrice": 4240
        },
        "successState": "VALIDATING_BALANCE",
        "failureState": "REJECTED"
    }`
	var req OrderValidationRequested
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.ID != 1652692351138 {
		t.Errorf("id = %d", req.ID)
	}
	if len(req.ShoppingCart.Items) != 1 {
		t.Fatalf("items = %d", len(req.ShoppingCart.Items))
	}
	item := req.ShoppingCart.Items[0]
	if !item.UnitPrice.Equal(decimal.RequireFromString("42.4")) {
		t.Errorf("unitPrice = %s", item.UnitPrice)
	}
	if req.SuccessState != "VALIDATING_BALANCE" || req.FailureState != "REJECTED" {
		t.Errorf("states = %q/%q", req.SuccessState, req.FailureState)
	}
}

func TestOutcomeOmitsEmptyErrors(t *testing.T) {
	b, err := json.Marshal(OrderUpdateRequested{ID: 9, State: "VALIDATING_BALANCE"})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"id":9,"state":"VALIDATING_BALANCE"}` {
		t.Errorf("payload = %s", b)
	}
}
