package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyUnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`45`, "45.00"},
		{`"12.345"`, "12.35"},
		{`0.1`, "0.10"},
		{`"abc"`, ""},
	}
	for _, tc := range cases {
		var m Money
		err := json.Unmarshal([]byte(tc.raw), &m)
		if tc.want == "" {
			if err == nil {
				t.Fatalf("%s should fail", tc.raw)
			}
			continue
		}
		if err != nil || m.String() != tc.want {
			t.Fatalf("%s want %s got %s err=%v", tc.raw, tc.want, m.String(), err)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	subtotal := NewMoneyFromFloat(85)
	if got := subtotal.Percent(NewMoneyFromFloat(10)); got.String() != "8.50" {
		t.Fatalf("percent want 8.50 got %s", got)
	}
	if got := subtotal.Sub(NewMoneyFromFloat(8.5)); got.String() != "76.50" {
		t.Fatalf("sub want 76.50 got %s", got)
	}
	capped := NewMoneyFromFloat(50).Clamp(ZeroMoney(), NewMoneyFromFloat(20))
	if capped.String() != "20.00" {
		t.Fatalf("clamp want 20.00 got %s", capped)
	}
	if got := NewMoneyFromFloat(-3).Clamp(ZeroMoney(), subtotal); got.String() != "0.00" {
		t.Fatalf("clamp floor want 0.00 got %s", got)
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: NewMoneyFromFloat(45.5)})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `{"price":45.5}` {
		t.Fatalf("unexpected json: %s", raw)
	}
}
