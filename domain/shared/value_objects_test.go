package shared

import (
	"math"
	"testing"
)

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(10000, "THB")
	b := NewMoney(6000, "THB")

	sum, err := a.Add(*b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if sum.Amount() != 16000 {
		t.Errorf("Add = %d, want 16000", sum.Amount())
	}

	diff, err := a.Subtract(*b)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	if diff.Amount() != 4000 {
		t.Errorf("Subtract = %d, want 4000", diff.Amount())
	}

	foreign := NewMoney(100, "USD")
	if _, err := a.Add(*foreign); err == nil {
		t.Error("Add across currencies should fail")
	}
	if _, err := a.Subtract(*foreign); err == nil {
		t.Error("Subtract across currencies should fail")
	}
}

func TestMoneyMultiply(t *testing.T) {
	price := NewMoney(2500, "THB")

	total, err := price.Multiply(4)
	if err != nil {
		t.Fatalf("Multiply failed: %v", err)
	}
	if total.Amount() != 10000 {
		t.Errorf("Multiply = %d, want 10000", total.Amount())
	}

	zero, err := price.Multiply(0)
	if err != nil {
		t.Fatalf("Multiply by zero failed: %v", err)
	}
	if zero.Amount() != 0 {
		t.Errorf("Multiply by zero = %d, want 0", zero.Amount())
	}

	if _, err := price.Multiply(-1); err == nil {
		t.Error("Multiply by negative quantity should fail")
	}

	big := NewMoney(math.MaxInt64/2, "THB")
	if _, err := big.Multiply(3); err == nil {
		t.Error("Multiply overflow should fail")
	}
}

func TestPercentRoundHalfUp(t *testing.T) {
	cases := []struct {
		name    string
		amount  int64
		rateBps int64
		want    int64
	}{
		{"exact", 20000, 700, 1400},            // 7% of 200.00 = 14.00
		{"rounds half up", 50, 700, 4},         // 3.5 -> 4
		{"rounds down below half", 49, 700, 3}, // 3.43 -> 3
		{"rounds up above half", 51, 700, 4},   // 3.57 -> 4
		{"zero amount", 0, 700, 0},
		{"zero rate", 20000, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewMoney(tc.amount, "THB").PercentRoundHalfUp(tc.rateBps)
			if got.Amount() != tc.want {
				t.Errorf("PercentRoundHalfUp(%d, %d) = %d, want %d",
					tc.amount, tc.rateBps, got.Amount(), tc.want)
			}
			if got.Currency() != "THB" {
				t.Errorf("currency = %q, want THB", got.Currency())
			}
		})
	}
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoney(100, "THB")
	b := NewMoney(200, "THB")

	if !b.IsGreaterThan(*a) {
		t.Error("200 should be greater than 100")
	}
	if !a.IsGreaterThanOrEqual(*NewMoney(100, "THB")) {
		t.Error("100 should be >= 100")
	}
	if !NewMoney(-1, "THB").IsNegative() {
		t.Error("-1 should be negative")
	}
	if a.IsNegative() {
		t.Error("100 should not be negative")
	}
	if !a.Equals(*NewMoney(100, "THB")) {
		t.Error("equal amounts and currency should be Equals")
	}
	if a.Equals(*NewMoney(100, "USD")) {
		t.Error("different currency should not be Equals")
	}
}
