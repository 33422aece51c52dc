package models

import "testing"

func TestDiscrepancy(t *testing.T) {
	cases := []struct {
		manifest, measured, want float64
	}{
		{10.0, 10.0, 0},
		{10.0, 10.8, 0.8},
		{10.8, 10.0, -0.8},
		{25.55, 25.0, -0.55},
		{0.1, 0.3, 0.2}, // float artifacts must round away
		{100.004, 100.0, 0.0},
	}
	for _, tc := range cases {
		if got := Discrepancy(tc.manifest, tc.measured); got != tc.want {
			t.Errorf("Discrepancy(%v, %v) = %v, want %v", tc.manifest, tc.measured, got, tc.want)
		}
	}
}

func TestDiscrepancy_signPreserved(t *testing.T) {
	if Discrepancy(10, 11) <= 0 {
		t.Error("overweight must be positive")
	}
	if Discrepancy(11, 10) >= 0 {
		t.Error("underweight must be negative")
	}
}
