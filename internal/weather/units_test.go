package weather

import (
	"math"
	"testing"
)

func TestToDisplayCelsiusIsIdentity(t *testing.T) {
	for _, temp := range []float64{-40, -17.5, 0, 18, 36.6, 100} {
		if got := ToDisplay(temp, UnitCelsius); got != temp {
			t.Errorf("ToDisplay(%v, C) = %v, want %v", temp, got, temp)
		}
	}
}

func TestToDisplayFahrenheit(t *testing.T) {
	cases := []struct {
		tempC float64
		want  float64
	}{
		{-40, -40},
		{0, 32},
		{18, 64.4},
		{100, 212},
	}
	for _, tc := range cases {
		got := ToDisplay(tc.tempC, UnitFahrenheit)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ToDisplay(%v, F) = %v, want %v", tc.tempC, got, tc.want)
		}
	}
}
