package weather

// Unit is the temperature unit preference for display.
type Unit string

const (
	UnitCelsius    Unit = "C"
	UnitFahrenheit Unit = "F"
)

// ToDisplay converts a stored Celsius temperature to its display value.
// Identity for Celsius. Applied at every presentation boundary; converted
// values are never written back or cached, so a unit toggle re-derives from
// the Celsius source of truth.
func ToDisplay(tempC float64, unit Unit) float64 {
	if unit == UnitFahrenheit {
		return tempC*9/5 + 32
	}
	return tempC
}
