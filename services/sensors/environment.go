package sensors

import (
	"math"

	"telemetry-sim/models"
)

const (
	seaLevelPressure = 1013.25 // hPa
	scaleHeight      = 8434.5  // m
	seaLevelTemp     = 15.0    // °C
	lapseRate        = 0.0065  // °C/m
)

// Pressure approximates barometric pressure in hPa at altitude metres.
func Pressure(altitude float64) float64 {
	return seaLevelPressure * math.Exp(-altitude/scaleHeight)
}

// Temperature applies the ISA lapse rate to altitude metres.
func Temperature(altitude float64) float64 {
	return seaLevelTemp - lapseRate*altitude
}

func readEnvironment(altitude float64) models.Environment {
	return models.Environment{
		Pressure:    Pressure(altitude),
		Temperature: Temperature(altitude),
	}
}
