package sensors

import (
	"time"

	"telemetry-sim/models"
)

// GPS receiver behaviour.
const (
	GPSDrift   = 0.00001 // degrees per tick, each axis
	MinGPSSats = 5
	MaxGPSSats = 12
)

// readFix walks the stored position and reports it. The walked position is
// written back so the next fix continues from it.
func (s *Synthesizer) readFix(st *models.FlightState, now time.Time) models.GPSFix {
	st.GPSLat += s.uniform(GPSDrift)
	st.GPSLon += s.uniform(GPSDrift)

	return models.GPSFix{
		Time:      now.Truncate(time.Second),
		Latitude:  st.GPSLat,
		Longitude: st.GPSLon,
		Altitude:  st.Altitude,
		Sats:      MinGPSSats + s.rng.IntN(MaxGPSSats-MinGPSSats+1),
	}
}
