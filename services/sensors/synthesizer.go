package sensors

import (
	"math/rand/v2"
	"time"

	"telemetry-sim/models"
)

// Synthesizer derives a full set of sensor readings from a FlightState.
// All randomness comes from the injected source, so a seeded source
// replays the same readings.
type Synthesizer struct {
	rng *rand.Rand
	now func() time.Time
	az  AccelZConfig
}

// AccelZConfig selects what the vertical accelerometer axis reports.
type AccelZConfig struct {
	Boost   float64 // m/s², reported in every phase by default
	Applied bool    // report the speed change of the tick instead
	DT      float64 // integration step in seconds, used when Applied
}

// NewSynthesizer builds a synthesizer. A nil clock means time.Now.
func NewSynthesizer(rng *rand.Rand, now func() time.Time, az AccelZConfig) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{rng: rng, now: now, az: az}
}

// Synthesize builds the sample for st. prevSpeed is the vertical speed
// before this tick's integration step. The GPS random walk is applied to st.
func (s *Synthesizer) Synthesize(st *models.FlightState, prevSpeed float64) models.TelemetrySample {
	now := s.now().UTC()

	imu := s.readIMU(s.accelZ(st.VerticalSpeed, prevSpeed))

	return models.TelemetrySample{
		TeamID:      st.TeamID,
		Timestamp:   now,
		PacketCount: st.PacketCount,
		Altitude:    st.Altitude,
		Voltage:     st.Voltage,
		Phase:       st.Phase,
		Environment: readEnvironment(st.Altitude),
		GPS:         s.readFix(st, now),
		IMU:         imu,
		Orientation: s.readOrientation(&imu),
	}
}

// accelZ is the motor's boost acceleration unless the applied mode is on,
// in which case it is the speed change over the step.
func (s *Synthesizer) accelZ(v, prev float64) float64 {
	if !s.az.Applied {
		return s.az.Boost
	}
	if s.az.DT <= 0 {
		return 0
	}
	return (v - prev) / s.az.DT
}

// uniform returns a value in [-bound, bound).
func (s *Synthesizer) uniform(bound float64) float64 {
	return (s.rng.Float64()*2 - 1) * bound
}
