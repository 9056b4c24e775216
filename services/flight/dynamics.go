package flight

import (
	"math"
	"time"

	"telemetry-sim/models"
)

// Profile holds the constants of the simplified flight model.
type Profile struct {
	DT           time.Duration // integration step, normally the tick interval
	BoostAccel   float64       // m/s² while in ASCENT
	DescentAccel float64       // m/s² while in DESCENT
	DragFactor   float64       // per-tick speed multiplier while in COAST
	CoastCutoff  float64       // |v| below this snaps to 0 in COAST; 0 disables
	VoltageDrop  float64       // volts per tick
	VoltageFloor float64
}

// DefaultProfile returns the reference model constants.
func DefaultProfile() Profile {
	return Profile{
		DT:           500 * time.Millisecond,
		BoostAccel:   2.0,
		DescentAccel: -1.0,
		DragFactor:   0.99,
		CoastCutoff:  0.5,
		VoltageDrop:  0.001,
		VoltageFloor: 9.0,
	}
}

// Integrator advances the physical part of a FlightState by one step.
type Integrator struct {
	p  Profile
	dt float64
}

func NewIntegrator(p Profile) *Integrator {
	return &Integrator{p: p, dt: p.DT.Seconds()}
}

// Profile returns the constants in use.
func (in *Integrator) Profile() Profile { return in.p }

// Step updates vertical speed for the current phase, then altitude, then
// the battery. The order matters: landing is detected on the clamped
// altitude produced by the speed of this same tick.
func (in *Integrator) Step(st *models.FlightState) {
	switch st.Phase {
	case models.PhaseAscent:
		st.VerticalSpeed += in.p.BoostAccel * in.dt
	case models.PhaseDescent:
		st.VerticalSpeed += in.p.DescentAccel * in.dt
	case models.PhaseCoast:
		st.VerticalSpeed *= in.p.DragFactor
		if math.Abs(st.VerticalSpeed) < in.p.CoastCutoff {
			st.VerticalSpeed = 0
		}
	}

	st.Altitude += st.VerticalSpeed * in.dt
	st.Altitude = math.Max(0, st.Altitude)

	// A pack that starts below the floor is left alone rather than raised.
	st.Voltage = math.Min(st.Voltage, math.Max(in.p.VoltageFloor, st.Voltage-in.p.VoltageDrop))
}

// DT returns the step length in seconds.
func (in *Integrator) DT() float64 { return in.dt }
