package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"telemetry-sim/models"
)

func TestIntegratorStepByPhase(t *testing.T) {
	in := NewIntegrator(DefaultProfile())

	t.Run("ascent boosts", func(t *testing.T) {
		st := models.FlightState{Phase: models.PhaseAscent, VerticalSpeed: 10, Altitude: 100, Voltage: 12}
		in.Step(&st)
		assert.InDelta(t, 11.0, st.VerticalSpeed, 1e-9)
		assert.InDelta(t, 105.5, st.Altitude, 1e-9)
		assert.InDelta(t, 11.999, st.Voltage, 1e-9)
	})

	t.Run("descent decelerates", func(t *testing.T) {
		st := models.FlightState{Phase: models.PhaseDescent, VerticalSpeed: -10, Altitude: 100, Voltage: 12}
		in.Step(&st)
		assert.InDelta(t, -10.5, st.VerticalSpeed, 1e-9)
		assert.InDelta(t, 94.75, st.Altitude, 1e-9)
	})

	t.Run("coast applies drag only", func(t *testing.T) {
		st := models.FlightState{Phase: models.PhaseCoast, VerticalSpeed: 100, Altitude: 1000, Voltage: 12}
		in.Step(&st)
		assert.InDelta(t, 99.0, st.VerticalSpeed, 1e-9)
		assert.InDelta(t, 1049.5, st.Altitude, 1e-9)
	})

	t.Run("idle and landed hold speed", func(t *testing.T) {
		for _, p := range []models.Phase{models.PhaseIdle, models.PhaseLanded} {
			st := models.FlightState{Phase: p, Voltage: 12}
			in.Step(&st)
			assert.Zero(t, st.VerticalSpeed)
			assert.Zero(t, st.Altitude)
		}
	})
}

func TestIntegratorClampsAltitude(t *testing.T) {
	in := NewIntegrator(DefaultProfile())
	st := models.FlightState{Phase: models.PhaseDescent, VerticalSpeed: -40, Altitude: 3, Voltage: 12}
	in.Step(&st)
	assert.Equal(t, 0.0, st.Altitude)
	assert.Less(t, st.VerticalSpeed, 0.0)
}

func TestIntegratorCoastCutoff(t *testing.T) {
	t.Run("snaps to zero", func(t *testing.T) {
		in := NewIntegrator(DefaultProfile())
		st := models.FlightState{Phase: models.PhaseCoast, VerticalSpeed: 0.505, Altitude: 10, Voltage: 12}
		in.Step(&st)
		assert.Equal(t, 0.0, st.VerticalSpeed)
	})

	t.Run("disabled keeps pure drag", func(t *testing.T) {
		p := DefaultProfile()
		p.CoastCutoff = 0
		in := NewIntegrator(p)
		st := models.FlightState{Phase: models.PhaseCoast, VerticalSpeed: 0.505, Altitude: 10, Voltage: 12}
		in.Step(&st)
		assert.InDelta(t, 0.49995, st.VerticalSpeed, 1e-9)
	})
}

func TestIntegratorVoltageFloor(t *testing.T) {
	in := NewIntegrator(DefaultProfile())

	st := models.FlightState{Phase: models.PhaseIdle, Voltage: 9.0005}
	in.Step(&st)
	assert.Equal(t, 9.0, st.Voltage)
	in.Step(&st)
	assert.Equal(t, 9.0, st.Voltage)

	low := models.FlightState{Phase: models.PhaseIdle, Voltage: 8.5}
	in.Step(&low)
	assert.Equal(t, 8.5, low.Voltage, "voltage never rises")
}

func TestFullFlightProfile(t *testing.T) {
	in := NewIntegrator(DefaultProfile())
	st := models.NewFlightState("TEAM42", 12.6, 37.7749, -122.4194)

	var seen []models.Phase
	prevPhase := st.Phase
	prevVoltage := st.Voltage
	seen = append(seen, st.Phase)

	for i := 0; i < 5000 && st.Phase != models.PhaseLanded; i++ {
		st.Phase = NextPhase(&st)
		in.Step(&st)
		st.PacketCount++

		assert.GreaterOrEqual(t, st.Altitude, 0.0)
		assert.LessOrEqual(t, st.Voltage, prevVoltage)
		assert.GreaterOrEqual(t, st.Phase, prevPhase)
		assert.LessOrEqual(t, st.Phase-prevPhase, models.Phase(1))
		if st.Phase != prevPhase {
			seen = append(seen, st.Phase)
		}
		prevPhase, prevVoltage = st.Phase, st.Voltage
	}

	assert.Equal(t, []models.Phase{
		models.PhaseIdle, models.PhaseAscent, models.PhaseCoast,
		models.PhaseDescent, models.PhaseLanded,
	}, seen)
}
