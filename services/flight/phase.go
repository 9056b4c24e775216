package flight

import "telemetry-sim/models"

// AscentToCoastSpeed is the vertical speed at which the motor is
// considered burnt out and the vehicle starts coasting.
const AscentToCoastSpeed = 120.0

// IdleTicks is the number of packets sent on the pad before launch.
const IdleTicks = 2

// NextPhase returns the phase the vehicle should be in for the coming tick.
// Only the guard of the current phase is checked, so a call advances the
// phase by at most one step and never backwards.
func NextPhase(st *models.FlightState) models.Phase {
	switch st.Phase {
	case models.PhaseIdle:
		if st.PacketCount >= IdleTicks {
			return models.PhaseAscent
		}
	case models.PhaseAscent:
		if st.VerticalSpeed >= AscentToCoastSpeed {
			return models.PhaseCoast
		}
	case models.PhaseCoast:
		if st.VerticalSpeed <= 0 {
			return models.PhaseDescent
		}
	case models.PhaseDescent:
		if st.Altitude <= 0 {
			return models.PhaseLanded
		}
	}
	return st.Phase
}
