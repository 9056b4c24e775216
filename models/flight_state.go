package models

// FlightState is the mutable simulation state. It is owned by a single
// driver and handed by pointer to each stage of a tick. It holds no
// references, so a plain copy is a full snapshot.
type FlightState struct {
	TeamID        string
	Phase         Phase
	Altitude      float64 // metres, never negative
	VerticalSpeed float64 // m/s, positive = up
	PacketCount   uint64
	Voltage       float64 // volts, non-increasing
	GPSLat        float64
	GPSLon        float64
}

// NewFlightState returns a vehicle sitting on the pad in IDLE.
func NewFlightState(teamID string, voltage, lat, lon float64) FlightState {
	return FlightState{
		TeamID:  teamID,
		Phase:   PhaseIdle,
		Voltage: voltage,
		GPSLat:  lat,
		GPSLon:  lon,
	}
}
