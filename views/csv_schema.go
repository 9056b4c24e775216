package views

// The record stream column layout. This file is the single source of truth
// for column ordering; models.TelemetrySample.CSVHeader must agree with it,
// and downstream readers address fields by these positions.

// TelemetryColumns lists the 22 record stream columns in order.
var TelemetryColumns = []string{
	"Team_Id", "TimeStamp", "PacketCount", "Altitude", "Pressure", "Temperature",
	"Voltage", "GpsTime", "GpsLatitude", "GpsLongitude", "GpsAltitude", "GpsSats",
	"a_x", "a_y", "a_z", "gyro_x", "gyro_y", "gyro_z",
	"FSW_State", "AngleX", "AngleY", "AngleZ",
}

// Column positions used by readers.
const (
	ColTeamID = iota
	ColTimestamp
	ColPacketCount
	ColAltitude
	ColPressure
	ColTemperature
	ColVoltage
	ColGPSTime
	ColGPSLatitude
	ColGPSLongitude
	ColGPSAltitude
	ColGPSSats
	ColAccelX
	ColAccelY
	ColAccelZ
	ColGyroX
	ColGyroY
	ColGyroZ
	ColFSWState
	ColAngleX
	ColAngleY
	ColAngleZ

	NumColumns
)

// Aliases kept for older dashboards that still read the tilt/rotation names.
var columnAliases = map[string]string{
	"TiltX": "a_x",
	"TiltY": "a_y",
	"RotZ":  "gyro_z",
}

// ValidateHeader reports whether h matches TelemetryColumns exactly.
func ValidateHeader(h []string) bool {
	if len(h) != len(TelemetryColumns) {
		return false
	}
	for i, c := range TelemetryColumns {
		if h[i] != c {
			return false
		}
	}
	return true
}
