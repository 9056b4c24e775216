package models

import "time"

// TelemetrySample is the immutable per-tick snapshot written to the record
// stream. It is built once from the FlightState and synthesized readings.
type TelemetrySample struct {
	TeamID      string      `json:"team_id"`
	Timestamp   time.Time   `json:"timestamp"`
	PacketCount uint64      `json:"packet_count"`
	Altitude    float64     `json:"altitude"`
	Voltage     float64     `json:"voltage"`
	Phase       Phase       `json:"fsw_state"`
	Environment Environment `json:"environment"`
	GPS         GPSFix      `json:"gps"`
	IMU         IMUData     `json:"imu"`
	Orientation Orientation `json:"orientation"`
}

// CSVHeader returns the 22 column names of the record stream, in order.
// Consumers address columns by position, so the order is part of the format.
func (TelemetrySample) CSVHeader() []string {
	return []string{
		"Team_Id", "TimeStamp", "PacketCount", "Altitude", "Pressure", "Temperature",
		"Voltage", "GpsTime", "GpsLatitude", "GpsLongitude", "GpsAltitude", "GpsSats",
		"a_x", "a_y", "a_z", "gyro_x", "gyro_y", "gyro_z",
		"FSW_State", "AngleX", "AngleY", "AngleZ",
	}
}

// CSVRow serialises the sample with the fixed per-column precision.
func (s *TelemetrySample) CSVRow() []string {
	row := make([]string, 0, 22)
	row = append(row,
		s.TeamID,
		s.Timestamp.UTC().Format(TimestampLayout),
		utoa64(s.PacketCount),
		ftoa(s.Altitude, 2),
		ftoa(s.Environment.Pressure, 2),
		ftoa(s.Environment.Temperature, 2),
		ftoa(s.Voltage, 3),
	)
	row = append(row, s.GPS.csvFields()...)
	row = append(row, s.IMU.accelFields()...)
	row = append(row, s.IMU.gyroFields()...)
	row = append(row, s.Phase.String())
	row = append(row, s.Orientation.csvFields()...)
	return row
}
