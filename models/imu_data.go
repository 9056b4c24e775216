package models

// IMUData holds one inertial reading.
type IMUData struct {
	AccelX float64 `json:"a_x"` // m/s²
	AccelY float64 `json:"a_y"`
	AccelZ float64 `json:"a_z"`
	GyroX  float64 `json:"gyro_x"` // deg/s
	GyroY  float64 `json:"gyro_y"`
	GyroZ  float64 `json:"gyro_z"`
}

// Orientation is the attitude estimate derived from the IMU terms.
type Orientation struct {
	AngleX float64 `json:"angle_x"` // degrees
	AngleY float64 `json:"angle_y"`
	AngleZ float64 `json:"angle_z"`
}

// Environment holds the barometric and thermal readings.
type Environment struct {
	Pressure    float64 `json:"pressure"`    // hPa
	Temperature float64 `json:"temperature"` // °C
}

func (d *IMUData) accelFields() []string {
	return []string{ftoa(d.AccelX, 3), ftoa(d.AccelY, 3), ftoa(d.AccelZ, 3)}
}

func (d *IMUData) gyroFields() []string {
	return []string{ftoa(d.GyroX, 2), ftoa(d.GyroY, 2), ftoa(d.GyroZ, 2)}
}

func (o *Orientation) csvFields() []string {
	return []string{ftoa(o.AngleX, 2), ftoa(o.AngleY, 2), ftoa(o.AngleZ, 2)}
}
