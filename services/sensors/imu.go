package sensors

import "telemetry-sim/models"

// Noise bounds of the simulated inertial unit.
const (
	AccelNoise  = 0.2 // m/s², lateral axes
	GyroNoise   = 5.0 // deg/s
	TiltNoise   = 1.0 // deg, AngleX/AngleY
	YawNoise    = 0.5 // deg, AngleZ
	tiltPerG    = 5.0
	yawPerDegPS = 0.1
)

// readIMU fills the inertial axes; az comes from accelZ.
func (s *Synthesizer) readIMU(az float64) models.IMUData {
	return models.IMUData{
		AccelX: s.uniform(AccelNoise),
		AccelY: s.uniform(AccelNoise),
		AccelZ: az,
		GyroX:  s.uniform(GyroNoise),
		GyroY:  s.uniform(GyroNoise),
		GyroZ:  s.uniform(GyroNoise),
	}
}

func (s *Synthesizer) readOrientation(d *models.IMUData) models.Orientation {
	return models.Orientation{
		AngleX: d.AccelX*tiltPerG + s.uniform(TiltNoise),
		AngleY: d.AccelY*tiltPerG + s.uniform(TiltNoise),
		AngleZ: d.GyroZ*yawPerDegPS + s.uniform(YawNoise),
	}
}
