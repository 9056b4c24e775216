package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFixture() TelemetrySample {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589_793_238, time.UTC)
	return TelemetrySample{
		TeamID:      "TEAM42",
		Timestamp:   ts,
		PacketCount: 17,
		Altitude:    1234.5678,
		Voltage:     12.5834,
		Phase:       PhaseAscent,
		Environment: Environment{Pressure: 874.123, Temperature: 6.97531},
		GPS: GPSFix{
			Time:      ts,
			Latitude:  37.77490123,
			Longitude: -122.41940987,
			Altitude:  1234.5678,
			Sats:      9,
		},
		IMU: IMUData{
			AccelX: 0.12345, AccelY: -0.19999, AccelZ: 2,
			GyroX: 4.999, GyroY: -3.1415, GyroZ: 0.005,
		},
		Orientation: Orientation{AngleX: 1.005, AngleY: -0.6, AngleZ: 0.25},
	}
}

func TestTelemetrySampleCSVRow(t *testing.T) {
	s := sampleFixture()
	row := s.CSVRow()
	require.Len(t, row, len(s.CSVHeader()))

	want := []string{
		"TEAM42", "2026-03-14T09:26:53.589Z", "17",
		"1234.57", "874.12", "6.98", "12.583",
		"09:26:53", "37.774901", "-122.419410", "1234.57", "9",
		"0.123", "-0.200", "2.000",
		"5.00", "-3.14", "0.01",
		"ASCENT",
		"1.00", "-0.60", "0.25",
	}
	assert.Equal(t, want, row)
}

func TestTelemetrySampleTimestampIsUTC(t *testing.T) {
	s := sampleFixture()
	s.Timestamp = s.Timestamp.In(time.FixedZone("PDT", -7*3600))
	s.GPS.Time = s.Timestamp

	row := s.CSVRow()
	assert.Equal(t, "2026-03-14T09:26:53.589Z", row[1])
	assert.Equal(t, "09:26:53", row[7])
}

func TestCSVHeaderShape(t *testing.T) {
	h := TelemetrySample{}.CSVHeader()
	require.Len(t, h, 22)
	assert.Equal(t, "Team_Id", h[0])
	assert.Equal(t, "a_x", h[12])
	assert.Equal(t, "a_y", h[13])
	assert.Equal(t, "gyro_z", h[17])
	assert.Equal(t, "FSW_State", h[18])
	assert.Equal(t, "AngleZ", h[21])
}

func TestPhaseLabels(t *testing.T) {
	for _, p := range []Phase{PhaseIdle, PhaseAscent, PhaseCoast, PhaseDescent, PhaseLanded} {
		got, err := ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePhase("ORBIT")
	assert.Error(t, err)
	assert.Equal(t, "UNKNOWN", Phase(42).String())
	assert.True(t, PhaseLanded.Terminal())
	assert.False(t, PhaseDescent.Terminal())
}
