package sensors

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemetry-sim/models"
)

var fixedNow = time.Date(2026, 10, 19, 14, 5, 9, 123_456_789, time.UTC)

func newTestSynth(seed uint64) *Synthesizer {
	return newTestSynthWith(seed, AccelZConfig{Boost: 2.0, DT: 0.5})
}

func newTestSynthWith(seed uint64, az AccelZConfig) *Synthesizer {
	return NewSynthesizer(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		func() time.Time { return fixedNow }, az)
}

func TestEnvironmentAtSeaLevel(t *testing.T) {
	assert.Equal(t, 1013.25, Pressure(0))
	assert.Equal(t, 15.0, Temperature(0))
}

func TestEnvironmentDecreasesWithAltitude(t *testing.T) {
	assert.InDelta(t, 1013.25*0.5, Pressure(8434.5*0.6931471805599453), 1e-6)
	assert.InDelta(t, 8.5, Temperature(1000), 1e-9)
	assert.Less(t, Pressure(5000), Pressure(1000))
}

func TestSynthesizeBounds(t *testing.T) {
	s := newTestSynth(7)
	st := models.NewFlightState("TEAM42", 12.6, 37.7749, -122.4194)
	st.Altitude = 250

	for i := 0; i < 2000; i++ {
		prevLat, prevLon := st.GPSLat, st.GPSLon
		sample := s.Synthesize(&st, st.VerticalSpeed)

		assert.LessOrEqual(t, abs(sample.IMU.AccelX), AccelNoise)
		assert.LessOrEqual(t, abs(sample.IMU.AccelY), AccelNoise)
		assert.LessOrEqual(t, abs(sample.IMU.GyroX), GyroNoise)
		assert.LessOrEqual(t, abs(sample.IMU.GyroY), GyroNoise)
		assert.LessOrEqual(t, abs(sample.IMU.GyroZ), GyroNoise)

		assert.LessOrEqual(t, abs(sample.Orientation.AngleX-sample.IMU.AccelX*5), TiltNoise)
		assert.LessOrEqual(t, abs(sample.Orientation.AngleY-sample.IMU.AccelY*5), TiltNoise)
		assert.LessOrEqual(t, abs(sample.Orientation.AngleZ-sample.IMU.GyroZ*0.1), YawNoise)

		assert.LessOrEqual(t, abs(sample.GPS.Latitude-prevLat), GPSDrift)
		assert.LessOrEqual(t, abs(sample.GPS.Longitude-prevLon), GPSDrift)
		assert.Equal(t, st.GPSLat, sample.GPS.Latitude)
		assert.GreaterOrEqual(t, sample.GPS.Sats, MinGPSSats)
		assert.LessOrEqual(t, sample.GPS.Sats, MaxGPSSats)
	}
}

func TestSynthesizeCopiesState(t *testing.T) {
	s := newTestSynth(1)
	st := models.FlightState{
		TeamID: "TEAM42", Phase: models.PhaseAscent, Altitude: 42,
		VerticalSpeed: 15, PacketCount: 9, Voltage: 12.5,
	}

	sample := s.Synthesize(&st, 10)

	assert.Equal(t, "TEAM42", sample.TeamID)
	assert.Equal(t, uint64(9), sample.PacketCount)
	assert.Equal(t, models.PhaseAscent, sample.Phase)
	assert.Equal(t, 42.0, sample.Altitude)
	assert.Equal(t, 42.0, sample.GPS.Altitude)
	assert.Equal(t, 12.5, sample.Voltage)
	assert.InDelta(t, 2.0, sample.IMU.AccelZ, 1e-9)
	assert.Equal(t, Pressure(42), sample.Environment.Pressure)
	assert.Equal(t, Temperature(42), sample.Environment.Temperature)
	assert.Equal(t, fixedNow, sample.Timestamp)
	assert.Equal(t, fixedNow.Truncate(time.Second), sample.GPS.Time)
}

func TestAccelZIsBoostInEveryPhase(t *testing.T) {
	cases := []struct {
		phase     models.Phase
		prev, now float64
	}{
		{models.PhaseIdle, 0, 0},
		{models.PhaseAscent, 10, 11},
		{models.PhaseCoast, 120, 118.8},
		{models.PhaseDescent, -3, -3.5},
		{models.PhaseLanded, 0, 0},
	}
	s := newTestSynth(3)
	for _, tc := range cases {
		t.Run(tc.phase.String(), func(t *testing.T) {
			st := models.FlightState{TeamID: "T", Phase: tc.phase, VerticalSpeed: tc.now}
			assert.Equal(t, 2.0, s.Synthesize(&st, tc.prev).IMU.AccelZ)
		})
	}
}

func TestAccelZAppliedMode(t *testing.T) {
	s := newTestSynthWith(3, AccelZConfig{Boost: 2.0, Applied: true, DT: 0.5})

	st := models.FlightState{TeamID: "T", Phase: models.PhaseDescent, VerticalSpeed: -3.5}
	assert.InDelta(t, -1.0, s.Synthesize(&st, -3).IMU.AccelZ, 1e-9)

	st = models.FlightState{TeamID: "T", Phase: models.PhaseAscent, VerticalSpeed: 11}
	assert.InDelta(t, 2.0, s.Synthesize(&st, 10).IMU.AccelZ, 1e-9)

	zero := newTestSynthWith(3, AccelZConfig{Boost: 2.0, Applied: true})
	assert.Equal(t, 0.0, zero.Synthesize(&st, 10).IMU.AccelZ)
}

func TestSynthesizeIsReplayable(t *testing.T) {
	a, b := newTestSynth(99), newTestSynth(99)
	sa := models.NewFlightState("T", 12, 1, 2)
	sb := sa

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Synthesize(&sa, 0), b.Synthesize(&sb, 0))
	}
	assert.Equal(t, sa, sb)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
