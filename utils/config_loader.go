package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Landed policies: what the driver does once the vehicle is on the ground.
const (
	LandedContinue = "continue" // keep appending LANDED rows until stopped
	LandedStop     = "stop"     // stop after LandedTicks LANDED rows
)

// ─── Section configs ────────────────────────────────────────────────────

type SimulationConfig struct {
	IntervalMs      int    `yaml:"interval_ms" env:"INTERVAL_MS"`
	Seed            uint64 `yaml:"seed" env:"SEED"` // 0 = seed from the clock
	MaxTicks        uint64 `yaml:"max_ticks" env:"MAX_TICKS"`
	DurationSeconds int    `yaml:"duration_seconds" env:"DURATION_SECONDS"`
	LandedPolicy    string `yaml:"landed_policy" env:"LANDED_POLICY"`
	LandedTicks     int    `yaml:"landed_ticks" env:"LANDED_TICKS"`
}

type FlightConfig struct {
	BoostAccel     float64 `yaml:"boost_accel" env:"BOOST_ACCEL"`
	DescentAccel   float64 `yaml:"descent_accel" env:"DESCENT_ACCEL"`
	DragFactor     float64 `yaml:"drag_factor" env:"DRAG_FACTOR"`
	CoastCutoff    float64 `yaml:"coast_cutoff" env:"COAST_CUTOFF"`
	InitialVoltage float64 `yaml:"initial_voltage" env:"INITIAL_VOLTAGE"`
	VoltageDrop    float64 `yaml:"voltage_drop" env:"VOLTAGE_DROP"`
	VoltageFloor   float64 `yaml:"voltage_floor" env:"VOLTAGE_FLOOR"`
	StartLat       float64 `yaml:"start_lat" env:"START_LAT"`
	StartLon       float64 `yaml:"start_lon" env:"START_LON"`

	// AppliedAccelZ reports the speed change of each tick on a_z instead of
	// the constant boost acceleration.
	AppliedAccelZ bool `yaml:"applied_accel_z" env:"APPLIED_ACCEL_Z"`
}

type StreamConfig struct {
	Path      string `yaml:"path" env:"PATH"`
	SyncEvery int    `yaml:"sync_every" env:"SYNC_EVERY"` // fsync every N rows, 0 = never
}

type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Path    string `yaml:"path" env:"PATH"`
}

type RetryConfig struct {
	MaxRetries int `yaml:"max_retries" env:"MAX_RETRIES"`
	InitialMs  int `yaml:"initial_ms" env:"INITIAL_MS"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

// SimulatorConfig is the top-level structure for simulator.yaml. Every key
// can be overridden by a SIM_-prefixed environment variable, e.g.
// SIM_STREAM_PATH or SIM_SIMULATION_INTERVAL_MS.
type SimulatorConfig struct {
	TeamID     string           `yaml:"team_id" env:"TEAM_ID"`
	Simulation SimulationConfig `yaml:"simulation" envPrefix:"SIMULATION_"`
	Flight     FlightConfig     `yaml:"flight" envPrefix:"FLIGHT_"`
	Stream     StreamConfig     `yaml:"stream" envPrefix:"STREAM_"`
	Archive    ArchiveConfig    `yaml:"archive" envPrefix:"ARCHIVE_"`
	Retry      RetryConfig      `yaml:"retry" envPrefix:"RETRY_"`
	Log        LogConfig        `yaml:"log" envPrefix:"LOG_"`
}

// DefaultSimulatorConfig returns the reference exercise settings.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		TeamID: "TEAM42",
		Simulation: SimulationConfig{
			IntervalMs:   500,
			LandedPolicy: LandedContinue,
			LandedTicks:  1,
		},
		Flight: FlightConfig{
			BoostAccel:     2.0,
			DescentAccel:   -1.0,
			DragFactor:     0.99,
			CoastCutoff:    0.5,
			InitialVoltage: 12.6,
			VoltageDrop:    0.001,
			VoltageFloor:   9.0,
			StartLat:       37.7749,
			StartLon:       -122.4194,
		},
		Stream:  StreamConfig{Path: "telemetry.csv", SyncEvery: 1},
		Archive: ArchiveConfig{Path: "telemetry.db"},
		Retry:   RetryConfig{MaxRetries: 3, InitialMs: 50},
		Log:     LogConfig{Level: "info"},
	}
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadSimulatorConfig layers defaults, the YAML file at path and SIM_*
// environment variables, in that order. A missing file is not an error.
func LoadSimulatorConfig(path string) (*SimulatorConfig, error) {
	cfg := DefaultSimulatorConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults + env only
		case err != nil:
			return nil, fmt.Errorf("read simulator config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse simulator config: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SIM_"}); err != nil {
		return nil, fmt.Errorf("parse simulator env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the simulator cannot honour.
func (c *SimulatorConfig) Validate() error {
	switch {
	case c.TeamID == "":
		return fmt.Errorf("%w: team_id is empty", ErrInvalidConfig)
	case strings.ContainsAny(c.TeamID, ",\"\r\n") || strings.TrimSpace(c.TeamID) != c.TeamID:
		return fmt.Errorf("%w: team_id %q cannot be written unquoted", ErrInvalidConfig, c.TeamID)
	case c.Simulation.IntervalMs <= 0:
		return fmt.Errorf("%w: simulation.interval_ms must be positive", ErrInvalidConfig)
	case c.Simulation.LandedPolicy != LandedContinue && c.Simulation.LandedPolicy != LandedStop:
		return fmt.Errorf("%w: simulation.landed_policy %q (want %s or %s)",
			ErrInvalidConfig, c.Simulation.LandedPolicy, LandedContinue, LandedStop)
	case c.Simulation.LandedTicks < 1:
		return fmt.Errorf("%w: simulation.landed_ticks must be at least 1", ErrInvalidConfig)
	case c.Flight.DragFactor <= 0 || c.Flight.DragFactor >= 1:
		return fmt.Errorf("%w: flight.drag_factor must be in (0,1)", ErrInvalidConfig)
	case c.Flight.BoostAccel <= 0:
		return fmt.Errorf("%w: flight.boost_accel must be positive", ErrInvalidConfig)
	case c.Flight.DescentAccel >= 0:
		return fmt.Errorf("%w: flight.descent_accel must be negative", ErrInvalidConfig)
	case c.Flight.CoastCutoff < 0:
		return fmt.Errorf("%w: flight.coast_cutoff cannot be negative", ErrInvalidConfig)
	case c.Flight.VoltageDrop < 0:
		return fmt.Errorf("%w: flight.voltage_drop cannot be negative", ErrInvalidConfig)
	case c.Flight.InitialVoltage < c.Flight.VoltageFloor:
		return fmt.Errorf("%w: flight.initial_voltage below voltage_floor", ErrInvalidConfig)
	case c.Stream.Path == "":
		return fmt.Errorf("%w: stream.path is empty", ErrInvalidConfig)
	case c.Stream.SyncEvery < 0:
		return fmt.Errorf("%w: stream.sync_every cannot be negative", ErrInvalidConfig)
	case c.Archive.Enabled && c.Archive.Path == "":
		return fmt.Errorf("%w: archive.path is empty", ErrInvalidConfig)
	case c.Retry.MaxRetries < 0 || c.Retry.InitialMs < 0:
		return fmt.Errorf("%w: retry settings cannot be negative", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Interval returns the tick period.
func (c *SimulatorConfig) Interval() time.Duration {
	return time.Duration(c.Simulation.IntervalMs) * time.Millisecond
}
