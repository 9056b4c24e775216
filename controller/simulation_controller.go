package controller

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"telemetry-sim/models"
	"telemetry-sim/services/flight"
	"telemetry-sim/services/sensors"
	"telemetry-sim/utils"
)

// Recorder persists a finished sample. An error means the sample was not
// persisted and the tick must be abandoned.
type Recorder interface {
	Record(ctx context.Context, s *models.TelemetrySample) error
}

// SimulationOptions configures a SimulationController.
type SimulationOptions struct {
	TeamID         string
	Profile        flight.Profile
	InitialVoltage float64
	StartLat       float64
	StartLon       float64
	AppliedAccelZ  bool // a_z reports the tick's speed change, not BoostAccel

	Interval     time.Duration // wall-clock tick period
	MaxTicks     uint64        // 0 = unlimited
	LandedPolicy string        // utils.LandedContinue or utils.LandedStop
	LandedTicks  int           // LANDED rows written before stopping under LandedStop

	Rand  *rand.Rand
	Clock func() time.Time
}

// SimulationOptionsFromConfig maps the loaded config onto driver options.
func SimulationOptionsFromConfig(cfg *utils.SimulatorConfig, rng *rand.Rand) SimulationOptions {
	return SimulationOptions{
		TeamID: cfg.TeamID,
		Profile: flight.Profile{
			DT:           cfg.Interval(),
			BoostAccel:   cfg.Flight.BoostAccel,
			DescentAccel: cfg.Flight.DescentAccel,
			DragFactor:   cfg.Flight.DragFactor,
			CoastCutoff:  cfg.Flight.CoastCutoff,
			VoltageDrop:  cfg.Flight.VoltageDrop,
			VoltageFloor: cfg.Flight.VoltageFloor,
		},
		InitialVoltage: cfg.Flight.InitialVoltage,
		StartLat:       cfg.Flight.StartLat,
		StartLon:       cfg.Flight.StartLon,
		AppliedAccelZ:  cfg.Flight.AppliedAccelZ,
		Interval:       cfg.Interval(),
		MaxTicks:       cfg.Simulation.MaxTicks,
		LandedPolicy:   cfg.Simulation.LandedPolicy,
		LandedTicks:    cfg.Simulation.LandedTicks,
		Rand:           rng,
		Clock:          utils.UTCClock,
	}
}

// SimulationController is the tick driver. It is the only owner of the
// FlightState; every tick runs phase check, integration, sensor synthesis
// and recording to completion before the next one starts.
type SimulationController struct {
	mu    sync.Mutex // guards state for State() readers
	state models.FlightState

	integrator *flight.Integrator
	synth      *sensors.Synthesizer
	rec        Recorder

	interval     time.Duration
	maxTicks     uint64
	stopOnLanded bool
	landedTicks  int
	landedRows   int
}

func NewSimulationController(opts SimulationOptions, rec Recorder) *SimulationController {
	if opts.Interval <= 0 {
		opts.Interval = opts.Profile.DT
	}
	if opts.LandedTicks < 1 {
		opts.LandedTicks = 1
	}
	integrator := flight.NewIntegrator(opts.Profile)
	return &SimulationController{
		state:        models.NewFlightState(opts.TeamID, opts.InitialVoltage, opts.StartLat, opts.StartLon),
		integrator:   integrator,
		synth: sensors.NewSynthesizer(opts.Rand, opts.Clock, sensors.AccelZConfig{
			Boost:   opts.Profile.BoostAccel,
			Applied: opts.AppliedAccelZ,
			DT:      integrator.DT(),
		}),
		rec:          rec,
		interval:     opts.Interval,
		maxTicks:     opts.MaxTicks,
		stopOnLanded: opts.LandedPolicy == utils.LandedStop,
		landedTicks:  opts.LandedTicks,
	}
}

// Tick advances the simulation by one step and records the sample. The
// step runs on a copy of the state, which replaces the live state only
// once the recorder accepted the sample; on error the state is unchanged.
func (c *SimulationController) Tick(ctx context.Context) (models.TelemetrySample, error) {
	next := c.state
	from := next.Phase

	next.Phase = flight.NextPhase(&next)
	prevSpeed := next.VerticalSpeed
	c.integrator.Step(&next)
	next.PacketCount++
	sample := c.synth.Synthesize(&next, prevSpeed)

	if err := c.rec.Record(ctx, &sample); err != nil {
		return models.TelemetrySample{}, fmt.Errorf("tick %d abandoned: %w", next.PacketCount, err)
	}

	c.mu.Lock()
	c.state = next
	c.mu.Unlock()

	if next.Phase == models.PhaseLanded {
		c.landedRows++
	}
	if next.Phase != from {
		utils.L().Info("phase %s -> %s  packet=%d alt=%.1fm v=%.1fm/s %s",
			from, next.Phase, next.PacketCount, next.Altitude, next.VerticalSpeed, c.missionTime(next.PacketCount))
	}
	utils.L().Debug("tick %d  %s alt=%.2f v=%.2f volt=%.3f",
		next.PacketCount, next.Phase, next.Altitude, next.VerticalSpeed, next.Voltage)
	return sample, nil
}

// Run ticks immediately and then once per interval until ctx is cancelled,
// MaxTicks is reached, or the landed policy says stop. Cancellation is a
// normal stop and returns nil; a tick that could not be recorded returns
// its error.
func (c *SimulationController) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	utils.L().Info("simulation started  team=%s interval=%s", c.state.TeamID, c.interval)
	for {
		if ctx.Err() != nil {
			c.logStop("cancelled")
			return nil
		}
		if _, err := c.Tick(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				c.logStop("cancelled")
				return nil
			}
			return err
		}
		if reason := c.finished(); reason != "" {
			c.logStop(reason)
			return nil
		}

		select {
		case <-ctx.Done():
			c.logStop("cancelled")
			return nil
		case <-ticker.C:
		}
	}
}

func (c *SimulationController) finished() string {
	switch {
	case c.maxTicks > 0 && c.state.PacketCount >= c.maxTicks:
		return "max ticks reached"
	case c.stopOnLanded && c.landedRows >= c.landedTicks:
		return "landed"
	}
	return ""
}

func (c *SimulationController) logStop(reason string) {
	st := c.State()
	utils.L().Info("simulation stopped (%s)  packets=%d phase=%s", reason, st.PacketCount, st.Phase)
}

func (c *SimulationController) missionTime(packets uint64) string {
	return utils.FormatDuration(time.Duration(packets) * c.integrator.Profile().DT)
}

// State returns a snapshot of the flight state. Safe to call while Run is active.
func (c *SimulationController) State() models.FlightState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
