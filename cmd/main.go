package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"telemetry-sim/controller"
	"telemetry-sim/services/archive"
	"telemetry-sim/utils"
)

func main() {
	// ── CLI flags ────────────────────────────────────────────────────
	configPath := flag.String("config", "config/simulator.yaml", "path to simulator.yaml (optional)")
	streamPath := flag.String("out", "", "record stream path (overrides config)")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	flag.Parse()

	// ── Config ───────────────────────────────────────────────────────
	cfg, err := utils.LoadSimulatorConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load simulator config: %v", err)
	}
	if *streamPath != "" {
		cfg.Stream.Path = *streamPath
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	// ── Logger ───────────────────────────────────────────────────────
	level, _ := utils.ParseLevel(cfg.Log.Level) // validated with the config
	logger := utils.InitLogger(level, cfg.Log.File)
	defer logger.Close()

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  Telemetry-Sim  ·  Payload Recovery Flight Data")
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	// ── Context with OS signal cancellation ──────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if d := cfg.Simulation.DurationSeconds; d > 0 {
		var timerCancel context.CancelFunc
		ctx, timerCancel = context.WithTimeout(ctx, time.Duration(d)*time.Second)
		defer timerCancel()
		utils.L().Info("simulation will auto-stop after %ds", d)
	}

	// ── Pipeline assembly ────────────────────────────────────────────
	//
	//  SimulationController ── tick ──► RecordingController ──► telemetry.csv
	//                                                     └────► telemetry.db (optional)

	runID := archive.NewRunID()
	recordCtrl, err := controller.NewRecordingController(cfg, runID)
	if err != nil {
		utils.L().Fatal("init recording controller: %v", err)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	utils.L().Info("run=%s seed=%d", runID, seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	simCtrl := controller.NewSimulationController(controller.SimulationOptionsFromConfig(cfg, rng), recordCtrl)

	done := make(chan error, 1)
	go func() { done <- simCtrl.Run(ctx) }()

	// ── Stats ticker ─────────────────────────────────────────────────
	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()

	var runErr error
loop:
	for {
		select {
		case runErr = <-done:
			break loop
		case <-statsTicker.C:
			st := simCtrl.State()
			utils.L().Info("── stats  phase=%s packets=%d alt=%.1fm volt=%.3fV rows=%d archive_failures=%d",
				st.Phase, st.PacketCount, st.Altitude, st.Voltage,
				recordCtrl.RowsWritten(), recordCtrl.ArchiveFailures())
		}
	}

	recordCtrl.Stop()
	if runErr != nil {
		utils.L().Fatal("simulation aborted: %v", runErr)
	}

	fmt.Println("\n✓ Telemetry-Sim finished. Stream at:", cfg.Stream.Path)
}
