package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/pthm-cable/windfield/config"
	"github.com/pthm-cable/windfield/scene"
	"github.com/pthm-cable/windfield/telemetry"
	"github.com/pthm-cable/windfield/wind"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	ticks := flag.Int("ticks", 600, "Stop after N steps (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in sim seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	grid := wind.New(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Depth, cfg.Derived.CellSize32)
	defer grid.Close()
	if grid.TotalBlockCount() == 0 {
		slog.Error("invalid grid configuration",
			"width", cfg.Grid.Width, "height", cfg.Grid.Height,
			"depth", cfg.Grid.Depth, "cell_size", cfg.Grid.CellSize)
		os.Exit(1)
	}

	sc, err := scene.FromConfig(cfg)
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		os.Exit(1)
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	grid.SetPhaseTimer(perf)
	collector := telemetry.NewCollector()

	slog.Info("simulation initialized",
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"depth", cfg.Grid.Depth,
		"cell_size", cfg.Grid.CellSize,
		"blocks", grid.TotalBlockCount(),
		"emitters", sc.Count(),
		"simd", wind.SIMDName(),
	)

	dt := cfg.Derived.DT32
	simTime := 0.0
	nextFlush := statsWindowSec

	flush := func(step int) {
		stats := collector.Flush(int32(step), simTime)
		if *logStats {
			stats.LogStats()
		}
		if err := out.WriteTelemetry(stats); err != nil {
			slog.Error("telemetry write failed", "error", err)
		}
		if err := out.WritePerf(perf.Stats(), int32(step)); err != nil {
			slog.Error("perf write failed", "error", err)
		}
	}

	step := 0
	for *ticks == 0 || step < *ticks {
		step++

		start := time.Now()
		perf.StartStep()
		sc.Advance(dt)
		grid.ApplyForces(dt, sc.Collect())
		grid.Step(dt, cfg.Derived.Iterations)
		perf.EndStep()

		collector.RecordStep(telemetry.StepSample{
			StepMs:       float64(time.Since(start)) / float64(time.Millisecond),
			ActiveBlocks: grid.ActiveBlockCount(),
			TotalBlocks:  grid.TotalBlockCount(),
			MaxSpeed:     math.Sqrt(float64(grid.MaxSpeedSq())),
			DivergenceL1: float64(grid.DivergenceL1()),
			VolumeCount:  sc.Count(),
		})

		simTime += float64(dt)
		if simTime >= nextFlush {
			flush(step)
			nextFlush += statsWindowSec
		}
	}

	if collector.Pending() {
		flush(step)
	}

	slog.Info("simulation finished",
		"steps", step,
		"sim_time", simTime,
		"active_blocks", grid.ActiveBlockCount(),
	)
}
