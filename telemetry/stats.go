package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated solver statistics for a time window.
type WindowStats struct {
	WindowStartStep int32   `csv:"-"`
	WindowEndStep   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Grid occupancy at window end
	ActiveBlocks int     `csv:"active_blocks"`
	TotalBlocks  int     `csv:"total_blocks"`
	Occupancy    float64 `csv:"occupancy"`

	// Field state at window end
	MaxSpeed     float64 `csv:"max_speed"`
	DivergenceL1 float64 `csv:"divergence_l1"`
	VolumeCount  int     `csv:"volumes"`

	// Step wall time over the window (milliseconds)
	StepMeanMs float64 `csv:"step_mean_ms"`
	StepP10Ms  float64 `csv:"step_p10_ms"`
	StepP50Ms  float64 `csv:"step_p50_ms"`
	StepP90Ms  float64 `csv:"step_p90_ms"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeStepStats calculates mean and percentiles from step times.
func ComputeStepStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartStep)),
		slog.Int("window_end", int(s.WindowEndStep)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("active_blocks", s.ActiveBlocks),
		slog.Int("total_blocks", s.TotalBlocks),
		slog.Float64("occupancy", s.Occupancy),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("divergence_l1", s.DivergenceL1),
		slog.Int("volumes", s.VolumeCount),
		slog.Float64("step_mean_ms", s.StepMeanMs),
		slog.Float64("step_p10_ms", s.StepP10Ms),
		slog.Float64("step_p50_ms", s.StepP50Ms),
		slog.Float64("step_p90_ms", s.StepP90Ms),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndStep,
		"sim_time", s.SimTimeSec,
		"active_blocks", s.ActiveBlocks,
		"total_blocks", s.TotalBlocks,
		"occupancy", s.Occupancy,
		"max_speed", s.MaxSpeed,
		"divergence_l1", s.DivergenceL1,
		"volumes", s.VolumeCount,
		"step_mean_ms", s.StepMeanMs,
		"step_p10_ms", s.StepP10Ms,
		"step_p50_ms", s.StepP50Ms,
		"step_p90_ms", s.StepP90Ms,
	)
}
