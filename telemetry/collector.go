package telemetry

// StepSample is the per-step field snapshot recorded by the driver.
type StepSample struct {
	StepMs       float64
	ActiveBlocks int
	TotalBlocks  int
	MaxSpeed     float64
	DivergenceL1 float64
	VolumeCount  int
}

// Collector accumulates step samples until the driver flushes a
// window. Occupancy and field state report the last sample of the
// window; step times aggregate over all of them.
type Collector struct {
	windowStart int32
	stepMs      []float64
	last        StepSample
	haveSample  bool
}

// NewCollector creates an empty collector starting at step 0.
func NewCollector() *Collector {
	return &Collector{stepMs: make([]float64, 0, 256)}
}

// RecordStep adds one step's sample to the current window.
func (c *Collector) RecordStep(s StepSample) {
	c.stepMs = append(c.stepMs, s.StepMs)
	c.last = s
	c.haveSample = true
}

// Flush aggregates the current window into a WindowStats and resets
// the collector for the next window.
func (c *Collector) Flush(endStep int32, simTime float64) WindowStats {
	mean, p10, p50, p90 := ComputeStepStats(c.stepMs)

	stats := WindowStats{
		WindowStartStep: c.windowStart,
		WindowEndStep:   endStep,
		SimTimeSec:      simTime,
		ActiveBlocks:    c.last.ActiveBlocks,
		TotalBlocks:     c.last.TotalBlocks,
		MaxSpeed:        c.last.MaxSpeed,
		DivergenceL1:    c.last.DivergenceL1,
		VolumeCount:     c.last.VolumeCount,
		StepMeanMs:      mean,
		StepP10Ms:       p10,
		StepP50Ms:       p50,
		StepP90Ms:       p90,
	}
	if c.last.TotalBlocks > 0 {
		stats.Occupancy = float64(c.last.ActiveBlocks) / float64(c.last.TotalBlocks)
	}

	c.windowStart = endStep
	c.stepMs = c.stepMs[:0]
	c.haveSample = false
	return stats
}

// Pending reports whether any samples wait in the current window.
func (c *Collector) Pending() bool { return c.haveSample }
