package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	if c.Pending() {
		t.Error("fresh collector reports pending samples")
	}

	c.RecordStep(StepSample{StepMs: 1, ActiveBlocks: 10, TotalBlocks: 64, MaxSpeed: 0.5, DivergenceL1: 3, VolumeCount: 2})
	c.RecordStep(StepSample{StepMs: 3, ActiveBlocks: 27, TotalBlocks: 64, MaxSpeed: 1.5, DivergenceL1: 2, VolumeCount: 2})
	if !c.Pending() {
		t.Error("collector with samples reports nothing pending")
	}

	stats := c.Flush(20, 2.0)

	if stats.WindowStartStep != 0 || stats.WindowEndStep != 20 {
		t.Errorf("window = [%d,%d], want [0,20]", stats.WindowStartStep, stats.WindowEndStep)
	}
	// Occupancy and field state come from the last sample.
	if stats.ActiveBlocks != 27 || stats.TotalBlocks != 64 {
		t.Errorf("blocks = %d/%d, want 27/64", stats.ActiveBlocks, stats.TotalBlocks)
	}
	if math.Abs(stats.Occupancy-27.0/64.0) > 1e-9 {
		t.Errorf("occupancy = %v, want %v", stats.Occupancy, 27.0/64.0)
	}
	if stats.MaxSpeed != 1.5 || stats.DivergenceL1 != 2 {
		t.Errorf("field state = %v/%v, want 1.5/2", stats.MaxSpeed, stats.DivergenceL1)
	}
	if math.Abs(stats.StepMeanMs-2) > 1e-9 {
		t.Errorf("step mean = %v, want 2", stats.StepMeanMs)
	}

	// Flush resets the window.
	if c.Pending() {
		t.Error("flushed collector still pending")
	}
	next := c.Flush(40, 4.0)
	if next.WindowStartStep != 20 {
		t.Errorf("next window start = %d, want 20", next.WindowStartStep)
	}
	if next.StepMeanMs != 0 {
		t.Errorf("empty window mean = %v, want 0", next.StepMeanMs)
	}
}
