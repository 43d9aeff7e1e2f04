package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/windfield/wind"
)

func TestPerfCollectorAggregates(t *testing.T) {
	p := NewPerfCollector(10)

	for i := 0; i < 3; i++ {
		p.StartStep()
		p.StartPhase(wind.PhaseForces)
		time.Sleep(time.Millisecond)
		p.StartPhase(wind.PhaseProject)
		time.Sleep(time.Millisecond)
		p.EndStep()
	}

	stats := p.Stats()
	if stats.AvgStepDuration <= 0 {
		t.Error("avg step duration not positive")
	}
	if stats.MinStepDuration > stats.MaxStepDuration {
		t.Errorf("min %v > max %v", stats.MinStepDuration, stats.MaxStepDuration)
	}
	if stats.PhaseAvg[wind.PhaseForces] <= 0 {
		t.Error("forces phase not recorded")
	}
	if stats.PhaseAvg[wind.PhaseProject] <= 0 {
		t.Error("project phase not recorded")
	}
	if stats.StepsPerSecond <= 0 {
		t.Error("steps per second not positive")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)
	stats := p.Stats()

	if stats.AvgStepDuration != 0 {
		t.Errorf("empty collector avg = %v, want 0", stats.AvgStepDuration)
	}
	if len(stats.PhaseAvg) != 0 {
		t.Errorf("empty collector has %d phases", len(stats.PhaseAvg))
	}
}

func TestPerfCollectorWindowRolls(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 10; i++ {
		p.StartStep()
		p.EndStep()
	}

	if p.sampleCount != 4 {
		t.Errorf("sample count = %d, want window size 4", p.sampleCount)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	p := NewPerfCollector(10)
	p.StartStep()
	p.StartPhase(wind.PhaseAdvect)
	time.Sleep(time.Millisecond)
	p.EndStep()

	rec := p.Stats().ToCSV(42)
	if rec.WindowEnd != 42 {
		t.Errorf("window end = %d, want 42", rec.WindowEnd)
	}
	if rec.AdvectPct <= 0 {
		t.Error("advect pct not populated")
	}
}

// PerfCollector must satisfy the solver's phase hook.
var _ wind.PhaseTimer = (*PerfCollector)(nil)
