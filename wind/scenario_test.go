package wind

import (
	"testing"

	"github.com/pthm-cable/windfield/spatial"
	"github.com/pthm-cable/windfield/volume"
)

// End-to-end frame sequences at the published reference values:
// 32^3 grid, cell size 1, dt 0.1, 8 projection iterations.

func TestScenarioEmptySteps(t *testing.T) {
	g := New(32, 32, 32, 1)
	defer g.Close()

	for i := 0; i < 100; i++ {
		g.ApplyForces(0.1, nil)
		g.Step(0.1, DefaultIterations)
	}

	if got := g.ActiveBlockCount(); got != 0 {
		t.Errorf("active blocks after 100 empty steps = %d, want 0", got)
	}
	for i, c := range g.VelocityData() {
		if c.X != 0 || c.Y != 0 || c.Z != 0 {
			t.Fatalf("cell %d = %+v, want exact zero", i, c)
		}
	}
}

func TestScenarioRadialImpulse(t *testing.T) {
	g := New(32, 32, 32, 1)
	defer g.Close()

	g.ApplyForces(0.1, []volume.Volume{
		volume.Radial(spatial.Vec3{X: 16, Y: 16, Z: 16}, 8, 20, 1),
	})
	g.Step(0.1, DefaultIterations)

	if g.ActiveBlockCount() == 0 {
		t.Error("radial impulse left no blocks active")
	}
	if s := speedAt(g, 16, 16, 16); s > 1e-4 {
		t.Errorf("center speed = %v, want ~0", s)
	}

	plus := speedAt(g, 20, 16, 16)
	minus := speedAt(g, 12, 16, 16)
	if plus <= 0 {
		t.Errorf("|v| at (20,16,16) = %v, want > 0", plus)
	}
	if absf(plus-minus) > 1e-4 {
		t.Errorf("|v| at (20,16,16) = %v, at (12,16,16) = %v, want equal", plus, minus)
	}
}

func TestScenarioBoundaryZerosAfterStep(t *testing.T) {
	g := New(32, 32, 32, 1)
	defer g.Close()

	vols := []volume.Volume{
		volume.Radial(spatial.Vec3{X: 8, Y: 8, Z: 8}, 8, 30, 1),
		volume.Directional(spatial.Vec3{X: 24, Y: 24, Z: 24}, spatial.Vec3{X: 5, Y: 5, Z: 5}, spatial.Vec3{X: 1, Y: 1, Z: 0}, 10),
	}
	for i := 0; i < 5; i++ {
		g.ApplyForces(0.1, vols)
		g.Step(0.1, DefaultIterations)
		checkBoundaryZero(t, g)
	}
}

func TestScenarioImpulsePropagates(t *testing.T) {
	// Wind must spread beyond the initially seeded region: dilation
	// plus advection carries momentum into neighbor blocks over time.
	g := New(64, 64, 64, 1)
	defer g.Close()

	vols := []volume.Volume{volume.Directional(
		spatial.Vec3{X: 16, Y: 32, Z: 32},
		spatial.Vec3{X: 4, Y: 4, Z: 4},
		spatial.Vec3{X: 1},
		50,
	)}

	g.ApplyForces(0.1, vols)
	g.Step(0.1, DefaultIterations)
	firstActive := g.ActiveBlockCount()

	for i := 0; i < 30; i++ {
		g.ApplyForces(0.1, vols)
		g.Step(0.1, DefaultIterations)
	}

	if got := g.ActiveBlockCount(); got < firstActive {
		t.Errorf("active blocks shrank from %d to %d while forcing continued", firstActive, got)
	}

	// Downstream of the box (x > 20) some momentum must have arrived.
	var downstream float32
	for x := 24; x < 40; x++ {
		vx, _, _ := g.Velocity(x, 32, 32)
		downstream += vx
	}
	if downstream <= 0 {
		t.Errorf("no downstream momentum after 31 steps: sum vx = %v", downstream)
	}
}

func TestScenarioStepWithoutForcesDecays(t *testing.T) {
	g := New(32, 32, 32, 1)
	defer g.Close()

	g.ApplyForces(0.1, []volume.Volume{
		volume.Radial(spatial.Vec3{X: 16, Y: 16, Z: 16}, 8, 20, 1),
	})
	g.Step(0.1, DefaultIterations)
	peak := g.MaxSpeedSq()

	for i := 0; i < 50; i++ {
		g.ApplyForces(0.1, nil)
		g.Step(0.1, DefaultIterations)
	}

	if got := g.MaxSpeedSq(); got >= peak {
		t.Errorf("field did not decay: %v -> %v", peak, got)
	}
}
