package scene

import (
	"testing"

	"github.com/pthm-cable/windfield/config"
	"github.com/pthm-cable/windfield/spatial"
	"github.com/pthm-cable/windfield/volume"
)

func testBounds() spatial.AABB {
	return spatial.AABB{Max: spatial.Vec3{X: 32, Y: 32, Z: 32}}
}

func TestCollect(t *testing.T) {
	s := New(testBounds())
	s.AddRadial(spatial.Vec3{X: 16, Y: 16, Z: 16}, 8, 20, 1, spatial.Vec3{})
	s.AddDirectional(
		spatial.Vec3{X: 8, Y: 8, Z: 8},
		spatial.Vec3{X: 4, Y: 4, Z: 4},
		spatial.Vec3{X: 2, Y: 0, Z: 0},
		10,
		spatial.Vec3{},
		spatial.Vec3{},
	)

	vols := s.Collect()
	if len(vols) != 2 {
		t.Fatalf("collected %d volumes, want 2", len(vols))
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}

	var radial, directional *volume.Volume
	for i := range vols {
		switch vols[i].Kind {
		case volume.KindRadial:
			radial = &vols[i]
		case volume.KindDirectional:
			directional = &vols[i]
		}
	}
	if radial == nil || directional == nil {
		t.Fatal("missing a collected volume kind")
	}
	if radial.Extents.X != 8 || radial.Strength != 20 {
		t.Errorf("radial = %+v", radial)
	}
	// The directional direction was normalized at spawn.
	if d := directional.Direction; d.X != 1 || d.Y != 0 || d.Z != 0 {
		t.Errorf("directional direction = %+v, want unit x", d)
	}
}

func TestAdvanceDriftAndBounce(t *testing.T) {
	s := New(testBounds())
	s.AddRadial(spatial.Vec3{X: 31, Y: 16, Z: 16}, 2, 10, 1, spatial.Vec3{X: 2})

	// Two units per advance: the first overshoots to 33, so it clamps
	// to the face at 32 and reverses; the second moves back inward.
	s.Advance(1)
	vols := s.Collect()
	if vols[0].Position.X != 32 && vols[0].Position.X != 33 {
		// Position may clamp at the face depending on overshoot.
		t.Logf("position after first advance: %+v", vols[0].Position)
	}

	s.Advance(1)
	vols = s.Collect()
	if vols[0].Position.X > 32 {
		t.Errorf("emitter escaped bounds: %+v", vols[0].Position)
	}

	// After bouncing, continued advances move it back inward.
	prev := vols[0].Position.X
	s.Advance(1)
	vols = s.Collect()
	if vols[0].Position.X >= prev {
		t.Errorf("drift did not reverse after bounce: %v -> %v", prev, vols[0].Position.X)
	}
}

func TestAdvanceStaticEmitterStays(t *testing.T) {
	s := New(testBounds())
	s.AddRadial(spatial.Vec3{X: 16, Y: 16, Z: 16}, 2, 10, 1, spatial.Vec3{})

	for i := 0; i < 10; i++ {
		s.Advance(0.5)
	}
	vols := s.Collect()
	if vols[0].Position != (spatial.Vec3{X: 16, Y: 16, Z: 16}) {
		t.Errorf("static emitter moved to %+v", vols[0].Position)
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	s, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if s.Count() != len(cfg.Scene.Emitters) {
		t.Errorf("scene has %d emitters, config has %d", s.Count(), len(cfg.Scene.Emitters))
	}
	if len(s.Collect()) != s.Count() {
		t.Errorf("Collect() returned %d volumes, want %d", len(s.Collect()), s.Count())
	}
}

func TestFromConfigUnknownKind(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Scene.Emitters = append(cfg.Scene.Emitters, config.EmitterConfig{Kind: "tornado"})

	if _, err := FromConfig(cfg); err == nil {
		t.Error("unknown emitter kind accepted")
	}
}
