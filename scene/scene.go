// Package scene manages the population of wind emitters as ECS
// entities and produces the per-frame volume list for the solver. It
// is pure data: no rendering, no solver state.
package scene

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/windfield/config"
	"github.com/pthm-cable/windfield/spatial"
	"github.com/pthm-cable/windfield/volume"
)

// Scene owns the emitter entities and the world box they move in.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map3[Transform, Emitter, Drift]
	filter *ecs.Filter3[Transform, Emitter, Drift]

	bounds  spatial.AABB
	count   int
	volumes []volume.Volume
}

// New creates an empty scene whose drifting emitters bounce inside
// bounds.
func New(bounds spatial.AABB) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:  world,
		mapper: ecs.NewMap3[Transform, Emitter, Drift](world),
		filter: ecs.NewFilter3[Transform, Emitter, Drift](world),
		bounds: bounds,
	}
}

// FromConfig builds a scene from the configured emitter list, bounded
// by the grid's world box.
func FromConfig(cfg *config.Config) (*Scene, error) {
	worldMax := spatial.Vec3{
		X: float32(cfg.Grid.Width) * cfg.Derived.CellSize32,
		Y: float32(cfg.Grid.Height) * cfg.Derived.CellSize32,
		Z: float32(cfg.Grid.Depth) * cfg.Derived.CellSize32,
	}
	s := New(spatial.AABB{Max: worldMax})

	for i, e := range cfg.Scene.Emitters {
		pos := vec3(e.Position)
		drift := vec3(e.Drift)

		switch e.Kind {
		case "radial":
			s.AddRadial(pos, float32(e.Radius), float32(e.Strength), float32(e.Falloff), drift)
		case "directional":
			s.AddDirectional(pos, vec3(e.HalfExtents), vec3(e.Direction),
				float32(e.Strength), vec3(e.Rotation), drift)
		default:
			return nil, fmt.Errorf("scene: emitter %d has unknown kind %q", i, e.Kind)
		}
	}
	return s, nil
}

// AddRadial spawns a radial emitter entity.
func (s *Scene) AddRadial(center spatial.Vec3, radius, strength, falloff float32, drift spatial.Vec3) ecs.Entity {
	s.count++
	return s.mapper.NewEntity(
		&Transform{Pos: center},
		&Emitter{
			Kind:     volume.KindRadial,
			Extents:  spatial.Vec3{X: radius},
			Strength: strength,
			Falloff:  falloff,
		},
		&Drift{Vel: drift},
	)
}

// AddDirectional spawns a directional emitter entity. dir is
// normalized the same way the volume constructor normalizes it.
func (s *Scene) AddDirectional(center, halfExtents, dir spatial.Vec3, strength float32, rot, drift spatial.Vec3) ecs.Entity {
	s.count++
	return s.mapper.NewEntity(
		&Transform{Pos: center, Rot: rot},
		&Emitter{
			Kind:      volume.KindDirectional,
			Extents:   halfExtents,
			Direction: dir.Normalized(),
			Strength:  strength,
		},
		&Drift{Vel: drift},
	)
}

// Count returns the number of emitters in the scene.
func (s *Scene) Count() int { return s.count }

// Advance moves drifting emitters by dt and bounces them off the scene
// bounds, reversing the drift component that crossed a face.
func (s *Scene) Advance(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		tr, _, drift := query.Get()
		if drift.Vel == (spatial.Vec3{}) {
			continue
		}

		tr.Pos = tr.Pos.Add(drift.Vel.Scale(dt))

		if tr.Pos.X < s.bounds.Min.X || tr.Pos.X > s.bounds.Max.X {
			drift.Vel.X = -drift.Vel.X
			tr.Pos.X = clampf(tr.Pos.X, s.bounds.Min.X, s.bounds.Max.X)
		}
		if tr.Pos.Y < s.bounds.Min.Y || tr.Pos.Y > s.bounds.Max.Y {
			drift.Vel.Y = -drift.Vel.Y
			tr.Pos.Y = clampf(tr.Pos.Y, s.bounds.Min.Y, s.bounds.Max.Y)
		}
		if tr.Pos.Z < s.bounds.Min.Z || tr.Pos.Z > s.bounds.Max.Z {
			drift.Vel.Z = -drift.Vel.Z
			tr.Pos.Z = clampf(tr.Pos.Z, s.bounds.Min.Z, s.bounds.Max.Z)
		}
	}
}

// Collect gathers the frame's volume list from the emitter entities.
// The returned slice aliases scene-owned storage rewritten each call;
// hand it to the solver and drop it before the next Collect.
func (s *Scene) Collect() []volume.Volume {
	s.volumes = s.volumes[:0]

	query := s.filter.Query()
	for query.Next() {
		tr, em, _ := query.Get()

		v := volume.Volume{
			Kind:      em.Kind,
			Position:  tr.Pos,
			Direction: em.Direction,
			Extents:   em.Extents,
			Rotation:  tr.Rot,
			Strength:  em.Strength,
			Falloff:   em.Falloff,
		}
		s.volumes = append(s.volumes, v)
	}
	return s.volumes
}

func vec3(v []float64) spatial.Vec3 {
	var out spatial.Vec3
	if len(v) > 0 {
		out.X = float32(v[0])
	}
	if len(v) > 1 {
		out.Y = float32(v[1])
	}
	if len(v) > 2 {
		out.Z = float32(v[2])
	}
	return out
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
