package scene

import (
	"github.com/pthm-cable/windfield/spatial"
	"github.com/pthm-cable/windfield/volume"
)

// Transform is an emitter's placement in the world.
type Transform struct {
	Pos spatial.Vec3
	Rot spatial.Vec3 // XYZ Euler, radians
}

// Emitter is the force-source description carried by an entity. For
// directional emitters Extents holds half-extents and Direction the
// unit push direction; radial emitters use Extents.X as radius.
type Emitter struct {
	Kind      volume.Kind
	Extents   spatial.Vec3
	Direction spatial.Vec3
	Strength  float32
	Falloff   float32
}

// Drift is an emitter's own velocity. Drifting emitters bounce inside
// the scene bounds; a zero drift leaves the emitter static.
type Drift struct {
	Vel spatial.Vec3
}
