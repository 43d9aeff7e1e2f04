// Package volume defines the immutable force-source descriptors fed to
// the solver: oriented directional boxes and radial point sources.
package volume

import (
	"math"

	"github.com/pthm-cable/windfield/spatial"
)

// Kind discriminates the two force-source variants.
type Kind uint8

const (
	// KindDirectional is an oriented box pushing a constant direction.
	KindDirectional Kind = iota
	// KindRadial is a sphere pushing outward with linear falloff.
	KindRadial
)

// String returns the kind name used in config files and logs.
func (k Kind) String() string {
	if k == KindRadial {
		return "radial"
	}
	return "directional"
}

// Volume is a force source. It is a pure value: the solver never
// mutates it, and callers must not change it while a step is running.
//
// For directional volumes Extents holds the box half-extents and
// Direction the unit force direction before Rotation is applied. For
// radial volumes Extents.X is the radius; Direction and Rotation are
// ignored and Falloff is reserved (falloff is linear regardless).
type Volume struct {
	Kind      Kind
	Position  spatial.Vec3
	Direction spatial.Vec3
	Extents   spatial.Vec3
	Rotation  spatial.Vec3 // XYZ Euler, radians
	Strength  float32
	Falloff   float32
}

// Directional returns a box source at center with the given half
// extents, pushing along dir (normalized here) with the given strength.
// Rotation starts at zero.
func Directional(center, halfExtents, dir spatial.Vec3, strength float32) Volume {
	return Volume{
		Kind:      KindDirectional,
		Position:  center,
		Direction: dir.Normalized(),
		Extents:   halfExtents,
		Strength:  strength,
	}
}

// Radial returns a sphere source at center with the given radius,
// pushing outward at the given strength at the center. The falloff
// parameter is stored for interoperability but falloff is linear.
func Radial(center spatial.Vec3, radius, strength, falloff float32) Volume {
	return Volume{
		Kind:     KindRadial,
		Position: center,
		Extents:  spatial.Vec3{X: radius},
		Strength: strength,
		Falloff:  falloff,
	}
}

// Bounds returns the world-space AABB enclosing the source: the box
// extents for directional volumes, the radius cube for radial ones.
func (v Volume) Bounds() spatial.AABB {
	if v.Kind == KindRadial {
		r := v.Extents.X
		return spatial.Box(v.Position, spatial.Vec3{X: r, Y: r, Z: r})
	}
	return spatial.Box(v.Position, v.Extents)
}

// RotatedDirection returns the force direction after applying the
// volume's Euler rotation.
func (v Volume) RotatedDirection() spatial.Vec3 {
	return RotateDirection(v.Direction, v.Rotation)
}

// RotateDirection applies elementary rotations to v in the fixed order
// X then Y then Z. Source authors orient volumes through these angles,
// so the order is part of the public contract.
func RotateDirection(v, euler spatial.Vec3) spatial.Vec3 {
	sx, cx := sincos(euler.X)
	sy, cy := sincos(euler.Y)
	sz, cz := sincos(euler.Z)

	y := v.Y*cx - v.Z*sx
	z := v.Y*sx + v.Z*cx

	x := v.X*cy + z*sy
	z = -v.X*sy + z*cy

	rx := x*cz - y*sz
	ry := x*sz + y*cz
	return spatial.Vec3{X: rx, Y: ry, Z: z}
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}
