package spatial

import "math"

// maxFloat mirrors the sentinel used for empty bounds and missed rays.
const maxFloat = math.MaxFloat32

// AABB is an axis-aligned bounding box. The box returned by NewAABB is
// inverted (min=+MaxFloat32, max=-MaxFloat32) so the first Expand
// establishes it.
type AABB struct {
	Min, Max Vec3
}

// NewAABB returns an empty (inverted) box.
func NewAABB() AABB {
	return AABB{
		Min: Vec3{maxFloat, maxFloat, maxFloat},
		Max: Vec3{-maxFloat, -maxFloat, -maxFloat},
	}
}

// Box returns the box spanning center ± extents.
func Box(center, extents Vec3) AABB {
	return AABB{Min: center.Sub(extents), Max: center.Add(extents)}
}

// Expand grows the box to include point p.
func (b *AABB) Expand(p Vec3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}

// ExpandBox grows the box to include box o.
func (b *AABB) ExpandBox(o AABB) {
	b.Expand(o.Min)
	b.Expand(o.Max)
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return Vec3{
		(b.Min.X + b.Max.X) * 0.5,
		(b.Min.Y + b.Max.Y) * 0.5,
		(b.Min.Z + b.Max.Z) * 0.5,
	}
}

// Contains reports whether p lies inside the box (boundary inclusive).
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Overlaps reports whether the two boxes intersect on all three axes.
func (b AABB) Overlaps(o AABB) bool {
	return b.Max.X >= o.Min.X && b.Min.X <= o.Max.X &&
		b.Max.Y >= o.Min.Y && b.Min.Y <= o.Max.Y &&
		b.Max.Z >= o.Min.Z && b.Min.Z <= o.Max.Z
}

// Ray is an origin and direction with precomputed reciprocal direction
// for the slab test. Near-zero direction components get a signed large
// reciprocal so the slab test stays finite.
type Ray struct {
	Origin Vec3
	Dir    Vec3
	InvDir Vec3
}

// NewRay builds a ray from origin o along direction d.
func NewRay(o, d Vec3) Ray {
	inv := func(c float32) float32 {
		if c > 1e-6 || c < -1e-6 {
			return 1 / c
		}
		if c < 0 {
			return -maxFloat
		}
		return maxFloat
	}
	return Ray{
		Origin: o,
		Dir:    d,
		InvDir: Vec3{inv(d.X), inv(d.Y), inv(d.Z)},
	}
}

// Intersect runs the slab test and returns the near-t of the hit. The
// returned t can be negative when the origin is inside the box.
func (b AABB) Intersect(r Ray) (float32, bool) {
	t1 := (b.Min.X - r.Origin.X) * r.InvDir.X
	t2 := (b.Max.X - r.Origin.X) * r.InvDir.X
	tmin := min(t1, t2)
	tmax := max(t1, t2)

	t1 = (b.Min.Y - r.Origin.Y) * r.InvDir.Y
	t2 = (b.Max.Y - r.Origin.Y) * r.InvDir.Y
	tmin = max(tmin, min(t1, t2))
	tmax = min(tmax, max(t1, t2))

	t1 = (b.Min.Z - r.Origin.Z) * r.InvDir.Z
	t2 = (b.Max.Z - r.Origin.Z) * r.InvDir.Z
	tmin = max(tmin, min(t1, t2))
	tmax = min(tmax, max(t1, t2))

	return tmin, tmax >= tmin && tmax >= 0
}
