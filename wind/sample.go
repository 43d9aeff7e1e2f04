package wind

// sampleVelocityPrev trilinearly samples the previous-step velocity
// fields at a fractional cell coordinate. Coordinates are clamped to
// [0, dim-1.001] first, so any back-trace stays inside the grid and
// the +1 corner reads never run out of bounds.
func (g *Grid) sampleVelocityPrev(x, y, z float32) (outX, outY, outZ float32) {
	fx := clampf(x, 0, float32(g.width)-1.001)
	fy := clampf(y, 0, float32(g.height)-1.001)
	fz := clampf(z, 0, float32(g.depth)-1.001)

	i0 := int(fx)
	j0 := int(fy)
	k0 := int(fz)
	i1, j1, k1 := i0+1, j0+1, k0+1

	s1 := fx - float32(i0)
	s0 := 1 - s1
	t1 := fy - float32(j0)
	t0 := 1 - t1
	u1 := fz - float32(k0)
	u0 := 1 - u1

	slice0 := g.width * g.height * k0
	slice1 := g.width * g.height * k1
	row0 := g.width * j0
	row1 := g.width * j1

	lerp := func(d []float32) float32 {
		return ((d[i0+row0+slice0]*s0+d[i1+row0+slice0]*s1)*t0+
			(d[i0+row1+slice0]*s0+d[i1+row1+slice0]*s1)*t1)*u0 +
			((d[i0+row0+slice1]*s0+d[i1+row0+slice1]*s1)*t0+
				(d[i0+row1+slice1]*s0+d[i1+row1+slice1]*s1)*t1)*u1
	}

	return lerp(g.vxPrev), lerp(g.vyPrev), lerp(g.vzPrev)
}
