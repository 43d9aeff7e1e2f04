package wind

// damping is the global velocity damping applied inside advection.
// It lives here and only here; force accumulation is not damped.
const damping = 0.99

// advect performs the semi-Lagrangian sweep: for each interior cell of
// each active block, trace back along the previous velocity, sample the
// previous field trilinearly and write the damped result into the
// current field. The back-trace works in cell units; dt·velocity is
// not divided by the cell size, which is the convention the published
// scenarios depend on.
//
// Callers must have copied vx/vy/vz into the prev fields first.
func (g *Grid) advect(dt float32) {
	g.forActiveBlocks(func(bi int) {
		bx, by, bz := g.blockCoords(bi)
		x0, x1, y0, y1, z0, z1 := g.interiorRange(bx, by, bz)

		for z := z0; z < z1; z++ {
			for y := y0; y < y1; y++ {
				base := g.idx(0, y, z)
				for x := x0; x < x1; x++ {
					idx := base + x
					sx, sy, sz := g.sampleVelocityPrev(
						float32(x)-dt*g.vxPrev[idx],
						float32(y)-dt*g.vyPrev[idx],
						float32(z)-dt*g.vzPrev[idx],
					)
					g.vx[idx] = sx * damping
					g.vy[idx] = sy * damping
					g.vz[idx] = sz * damping
				}
			}
		}
	})

	g.setVelocityBounds()
}
