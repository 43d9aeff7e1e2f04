package wind

import "gonum.org/v1/gonum/blas/blas32"

// Step advances the field one frame: snapshot velocity into the prev
// fields, self-advect, then project toward a divergence-free state.
// ApplyForces is expected to have run first this frame; together they
// form the per-frame sequence
// updateActiveBlocks -> forces -> copy -> advect -> project -> bounds.
//
// iterations is the projection relaxation count; pass
// DefaultIterations when in doubt. The prev fields are only meaningful
// between the snapshot here and the end of advection.
func (g *Grid) Step(dt float32, iterations int) {
	if g.empty() {
		return
	}

	g.phase(PhaseAdvect)
	copyField(g.vxPrev, g.vx)
	copyField(g.vyPrev, g.vy)
	copyField(g.vzPrev, g.vz)
	g.advect(dt)

	g.phase(PhaseProject)
	g.project(iterations)

	g.phase(PhaseBoundary)
	g.setVelocityBounds()
}

func copyField(dst, src []float32) {
	n := len(src)
	blas32.Copy(
		blas32.Vector{N: n, Inc: 1, Data: src},
		blas32.Vector{N: n, Inc: 1, Data: dst},
	)
}
