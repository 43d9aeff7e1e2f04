package wind

import "gonum.org/v1/gonum/blas/blas32"

// project removes divergence from the velocity field: compute the
// divergence over active interior cells, relax a 7-point Poisson
// problem on pressure with red-black Gauss-Seidel half-sweeps, then
// subtract the pressure gradient. The red-black split lets blocks run
// in parallel within a color; forActiveBlocks barriers between colors
// and iterations keep the in-place update well ordered.
func (g *Grid) project(iterations int) {
	sy := g.width
	sz := g.width * g.height

	// Step A: divergence and pressure init over active interior rows.
	g.forActiveBlocks(func(bi int) {
		bx, by, bz := g.blockCoords(bi)
		x0, x1, y0, y1, z0, z1 := g.interiorRange(bx, by, bz)
		n := x1 - x0
		if n <= 0 {
			return
		}

		for z := z0; z < z1; z++ {
			for y := y0; y < y1; y++ {
				i := g.idx(x0, y, z)
				BaseDivergencePressureRow(
					g.vx[i+1:i+1+n], g.vx[i-1:i-1+n],
					g.vy[i+sy:i+sy+n], g.vy[i-sy:i-sy+n],
					g.vz[i+sz:i+sz+n], g.vz[i-sz:i-sz+n],
					g.divergence[i:i+n], g.pressure[i:i+n],
				)
			}
		}
	})

	g.setScalarBounds(g.divergence)
	g.setScalarBounds(g.pressure)

	// Step B: red-black Gauss-Seidel.
	const invSix = 1.0 / 6.0
	for k := 0; k < iterations; k++ {
		for rb := 0; rb < 2; rb++ {
			g.forActiveBlocks(func(bi int) {
				bx, by, bz := g.blockCoords(bi)
				x0, x1, y0, y1, z0, z1 := g.interiorRange(bx, by, bz)

				for z := z0; z < z1; z++ {
					for y := y0; y < y1; y++ {
						// First interior x of this row's color, shifted
						// into the block range while keeping parity.
						rowStart := 1 + ((y + z + rb) % 2)
						x := max(x0, rowStart)
						if x%2 != rowStart%2 {
							x++
						}

						base := g.idx(0, y, z)
						for ; x < x1; x += 2 {
							idx := base + x
							g.pressure[idx] = (g.divergence[idx] +
								g.pressure[idx-1] + g.pressure[idx+1] +
								g.pressure[idx-sy] + g.pressure[idx+sy] +
								g.pressure[idx-sz] + g.pressure[idx+sz]) * invSix
						}
					}
				}
			})
		}
		g.setScalarBounds(g.pressure)
	}

	// Step C: subtract the pressure gradient from velocity.
	g.forActiveBlocks(func(bi int) {
		bx, by, bz := g.blockCoords(bi)
		x0, x1, y0, y1, z0, z1 := g.interiorRange(bx, by, bz)
		n := x1 - x0
		if n <= 0 {
			return
		}

		for z := z0; z < z1; z++ {
			for y := y0; y < y1; y++ {
				i := g.idx(x0, y, z)
				BaseGradientSubRow(g.vx[i:i+n], g.pressure[i+1:i+1+n], g.pressure[i-1:i-1+n])
				BaseGradientSubRow(g.vy[i:i+n], g.pressure[i+sy:i+sy+n], g.pressure[i-sy:i-sy+n])
				BaseGradientSubRow(g.vz[i:i+n], g.pressure[i+sz:i+sz+n], g.pressure[i-sz:i-sz+n])
			}
		}
	})

	g.setVelocityBounds()
}

// DivergenceL1 sums the absolute divergence stored by the last
// projection's divergence pass. Diagnostic only; the scratch holds the
// divergence the projection started from.
func (g *Grid) DivergenceL1() float32 {
	if g.empty() {
		return 0
	}
	v := blas32.Vector{N: g.cells, Inc: 1, Data: g.divergence}
	return blas32.Asum(v)
}
