package wind

import (
	"github.com/pthm-cable/windfield/spatial"
	"github.com/pthm-cable/windfield/volume"
)

// persistThresholdSq is the squared speed below which lingering
// velocity no longer keeps a block active (0.05 speed, squared).
// Suppresses invisible residual wind from pinning blocks forever.
const persistThresholdSq = 0.0025

// UpdateActiveBlocks rebuilds the active-block bitmap from the given
// source volumes and the current velocity field. A block becomes a
// seed when its world box overlaps any volume, or when any of its
// cells still carries speed above the persistence threshold; the final
// bitmap dilates seeds by one block in all 26 directions so wind can
// leave a seeded block within one step.
func (g *Grid) UpdateActiveBlocks(volumes []volume.Volume) {
	if g.empty() {
		return
	}

	g.volBoxes = g.volBoxes[:0]
	for _, v := range volumes {
		g.volBoxes = append(g.volBoxes, v.Bounds())
	}
	g.tree.Build(g.volBoxes)

	haveVolumes := len(g.volBoxes) > 0
	blockExtent := float32(BlockSize) * g.cellSize

	// Seed pass: source overlap first, then velocity persistence.
	g.forBlocks(func(bi int) {
		bx, by, bz := g.blockCoords(bi)

		if haveVolumes {
			blockBox := spatial.AABB{
				Min: spatial.Vec3{
					X: float32(bx) * blockExtent,
					Y: float32(by) * blockExtent,
					Z: float32(bz) * blockExtent,
				},
			}
			blockBox.Max = blockBox.Min.Add(spatial.Vec3{X: blockExtent, Y: blockExtent, Z: blockExtent})

			if g.tree.QueryOverlap(blockBox) {
				g.seeds[bi] = 1
				return
			}
		}

		if g.blockHasVelocity(bx, by, bz) {
			g.seeds[bi] = 1
		} else {
			g.seeds[bi] = 0
		}
	})

	// Dilation pass: a block is active iff it or any 26-neighbor seeded.
	g.forBlocks(func(bi int) {
		if g.seeds[bi] != 0 {
			g.active[bi] = 1
			return
		}

		bx, by, bz := g.blockCoords(bi)
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 && dz == 0 {
						continue
					}
					nbx, nby, nbz := bx+dx, by+dy, bz+dz
					if nbx < 0 || nbx >= g.blocksX ||
						nby < 0 || nby >= g.blocksY ||
						nbz < 0 || nbz >= g.blocksZ {
						continue
					}
					if g.seeds[nbx+g.blocksX*(nby+g.blocksY*nbz)] != 0 {
						g.active[bi] = 1
						return
					}
				}
			}
		}
		g.active[bi] = 0
	})
}

// blockHasVelocity scans the block's cells (clipped to the grid) for
// any squared speed above the persistence threshold, one SoA row at a
// time through the SIMD kernel.
func (g *Grid) blockHasVelocity(bx, by, bz int) bool {
	x0, x1, y0, y1, z0, z1 := g.blockCells(bx, by, bz)
	n := x1 - x0
	if n <= 0 {
		return false
	}

	for z := z0; z < z1; z++ {
		for y := y0; y < y1; y++ {
			i := g.idx(x0, y, z)
			maxSq := BaseMaxMagSqRow(g.vx[i:i+n], g.vy[i:i+n], g.vz[i:i+n])
			if maxSq > persistThresholdSq {
				return true
			}
		}
	}
	return false
}

// MaxSpeedSq returns the maximum squared velocity magnitude over the
// whole grid. Diagnostic; scans row by row through the SIMD kernel.
func (g *Grid) MaxSpeedSq() float32 {
	if g.empty() {
		return 0
	}
	var maxSq float32
	for rowStart := 0; rowStart < g.cells; rowStart += g.width {
		rowEnd := rowStart + g.width
		sq := BaseMaxMagSqRow(g.vx[rowStart:rowEnd], g.vy[rowStart:rowEnd], g.vz[rowStart:rowEnd])
		if sq > maxSq {
			maxSq = sq
		}
	}
	return maxSq
}
