package wind

import (
	"math"

	"github.com/pthm-cable/windfield/spatial"
	"github.com/pthm-cable/windfield/volume"
)

// radialCenterEps guards the 1/dist at a radial volume's center; cells
// closer than this receive no radial push.
const radialCenterEps = 1e-5

// ApplyForces refreshes the active-block bitmap from volumes and adds
// each volume's per-cell force contribution into the velocity field,
// scaled by dt. An empty volume list still refreshes the bitmap, which
// keeps persistence-driven blocks alive between source edits.
//
// The kernel is commutative over volumes and reads them only; callers
// must not mutate the slice until the call returns.
func (g *Grid) ApplyForces(dt float32, volumes []volume.Volume) {
	if g.empty() {
		return
	}

	g.phase(PhaseActiveBlocks)
	g.UpdateActiveBlocks(volumes)
	if len(volumes) == 0 {
		return
	}

	g.phase(PhaseForces)

	// The rotated direction is constant per volume, so hoist it out of
	// the cell loop along with the strength scale.
	g.rotScratch = g.rotScratch[:0]
	for _, v := range volumes {
		var r spatial.Vec3
		if v.Kind == volume.KindDirectional {
			r = v.RotatedDirection().Scale(v.Strength)
		}
		g.rotScratch = append(g.rotScratch, r)
	}
	rotated := g.rotScratch

	g.forActiveBlocks(func(bi int) {
		bx, by, bz := g.blockCoords(bi)
		x0, x1, y0, y1, z0, z1 := g.blockCells(bx, by, bz)

		for z := z0; z < z1; z++ {
			worldZ := float32(z) * g.cellSize
			for y := y0; y < y1; y++ {
				worldY := float32(y) * g.cellSize
				base := g.idx(0, y, z)

				for x := x0; x < x1; x++ {
					worldX := float32(x) * g.cellSize
					var fx, fy, fz float32

					for vi := range volumes {
						v := &volumes[vi]
						switch v.Kind {
						case volume.KindDirectional:
							dx := absf(worldX - v.Position.X)
							dy := absf(worldY - v.Position.Y)
							dz := absf(worldZ - v.Position.Z)
							if dx <= v.Extents.X && dy <= v.Extents.Y && dz <= v.Extents.Z {
								fx += rotated[vi].X
								fy += rotated[vi].Y
								fz += rotated[vi].Z
							}

						case volume.KindRadial:
							rx := worldX - v.Position.X
							ry := worldY - v.Position.Y
							rz := worldZ - v.Position.Z
							d2 := rx*rx + ry*ry + rz*rz
							radius := v.Extents.X
							if d2 < radius*radius {
								dist := float32(math.Sqrt(float64(d2)))
								invDist := float32(0)
								if dist > radialCenterEps {
									invDist = 1 / dist
								}
								falloff := 1 - dist/radius
								s := v.Strength * falloff * invDist
								fx += rx * s
								fy += ry * s
								fz += rz * s
							}
						}
					}

					idx := base + x
					g.vx[idx] += fx * dt
					g.vy[idx] += fy * dt
					g.vz[idx] += fz * dt
				}
			}
		}
	})
}
