// Package wind implements the sparse, block-scheduled wind-field
// solver: SoA velocity state over a uniform grid, active-block
// selection against source volumes, force application, semi-Lagrangian
// self-advection and pressure projection.
package wind

import "github.com/pthm-cable/windfield/spatial"

// BlockSize is the cube edge of a scheduling block, in cells.
const BlockSize = 16

// DefaultIterations is the default projection iteration count.
const DefaultIterations = 8

// Vec4 is the 16-byte AoS cell record exposed to external readers:
// velocity in X,Y,Z with W zero. Renderers map the snapshot buffer
// directly, so the field order and size are part of the contract.
type Vec4 struct {
	X, Y, Z, W float32
}

// Phase names reported through PhaseTimer, one per solver sweep.
const (
	PhaseActiveBlocks = "active_blocks"
	PhaseForces       = "forces"
	PhaseAdvect       = "advect"
	PhaseProject      = "project"
	PhaseBoundary     = "boundary"
	PhaseReadout      = "readout"
)

// PhaseTimer receives the name of each solver sweep as it begins.
// telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(name string)
}

// Grid owns the solver state. Dimensions, cell size and block layout
// are fixed at construction; a Grid is single-owner and must not be
// stepped concurrently.
type Grid struct {
	width, height, depth int
	cells                int
	cellSize             float32

	blocksX, blocksY, blocksZ int
	blockCount                int
	active                    []uint8
	seeds                     []uint8

	vx, vy, vz             []float32
	vxPrev, vyPrev, vzPrev []float32
	pressure               []float32
	divergence             []float32

	aos []Vec4

	tree       spatial.Tree
	volBoxes   []spatial.AABB
	rotScratch []spatial.Vec3
	pool       *blockPool
	perf       PhaseTimer
}

// New creates a zeroed grid of w×h×d cells with the given cell size.
// Dimensions below 2 or a non-positive cell size yield an empty grid
// on which every operation is a no-op.
func New(w, h, d int, cellSize float32) *Grid {
	if w < 2 || h < 2 || d < 2 || cellSize <= 0 {
		return &Grid{}
	}

	g := &Grid{
		width:    w,
		height:   h,
		depth:    d,
		cells:    w * h * d,
		cellSize: cellSize,
		blocksX:  (w + BlockSize - 1) / BlockSize,
		blocksY:  (h + BlockSize - 1) / BlockSize,
		blocksZ:  (d + BlockSize - 1) / BlockSize,
	}
	g.blockCount = g.blocksX * g.blocksY * g.blocksZ
	g.active = make([]uint8, g.blockCount)
	g.seeds = make([]uint8, g.blockCount)

	g.vx = make([]float32, g.cells)
	g.vy = make([]float32, g.cells)
	g.vz = make([]float32, g.cells)
	g.vxPrev = make([]float32, g.cells)
	g.vyPrev = make([]float32, g.cells)
	g.vzPrev = make([]float32, g.cells)
	g.pressure = make([]float32, g.cells)
	g.divergence = make([]float32, g.cells)
	g.aos = make([]Vec4, g.cells)

	g.pool = newBlockPool()
	return g
}

// empty reports whether the grid was constructed from invalid
// parameters and all operations should no-op.
func (g *Grid) empty() bool { return g.cells == 0 }

// idx linearizes a cell coordinate, x fastest then y then z.
func (g *Grid) idx(x, y, z int) int {
	return x + g.width*(y+g.height*z)
}

// Dimensions returns the grid extents in cells.
func (g *Grid) Dimensions() (w, h, d int) {
	return g.width, g.height, g.depth
}

// CellSize returns the world-space edge length of a cell.
func (g *Grid) CellSize() float32 { return g.cellSize }

// SetPhaseTimer installs an optional per-sweep timing hook.
func (g *Grid) SetPhaseTimer(pt PhaseTimer) { g.perf = pt }

func (g *Grid) phase(name string) {
	if g.perf != nil {
		g.perf.StartPhase(name)
	}
}

// VelocityData materializes and returns the AoS snapshot of the
// velocity field, x fastest then y then z, one Vec4 per cell with W
// zero. The returned slice aliases an internal cache that is rewritten
// on every call; it must not be read while a step is running.
func (g *Grid) VelocityData() []Vec4 {
	if g.empty() {
		return nil
	}
	g.phase(PhaseReadout)
	for i := 0; i < g.cells; i++ {
		g.aos[i] = Vec4{X: g.vx[i], Y: g.vy[i], Z: g.vz[i]}
	}
	return g.aos
}

// VelocityDataSize returns the byte size of the AoS snapshot.
func (g *Grid) VelocityDataSize() int {
	return g.cells * 16
}

// ActiveBlockCount returns the number of blocks selected for
// processing by the last active-block update.
func (g *Grid) ActiveBlockCount() int {
	n := 0
	for _, a := range g.active {
		if a != 0 {
			n++
		}
	}
	return n
}

// TotalBlockCount returns the total number of scheduling blocks.
func (g *Grid) TotalBlockCount() int { return g.blockCount }

// Velocity returns the velocity vector stored at cell (x,y,z).
func (g *Grid) Velocity(x, y, z int) (vx, vy, vz float32) {
	if g.empty() {
		return 0, 0, 0
	}
	i := g.idx(x, y, z)
	return g.vx[i], g.vy[i], g.vz[i]
}

// SetVelocity writes the velocity vector at cell (x,y,z). Intended for
// seeding fields in tests and tools; the solver itself writes through
// its sweeps.
func (g *Grid) SetVelocity(x, y, z int, vx, vy, vz float32) {
	if g.empty() {
		return
	}
	i := g.idx(x, y, z)
	g.vx[i] = vx
	g.vy[i] = vy
	g.vz[i] = vz
}

// blockCoords decomposes a flat block index.
func (g *Grid) blockCoords(bi int) (bx, by, bz int) {
	bx = bi % g.blocksX
	by = (bi / g.blocksX) % g.blocksY
	bz = bi / (g.blocksX * g.blocksY)
	return
}

// blockCells returns the cell range covered by block (bx,by,bz),
// clipped to the grid extents.
func (g *Grid) blockCells(bx, by, bz int) (x0, x1, y0, y1, z0, z1 int) {
	x0 = bx * BlockSize
	x1 = min(x0+BlockSize, g.width)
	y0 = by * BlockSize
	y1 = min(y0+BlockSize, g.height)
	z0 = bz * BlockSize
	z1 = min(z0+BlockSize, g.depth)
	return
}

// interiorRange clips a block's cell range to the simulation interior
// [1, dim-1) on each axis.
func (g *Grid) interiorRange(bx, by, bz int) (x0, x1, y0, y1, z0, z1 int) {
	x0, x1, y0, y1, z0, z1 = g.blockCells(bx, by, bz)
	x0 = max(1, x0)
	x1 = min(x1, g.width-1)
	y0 = max(1, y0)
	y1 = min(y1, g.height-1)
	z0 = max(1, z0)
	z1 = min(z1, g.depth-1)
	return
}

// Close stops the worker pool. The grid remains readable afterwards
// but must not be stepped again.
func (g *Grid) Close() {
	if g.pool != nil {
		g.pool.stop()
	}
}
