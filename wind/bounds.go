package wind

// setVelocityBounds zeroes all three velocity components on the six
// outer faces: a no-slip wall.
func (g *Grid) setVelocityBounds() {
	w, h, d := g.width, g.height, g.depth
	sz := w * h

	for y := 0; y < h; y++ {
		row := w * y
		far := row + sz*(d-1)
		for x := 0; x < w; x++ {
			g.vx[row+x], g.vy[row+x], g.vz[row+x] = 0, 0, 0
			g.vx[far+x], g.vy[far+x], g.vz[far+x] = 0, 0, 0
		}
	}
	for z := 0; z < d; z++ {
		bottom := sz * z
		top := bottom + w*(h-1)
		for x := 0; x < w; x++ {
			g.vx[bottom+x], g.vy[bottom+x], g.vz[bottom+x] = 0, 0, 0
			g.vx[top+x], g.vy[top+x], g.vz[top+x] = 0, 0, 0
		}
	}
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			left := w*y + sz*z
			right := left + w - 1
			g.vx[left], g.vy[left], g.vz[left] = 0, 0, 0
			g.vx[right], g.vy[right], g.vz[right] = 0, 0, 0
		}
	}
}

// setScalarBounds mirrors a scalar field one cell inward on the six
// faces: the Neumann-like condition the pressure solve needs so the
// boundary does not leak gradient into the interior.
func (g *Grid) setScalarBounds(f []float32) {
	w, h, d := g.width, g.height, g.depth
	sz := w * h

	for y := 0; y < h; y++ {
		row := w * y
		for x := 0; x < w; x++ {
			f[row+x] = f[row+x+sz]
			f[row+x+sz*(d-1)] = f[row+x+sz*(d-2)]
		}
	}
	for z := 0; z < d; z++ {
		base := sz * z
		for x := 0; x < w; x++ {
			f[base+x] = f[base+x+w]
			f[base+x+w*(h-1)] = f[base+x+w*(h-2)]
		}
	}
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			left := w*y + sz*z
			f[left] = f[left+1]
			f[left+w-1] = f[left+w-2]
		}
	}
}
