package wind

import "testing"

func TestNewGrid(t *testing.T) {
	g := New(32, 32, 32, 1)
	defer g.Close()

	w, h, d := g.Dimensions()
	if w != 32 || h != 32 || d != 32 {
		t.Errorf("dimensions = %d,%d,%d, want 32,32,32", w, h, d)
	}
	if g.TotalBlockCount() != 8 {
		t.Errorf("total blocks = %d, want 8", g.TotalBlockCount())
	}
	if g.ActiveBlockCount() != 0 {
		t.Errorf("fresh grid active blocks = %d, want 0", g.ActiveBlockCount())
	}
	if g.VelocityDataSize() != 32*32*32*16 {
		t.Errorf("data size = %d, want %d", g.VelocityDataSize(), 32*32*32*16)
	}
}

func TestNewGridPartialBlocks(t *testing.T) {
	g := New(40, 17, 16, 0.5)
	defer g.Close()

	// 40 -> 3 blocks, 17 -> 2, 16 -> 1.
	if g.TotalBlockCount() != 3*2*1 {
		t.Errorf("total blocks = %d, want 6", g.TotalBlockCount())
	}
}

func TestNewGridInvalid(t *testing.T) {
	tests := []struct {
		name     string
		w, h, d  int
		cellSize float32
	}{
		{"zero width", 0, 32, 32, 1},
		{"negative depth", 32, 32, -4, 1},
		{"one cell axis", 32, 1, 32, 1},
		{"zero cell size", 32, 32, 32, 0},
		{"negative cell size", 32, 32, 32, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.w, tt.h, tt.d, tt.cellSize)

			// Everything must be a safe no-op on the empty grid.
			g.ApplyForces(0.1, nil)
			g.UpdateActiveBlocks(nil)
			g.Step(0.1, DefaultIterations)
			g.SetVelocity(0, 0, 0, 1, 1, 1)

			if g.TotalBlockCount() != 0 {
				t.Errorf("total blocks = %d, want 0", g.TotalBlockCount())
			}
			if g.ActiveBlockCount() != 0 {
				t.Errorf("active blocks = %d, want 0", g.ActiveBlockCount())
			}
			if data := g.VelocityData(); data != nil {
				t.Errorf("velocity data = %d cells, want nil", len(data))
			}
			if vx, vy, vz := g.Velocity(0, 0, 0); vx != 0 || vy != 0 || vz != 0 {
				t.Error("empty grid returned non-zero velocity")
			}
			g.Close()
		})
	}
}

func TestVelocityDataLayout(t *testing.T) {
	g := New(4, 4, 4, 1)
	defer g.Close()

	// idx(x,y,z) = x + W*(y + H*z), x fastest.
	g.SetVelocity(1, 2, 3, 10, 20, 30)
	data := g.VelocityData()

	if len(data) != 64 {
		t.Fatalf("data length = %d, want 64", len(data))
	}
	cell := data[1+4*(2+4*3)]
	if cell.X != 10 || cell.Y != 20 || cell.Z != 30 || cell.W != 0 {
		t.Errorf("cell = %+v, want {10 20 30 0}", cell)
	}

	for i, c := range data {
		if c.W != 0 {
			t.Fatalf("cell %d has W = %v, want 0", i, c.W)
		}
	}
}

func TestVelocityDataSnapshots(t *testing.T) {
	g := New(4, 4, 4, 1)
	defer g.Close()

	g.SetVelocity(0, 0, 0, 1, 0, 0)
	first := g.VelocityData()
	if first[0].X != 1 {
		t.Fatalf("snapshot missed write: %+v", first[0])
	}

	g.SetVelocity(0, 0, 0, 2, 0, 0)
	second := g.VelocityData()
	if second[0].X != 2 {
		t.Errorf("snapshot not refreshed: %+v", second[0])
	}
}

func TestSIMDName(t *testing.T) {
	g := New(4, 4, 4, 1)
	defer g.Close()

	name := g.SIMDName()
	switch name {
	case "AVX512", "AVX2", "SSE4", "NEON", "Scalar":
	default:
		t.Errorf("SIMDName() = %q, not a known tier", name)
	}
}
