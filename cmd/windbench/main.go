// Package main sweeps the solver across grid resolutions with a
// standard two-source scene and reports per-step timing and block
// occupancy for each.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/windfield/spatial"
	"github.com/pthm-cable/windfield/volume"
	"github.com/pthm-cable/windfield/wind"
)

func main() {
	minRes := flag.Int("min-res", 32, "Smallest grid edge to benchmark")
	maxRes := flag.Int("max-res", 128, "Largest grid edge to benchmark")
	stride := flag.Int("stride", 16, "Grid edge increment between runs")
	steps := flag.Int("steps", 120, "Steps per resolution")
	warmup := flag.Int("warmup", 10, "Untimed steps before measuring")
	iterations := flag.Int("iterations", wind.DefaultIterations, "Projection iterations")
	flag.Parse()

	if *minRes < 16 || *maxRes < *minRes || *stride < 1 {
		log.Fatal("invalid resolution sweep parameters")
	}

	fmt.Printf("windbench: %d steps per run, %d projection iterations, SIMD tier %s\n\n",
		*steps, *iterations, wind.SIMDName())
	fmt.Printf("%8s %12s %12s %12s %10s\n", "res", "mean ms", "std ms", "steps/s", "occupancy")

	for res := *minRes; res <= *maxRes; res += *stride {
		mean, std, occupancy := benchResolution(res, *steps, *warmup, *iterations)
		stepsPerSec := 0.0
		if mean > 0 {
			stepsPerSec = 1000 / mean
		}
		fmt.Printf("%5d^3 %12.3f %12.3f %12.1f %9.1f%%\n",
			res, mean, std, stepsPerSec, occupancy*100)
	}
}

// benchResolution runs the standard scene at one resolution and
// returns mean/std step milliseconds and the final block occupancy.
func benchResolution(res, steps, warmup, iterations int) (mean, std, occupancy float64) {
	g := wind.New(res, res, res, 1)
	defer g.Close()

	// The standard scene scales with the grid: a radial burst in the
	// center and a directional box pushing across it.
	c := float32(res) / 2
	vols := []volume.Volume{
		volume.Radial(spatial.Vec3{X: c, Y: c, Z: c}, float32(res)/4, 120, 1),
		volume.Directional(
			spatial.Vec3{X: c / 2, Y: c, Z: c},
			spatial.Vec3{X: float32(res) / 8, Y: float32(res) / 8, Z: float32(res) / 8},
			spatial.Vec3{X: 1},
			150,
		),
	}

	const dt = 0.1
	for i := 0; i < warmup; i++ {
		g.ApplyForces(dt, vols)
		g.Step(dt, iterations)
	}

	samples := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		start := time.Now()
		g.ApplyForces(dt, vols)
		g.Step(dt, iterations)
		samples = append(samples, float64(time.Since(start))/float64(time.Millisecond))
	}

	mean = stat.Mean(samples, nil)
	std = stat.StdDev(samples, nil)
	occupancy = float64(g.ActiveBlockCount()) / float64(g.TotalBlockCount())
	return mean, std, occupancy
}
