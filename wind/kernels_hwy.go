package wind

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Row kernels for the solver's SoA sweeps. Rows are contiguous in x,
// so each sweep hands the kernels offset subslices of the underlying
// fields (idx±1 for x neighbors, idx±W and idx±W·H for y and z).

// BaseMaxMagSqRow returns the maximum of vx²+vy²+vz² across a row of
// SoA vector components. Used by the velocity-persistence test and the
// max-speed diagnostic.
func BaseMaxMagSqRow[T hwy.Floats](vx, vy, vz []T) T {
	size := min(len(vx), len(vy), len(vz))

	vMax := hwy.Set(T(0))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			x := hwy.Load(vx[offset:])
			y := hwy.Load(vy[offset:])
			z := hwy.Load(vz[offset:])

			magSq := hwy.Add(
				hwy.Mul(x, x),
				hwy.Add(hwy.Mul(y, y), hwy.Mul(z, z)),
			)
			vMax = hwy.Max(vMax, magSq)
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			x := hwy.MaskLoad(mask, vx[offset:])
			y := hwy.MaskLoad(mask, vy[offset:])
			z := hwy.MaskLoad(mask, vz[offset:])

			// Masked-off lanes load zero; their squared magnitude is
			// zero and cannot win the max.
			magSq := hwy.Add(
				hwy.Mul(x, x),
				hwy.Add(hwy.Mul(y, y), hwy.Mul(z, z)),
			)
			vMax = hwy.Max(vMax, magSq)
		},
	)

	return hwy.ReduceMax(vMax)
}

// BaseDivergencePressureRow writes the central-difference divergence
// of a row and zeroes the matching pressure row:
// div[i] = -0.5·((xp[i]-xm[i]) + (yp[i]-ym[i]) + (zp[i]-zm[i])).
func BaseDivergencePressureRow[T hwy.Floats](xp, xm, yp, ym, zp, zm, div, prs []T) {
	size := min(len(xp), len(xm), len(yp), len(ym), len(zp), len(zm), len(div), len(prs))

	negHalf := hwy.Set(T(-0.5))
	zero := hwy.Set(T(0))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			d := hwy.Add(
				hwy.Sub(hwy.Load(xp[offset:]), hwy.Load(xm[offset:])),
				hwy.Add(
					hwy.Sub(hwy.Load(yp[offset:]), hwy.Load(ym[offset:])),
					hwy.Sub(hwy.Load(zp[offset:]), hwy.Load(zm[offset:])),
				),
			)
			hwy.Store(hwy.Mul(d, negHalf), div[offset:])
			hwy.Store(zero, prs[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			d := hwy.Add(
				hwy.Sub(hwy.MaskLoad(mask, xp[offset:]), hwy.MaskLoad(mask, xm[offset:])),
				hwy.Add(
					hwy.Sub(hwy.MaskLoad(mask, yp[offset:]), hwy.MaskLoad(mask, ym[offset:])),
					hwy.Sub(hwy.MaskLoad(mask, zp[offset:]), hwy.MaskLoad(mask, zm[offset:])),
				),
			)
			hwy.MaskStore(mask, hwy.Mul(d, negHalf), div[offset:])
			hwy.MaskStore(mask, zero, prs[offset:])
		},
	)
}

// BaseGradientSubRow subtracts half the central pressure difference
// from a velocity row: dst[i] -= 0.5·(pp[i]-pm[i]).
func BaseGradientSubRow[T hwy.Floats](dst, pp, pm []T) {
	size := min(len(dst), len(pp), len(pm))

	half := hwy.Set(T(0.5))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			grad := hwy.Mul(hwy.Sub(hwy.Load(pp[offset:]), hwy.Load(pm[offset:])), half)
			hwy.Store(hwy.Sub(hwy.Load(dst[offset:]), grad), dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			grad := hwy.Mul(hwy.Sub(hwy.MaskLoad(mask, pp[offset:]), hwy.MaskLoad(mask, pm[offset:])), half)
			hwy.MaskStore(mask, hwy.Sub(hwy.MaskLoad(mask, dst[offset:]), grad), dst[offset:])
		},
	)
}
