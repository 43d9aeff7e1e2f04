package wind

import "github.com/klauspost/cpuid/v2"

// SIMDName reports the widest vector tier the host CPU offers to the
// row kernels. The hwy dispatch itself is opaque, so this reflects CPU
// capability rather than a per-call trace.
func SIMDName() string {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		return "AVX512"
	case cpuid.CPU.Supports(cpuid.AVX2):
		return "AVX2"
	case cpuid.CPU.Supports(cpuid.SSE4):
		return "SSE4"
	case cpuid.CPU.Supports(cpuid.ASIMD):
		return "NEON"
	default:
		return "Scalar"
	}
}

// SIMDName reports the solver's vector tier; see the package function.
func (g *Grid) SIMDName() string { return SIMDName() }
