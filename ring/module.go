package ring

import (
	"fmt"
	"math/bits"

	"github.com/klauspost/cpuid/v2"
)

// Module is the immutable handle shared by every container and
// operation bound to one ring degree N (spec.md §3, "module handle").
// It owns the FFT64 twiddle table and the NTT120 per-prime tables for
// that N. A Module is safe for concurrent use by multiple goroutines
// that operate on disjoint outputs (spec.md §5): it is read-only after
// construction.
//
// Grounded on the teacher's Ring struct (ring/ring.go), which plays the
// identical role (owns NTT precomputation for one N) generalized here
// from "one RNS prime's NTT table" to "both the FFT64 and NTT120
// transform tables for one N".
type Module struct {
	logN int
	fft  *FFT64Table
	ntt  *NTT120Table
}

// NewModule constructs a Module for ring degree N = 2^logN. It panics
// if the runtime lacks the AVX2/FMA feature set the engine's SIMD paths
// require, per spec.md §6 ("feature detection at module construction
// panics with a descriptive message if absent"). Since this
// implementation's hot-path kernels are portable Go rather than hand
// written AVX2 assembly, the check is still performed and still fatal
// on an unsupported host: the engine's size/performance budget assumes
// the SIMD feature set is present even when the code path taken today
// is the scalar one spec.md §4.4 permits as a substitute.
func NewModule(logN int) *Module {
	if logN < 1 {
		panic(fmt.Errorf("ring: invalid logN=%d, must be >= 1", logN))
	}
	if !cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3) {
		panic(fmt.Errorf("ring: host CPU lacks required AVX2/FMA feature set (detected: %s)", cpuid.CPU.BrandName))
	}
	N := 1 << logN
	return &Module{
		logN: logN,
		fft:  NewFFT64Table(N),
		ntt:  NewNTT120Table(N),
	}
}

// N returns the ring degree.
func (m *Module) N() int {
	return 1 << m.logN
}

// LogN returns log2(N).
func (m *Module) LogN() int {
	return m.logN
}

// FFT64 returns the FFT64 transform table for this module.
func (m *Module) FFT64() *FFT64Table {
	return m.fft
}

// NTT120 returns the NTT120 transform table for this module.
func (m *Module) NTT120() *NTT120Table {
	return m.ntt
}

func mustPowerOfTwo(n int) {
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Errorf("ring: %d is not a power of two", n))
	}
}

func log2(n int) int {
	return bits.Len(uint(n)) - 1
}
