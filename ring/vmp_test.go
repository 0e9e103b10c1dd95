package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVmpApplyMatchesMulPoly checks that a degenerate 1x1x1x1 VmpPMat
// reproduces Module.MulPoly's negacyclic product to within one unit
// per coefficient: VMP's
// transformed-domain accumulation is the same pointwise-complex-product
// construction MulPoly uses directly.
func TestVmpApplyMatchesMulPoly(t *testing.T) {
	mod := NewModule(6) // N=64
	n := mod.N()
	fft := mod.FFT64()

	a := make([]int64, n)
	b := make([]int64, n)
	for i := range a {
		a[i] = int64(i%9) - 4
		b[i] = int64(i%5) - 2
	}

	want := mod.MulPoly(a, b)

	mat := NewMatZnx(n, 1, 1, 1, 1)
	copy(mat.At(0, 0, 0, 0), b)
	pmat := NewVmpPMat(n, 1, 1, 1, 1)
	pmat.VmpPrepare(fft, mat)

	av := NewVecZnx(n, 1, 1)
	copy(av.At(0, 0), a)
	aDft := NewVecZnxDft(n, 1, 1)
	aDft.DFT(fft, av)

	res := NewVecZnxDft(n, 1, 1)
	VmpApplyDftToDft(res, aDft, pmat)

	big := NewVecZnxBig(n, 1, 1)
	res.IDFT(fft, big)

	for i := range want {
		require.InDelta(t, float64(want[i]), float64(big.At(0, 0)[i]), 1.0)
	}
}

// TestVmpApplyDftToDftAddAccumulates checks that VmpApplyDftToDftAdd
// called twice into the same res accumulates, unlike
// VmpApplyDftToDft which zeroes first.
func TestVmpApplyDftToDftAddAccumulates(t *testing.T) {
	mod := NewModule(6)
	n := mod.N()
	fft := mod.FFT64()

	a := make([]int64, n)
	b := make([]int64, n)
	a[0] = 1
	b[0] = 3

	mat := NewMatZnx(n, 1, 1, 1, 1)
	copy(mat.At(0, 0, 0, 0), b)
	pmat := NewVmpPMat(n, 1, 1, 1, 1)
	pmat.VmpPrepare(fft, mat)

	av := NewVecZnx(n, 1, 1)
	copy(av.At(0, 0), a)
	aDft := NewVecZnxDft(n, 1, 1)
	aDft.DFT(fft, av)

	res := NewVecZnxDft(n, 1, 1)
	res.Zero()
	VmpApplyDftToDftAdd(res, aDft, pmat, 1)
	VmpApplyDftToDftAdd(res, aDft, pmat, 1)

	big := NewVecZnxBig(n, 1, 1)
	res.IDFT(fft, big)

	require.InDelta(t, 6.0, float64(big.At(0, 0)[0]), 1.0)
}

// TestGadgetPMatRowsOccupyDisjointOffsets checks NewGadgetPMat's core
// invariant: row i's data lands only at output limbs
// [i*dsize, i*dsize+dsize) and is zero everywhere else, so that
// VmpApplyDftToDft's shared-output-limb row sum reproduces per-digit
// offset accumulation rather than overlapping contributions.
func TestGadgetPMatRowsOccupyDisjointOffsets(t *testing.T) {
	mod := NewModule(6)
	n := mod.N()
	fft := mod.FFT64()

	dnum, dsize, outSize := 3, 2, 6
	rows := make([][]int64, dnum)
	for i := range rows {
		rows[i] = make([]int64, n)
		rows[i][0] = int64(i + 1)
	}

	pmat := NewGadgetPMat(fft, n, dnum, dsize, 1, outSize, func(i, c, l int) []int64 {
		return rows[i]
	})

	// Feed a[i] = delta function (digit i = 1, rest 0), so
	// VmpApplyDftToDft(res, a, pmat) isolates row i's contribution to
	// res, which must sit entirely within [i*dsize, i*dsize+dsize).
	for i := 0; i < dnum; i++ {
		a := NewVecZnx(n, 1, dnum)
		a.At(0, i)[0] = 1
		aDft := NewVecZnxDft(n, 1, dnum)
		aDft.DFT(fft, a)

		res := NewVecZnxDft(n, 1, outSize)
		VmpApplyDftToDft(res, aDft, pmat)

		big := NewVecZnxBig(n, 1, outSize)
		res.IDFT(fft, big)

		for k := 0; k < outSize; k++ {
			got := big.At(0, k)[0]
			if k >= i*dsize && k < i*dsize+dsize {
				require.InDeltaf(t, float64(rows[i][0]), float64(got), 1.0, "row %d limb %d in-range", i, k)
			} else {
				require.InDeltaf(t, 0.0, float64(got), 1.0, "row %d limb %d out-of-range", i, k)
			}
		}
	}
}
