package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDigitAndCarryReconstructs checks that digit+carry<<base2k always
// reconstructs the original value, the defining property of the
// base-2^k digit extraction every normalization step builds on.
func TestDigitAndCarryReconstructs(t *testing.T) {
	base2k := 12
	half := int64(1) << (base2k - 1)
	for _, x := range []int64{0, 1, -1, half, -half, half + 1, -half - 1, 1 << 20, -(1 << 20), 123456789, -123456789} {
		digit, carry := digitAndCarry(base2k, x)
		require.Equal(t, x, digit+carry<<uint(base2k))
		require.LessOrEqual(t, digit, half)
		require.Greater(t, digit, -half)
	}
}

// TestNormalizeChainSingleLimbUnreduced is a regression test: a
// single-limb coefficient is simultaneously the bottom and top limb of
// its chain, so it must be left as-is (no digit extraction, no carry
// silently dropped) rather than pushed through NormalizeFirstStepInPlace.
func TestNormalizeChainSingleLimbUnreduced(t *testing.T) {
	base2k := 12
	n := 8
	limb := make([]int64, n)
	for i := range limb {
		limb[i] = int64(1<<20) + int64(i) // well outside the (-half,half] digit range
	}
	want := make([]int64, n)
	copy(want, limb)

	carry := make([]int64, n)
	normalizeChain(base2k, [][]int64{limb}, carry)

	require.Equal(t, want, limb, "sole limb of a size==1 chain must be left unreduced")
}

// TestNormalizeChainTwoLimbsCanonicalDigit checks that for a two-limb
// chain the bottom limb always ends up a canonical digit in
// (-2^(base2k-1), 2^(base2k-1)], with the top limb absorbing the carry.
func TestNormalizeChainTwoLimbsCanonicalDigit(t *testing.T) {
	base2k := 12
	half := int64(1) << (base2k - 1)
	n := 8

	low := make([]int64, n)
	high := make([]int64, n)
	for i := range low {
		low[i] = int64(1<<15) + int64(i)*7 - 3
		high[i] = int64(i) - 4
	}
	wantTotal := make([]int64, n)
	for i := range wantTotal {
		wantTotal[i] = low[i] + high[i]<<uint(base2k)
	}

	carry := make([]int64, n)
	normalizeChain(base2k, [][]int64{low, high}, carry)

	for i := range low {
		require.LessOrEqual(t, low[i], half)
		require.Greater(t, low[i], -half)
		got := low[i] + high[i]<<uint(base2k)
		require.Equal(t, wantTotal[i], got)
	}
}

// TestNormalizeChainIdempotent checks that normalizing an already
// canonical chain a second time leaves it unchanged (spec.md §8
// invariant 3): the second pass sees an all-zero carry and re-extracts
// the same digit.
func TestNormalizeChainIdempotent(t *testing.T) {
	base2k := 12
	n := 8

	low := make([]int64, n)
	mid := make([]int64, n)
	high := make([]int64, n)
	for i := range low {
		low[i] = int64(1<<18) + int64(i)*13
		mid[i] = int64(i) - 2
		high[i] = int64(2 * i)
	}

	carry := make([]int64, n)
	normalizeChain(base2k, [][]int64{low, mid, high}, carry)

	low2 := append([]int64(nil), low...)
	mid2 := append([]int64(nil), mid...)
	high2 := append([]int64(nil), high...)

	carry2 := make([]int64, n)
	normalizeChain(base2k, [][]int64{low2, mid2, high2}, carry2)

	require.Equal(t, low, low2)
	require.Equal(t, mid, mid2)
	require.Equal(t, high, high2)
}

// TestVecZnxNormalizeRoundTrip checks that VecZnx.Normalize preserves
// the total multi-limb coefficient value while canonicalizing every
// limb but the top one.
func TestVecZnxNormalizeRoundTrip(t *testing.T) {
	base2k := 12
	half := int64(1) << (base2k - 1)
	n, cols, size := 8, 1, 3

	v := NewVecZnx(n, cols, size)
	for l := 0; l < size; l++ {
		limb := v.At(0, l)
		for i := range limb {
			limb[i] = int64(1<<16) + int64(i*l+1)
		}
	}

	want := make([]int64, n)
	for i := 0; i < n; i++ {
		total := int64(0)
		for l := size - 1; l >= 0; l-- {
			total = total<<uint(base2k) + v.At(0, l)[i]
		}
		want[i] = total
	}

	carry := make([]int64, n)
	v.Normalize(base2k, carry)

	for l := 0; l < size-1; l++ {
		limb := v.At(0, l)
		for i := range limb {
			require.LessOrEqual(t, limb[i], half)
			require.Greater(t, limb[i], -half)
		}
	}

	got := make([]int64, n)
	for i := 0; i < n; i++ {
		total := int64(0)
		for l := size - 1; l >= 0; l-- {
			total = total<<uint(base2k) + v.At(0, l)[i]
		}
		got[i] = total
	}
	require.Equal(t, want, got)
}
