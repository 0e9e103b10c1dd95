package ring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNTT120RoundTrip checks that Inverse(Forward(x)) recovers x
// exactly modulo each of the four primes, for every prime index
// (spec.md §4.5: exact per-prime arithmetic, unlike FFT64's float
// approximation).
func TestNTT120RoundTrip(t *testing.T) {
	N := 64
	table := NewNTT120Table(N)

	for pi := 0; pi < NTT120NumPrimes; pi++ {
		q := table.Primes[pi]
		x := make([]uint64, N)
		for i := range x {
			x[i] = uint64(i*7+3) % q
		}
		want := make([]uint64, N)
		copy(want, x)

		table.Forward(pi, x)
		table.Inverse(pi, x)

		require.Equal(t, want, x, "prime index %d (q=%d)", pi, q)
	}
}

// TestNTT120PrimesAreDistinctAndNTTFriendly checks the invariant every
// prime in the table must satisfy: distinct, and congruent to 1 mod 2N
// so a primitive 2N-th root of unity exists.
func TestNTT120PrimesAreDistinctAndNTTFriendly(t *testing.T) {
	N := 64
	table := NewNTT120Table(N)
	twoN := uint64(2 * N)

	seen := make(map[uint64]bool)
	for _, q := range table.Primes {
		require.False(t, seen[q], "duplicate prime %d", q)
		seen[q] = true
		require.Zero(t, (q-1)%twoN)
		require.True(t, big.NewInt(0).SetUint64(q).ProbablyPrime(20))
	}
}

// TestCRTReconstructDecomposeRoundTrip checks that decomposing a signed
// value into its four prime residues and reconstructing it via CRT
// recovers the original value, for values well within the combined
// modulus (spec.md §4.5, "signed centering").
func TestCRTReconstructDecomposeRoundTrip(t *testing.T) {
	N := 64
	table := NewNTT120Table(N)

	for _, v := range []int64{0, 1, -1, 12345, -12345, 1 << 40, -(1 << 40)} {
		residues := table.CRTDecompose(big.NewInt(v))
		got := table.CRTReconstruct(residues)
		require.Equal(t, v, got.Int64())
	}
}
