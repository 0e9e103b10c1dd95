package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFFT64RoundTrip checks that Inverse(Forward(x)) recovers x within
// a small floating-point tolerance, for several ring degrees and input
// patterns (spec.md §4.4, "not an exact-equality contract; see §8").
func TestFFT64RoundTrip(t *testing.T) {
	for _, N := range []int{8, 16, 64, 256} {
		table := NewFFT64Table(N)
		x := make([]float64, N)
		for i := range x {
			x[i] = float64(i%11) - 5
		}

		re := make([]float64, table.M)
		im := make([]float64, table.M)
		table.Forward(x, re, im)

		got := make([]float64, N)
		table.Inverse(re, im, got)

		for i := range x {
			require.InDeltaf(t, x[i], got[i], 1e-6, "N=%d i=%d", N, i)
		}
	}
}

// TestFFT64Linearity checks that the forward transform is linear:
// Forward(a+b) == Forward(a) + Forward(b) pointwise.
func TestFFT64Linearity(t *testing.T) {
	N := 64
	table := NewFFT64Table(N)

	a := make([]float64, N)
	b := make([]float64, N)
	for i := range a {
		a[i] = float64(i)
		b[i] = float64(2*i - 7)
	}
	sum := make([]float64, N)
	for i := range sum {
		sum[i] = a[i] + b[i]
	}

	reA, imA := make([]float64, N/2), make([]float64, N/2)
	reB, imB := make([]float64, N/2), make([]float64, N/2)
	reSum, imSum := make([]float64, N/2), make([]float64, N/2)
	table.Forward(a, reA, imA)
	table.Forward(b, reB, imB)
	table.Forward(sum, reSum, imSum)

	for i := 0; i < N/2; i++ {
		require.InDelta(t, reA[i]+reB[i], reSum[i], 1e-9)
		require.InDelta(t, imA[i]+imB[i], imSum[i], 1e-9)
	}
}

// TestFFT64ZeroIsZero checks that transforming the zero vector yields
// all-zero planes.
func TestFFT64ZeroIsZero(t *testing.T) {
	N := 32
	table := NewFFT64Table(N)
	x := make([]float64, N)
	re := make([]float64, N/2)
	im := make([]float64, N/2)
	table.Forward(x, re, im)
	for i := range re {
		require.Equal(t, 0.0, re[i])
		require.Equal(t, 0.0, im[i])
	}
}
