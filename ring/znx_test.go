package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZnxAddSubNegate(t *testing.T) {
	n := 16
	a := make([]int64, n)
	b := make([]int64, n)
	for i := range a {
		a[i] = int64(i)
		b[i] = int64(2 * i)
	}

	sum := make([]int64, n)
	ZnxAdd(a, b, sum)
	for i := range sum {
		require.Equal(t, a[i]+b[i], sum[i])
	}

	diff := make([]int64, n)
	ZnxSub(a, b, diff)
	for i := range diff {
		require.Equal(t, a[i]-b[i], diff[i])
	}

	neg := make([]int64, n)
	ZnxNegate(a, neg)
	for i := range neg {
		require.Equal(t, -a[i], neg[i])
	}
}

// TestZnxRotateIdentity checks that rotating by a multiple of 2N is the
// identity.
func TestZnxRotateIdentity(t *testing.T) {
	n := 16
	in := make([]int64, n)
	for i := range in {
		in[i] = int64(i + 1)
	}
	out := make([]int64, n)
	ZnxRotate(2*n, in, out)
	require.Equal(t, in, out)
	ZnxRotate(0, in, out)
	require.Equal(t, in, out)
}

// TestZnxRotateComposition checks that rotating by p1 then by p2 equals
// rotating by p1+p2 directly, the additive group law of X^p rotation.
func TestZnxRotateComposition(t *testing.T) {
	n := 16
	in := make([]int64, n)
	for i := range in {
		in[i] = int64(i + 1)
	}

	for _, p1 := range []int{0, 1, 3, 15, 16, 20, 31} {
		for _, p2 := range []int{0, 1, 5, 17, 30} {
			step1 := make([]int64, n)
			ZnxRotate(p1, in, step1)
			step2 := make([]int64, n)
			ZnxRotate(p2, step1, step2)

			direct := make([]int64, n)
			ZnxRotate(p1+p2, in, direct)

			require.Equalf(t, direct, step2, "p1=%d p2=%d", p1, p2)
		}
	}
}

// TestZnxRotateNegationAfterN checks the documented negacyclic wrap: X^N
// = -1, so rotating by N negates every coefficient.
func TestZnxRotateNegationAfterN(t *testing.T) {
	n := 16
	in := make([]int64, n)
	for i := range in {
		in[i] = int64(i + 1)
	}
	out := make([]int64, n)
	ZnxRotate(n, in, out)
	for i := range out {
		require.Equal(t, -in[i], out[i])
	}
}

// TestZnxAutomorphismIdentity checks that the k=1 automorphism is the
// identity map.
func TestZnxAutomorphismIdentity(t *testing.T) {
	n := 16
	in := make([]int64, n)
	for i := range in {
		in[i] = int64(i + 1)
	}
	out := make([]int64, n)
	ZnxAutomorphism(1, in, out)
	require.Equal(t, in, out)
}

// TestZnxAutomorphismComposition checks that applying X->X^k1 then
// X->X^k2 equals the single automorphism X->X^(k1*k2 mod 2N), the
// multiplicative group law Galois automorphisms satisfy.
func TestZnxAutomorphismComposition(t *testing.T) {
	n := 16
	twoN := 2 * n
	in := make([]int64, n)
	for i := range in {
		in[i] = int64(i + 1)
	}

	for _, k1 := range []int{1, 3, 5, 7, -1, 9} {
		for _, k2 := range []int{1, 3, -1, 11, 15} {
			step1 := make([]int64, n)
			ZnxAutomorphism(k1, in, step1)
			step2 := make([]int64, n)
			ZnxAutomorphism(k2, step1, step2)

			kk := (((k1 * k2) % twoN) + twoN) % twoN
			direct := make([]int64, n)
			ZnxAutomorphism(kk, in, direct)

			require.Equalf(t, direct, step2, "k1=%d k2=%d", k1, k2)
		}
	}
}

// TestZnxAutomorphismNegationInverse checks that X->X^-1 applied twice
// returns the original vector, since -1*-1 = 1 mod 2N.
func TestZnxAutomorphismNegationInverse(t *testing.T) {
	n := 16
	in := make([]int64, n)
	for i := range in {
		in[i] = int64(i + 1)
	}
	once := make([]int64, n)
	ZnxAutomorphism(-1, in, once)
	twice := make([]int64, n)
	ZnxAutomorphism(-1, once, twice)
	require.Equal(t, in, twice)
}
