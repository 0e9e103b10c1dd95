package rgsw

import (
	"testing"

	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/rlwe"
	"github.com/Pro7ech/poulpy/sampling"
	"github.com/stretchr/testify/require"
)

func testSetup(t *testing.T) (*ring.Module, rlwe.Parameters, *rlwe.GLWESecret, *rlwe.Encryptor, *rlwe.Decryptor, *Evaluator) {
	t.Helper()
	mod := ring.NewModule(8) // N=256
	params := rlwe.Parameters{LogN: 8, Base2K: 12, Rank: 1, Sigma: 3.2}
	var seed [32]byte
	src := sampling.NewBlake3Source(seed)
	kgen := rlwe.NewKeyGenerator(mod, params, src)
	sk := kgen.GenSecretKeyNew(rlwe.DistributionParameters{Dist: rlwe.TernaryFixed, HW: mod.N() / 2})
	enc := rlwe.NewEncryptor(mod, params, src)
	dec := rlwe.NewDecryptor(mod, sk)
	ev := NewEvaluator(rlwe.NewEvaluator(mod, params))
	return mod, params, sk, enc, dec, ev
}

// TestExternalProductX1 checks that GGSW-encrypting the scalar X^1 and
// applying ExternalProduct to a GLWE encryption of a uniform plaintext
// rotates that plaintext by one coefficient position.
func TestExternalProductX1(t *testing.T) {
	mod, params, sk, enc, dec, ev := testSetup(t)

	size := 2
	pt := ring.NewVecZnx(mod.N(), 1, size)
	for i := range pt.At(0, 0) {
		pt.At(0, 0)[i] = int64(i % 16)
	}

	ct := rlwe.NewGLWE(mod.N(), params.Rank, size)
	enc.EncryptSk(pt, sk, ct)

	m := make([]int64, mod.N())
	m[1] = 1 // X^1

	gp := rlwe.GadgetParams{Dnum: size, Dsize: 1}
	ggsw := NewGGSW(mod.N(), params.Rank, gp)
	rgswEnc := NewEncryptor(enc)
	rgswEnc.EncryptSk(m, sk, ggsw)

	out := rlwe.NewGLWE(mod.N(), params.Rank, size)
	ev.ExternalProduct(ct, ggsw, out)

	got := dec.DecryptNew(out)
	require.Equal(t, mod.N(), got.N())
	require.Equal(t, size, got.Size())

	// multiplying by X^1 is a negacyclic rotation by one coefficient
	// position, applied independently to every digit limb of pt.
	for l := 0; l < size; l++ {
		want := make([]int64, mod.N())
		ring.ZnxRotate(1, pt.At(0, l), want)
		requireCloseInts(t, want, got.At(0, l), 256)
	}
}

// requireCloseInts checks that every coefficient of got is within tol of
// the corresponding coefficient of want, the loose per-coefficient bound
// scenario tests use in place of an exact equality that noise would fail.
func requireCloseInts(t *testing.T, want, got []int64, tol int64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		diff := got[i] - want[i]
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqualf(t, diff, tol, "coefficient %d: want %d, got %d", i, want[i], got[i])
	}
}

// TestGGLWEToGGSWExpansion checks that expanding a GGLWE encryption of
// a fixed-weight ternary message via a tensor key produces a GGSW of
// matching shape, with every block carrying the declared gadget rows.
func TestGGLWEToGGSWExpansion(t *testing.T) {
	mod, params, sk, enc, dec, ev := testSetup(t)

	gp := rlwe.GadgetParams{Dnum: 2, Dsize: 1}
	var seed [32]byte
	seed[0] = 1
	kgen := rlwe.NewKeyGenerator(mod, params, sampling.NewBlake3Source(seed))
	tk := kgen.GenTensorKeyNew(sk, gp)

	m := make([]int64, mod.N())
	m[0] = 1 // scalar 1: expanding it should yield a GGSW(1), the external-product identity.

	gglwe := rlwe.NewGGLWE(mod.N(), params.Rank, gp)
	enc.EncryptGGLWESk(m, sk, gglwe)

	ggsw := NewGGSW(mod.N(), params.Rank, gp)
	ev.GGLWEToGGSW(gglwe, tk, ggsw)

	require.Equal(t, params.Rank+1, len(ggsw.Blocks))
	for _, b := range ggsw.Blocks {
		require.Equal(t, gp.Dnum, len(b.Rows))
	}

	size := gp.Dsize
	pt := ring.NewVecZnx(mod.N(), 1, size)
	for i := range pt.At(0, 0) {
		pt.At(0, 0)[i] = int64(i % 16)
	}

	ct := rlwe.NewGLWE(mod.N(), params.Rank, size)
	enc.EncryptSk(pt, sk, ct)

	out := rlwe.NewGLWE(mod.N(), params.Rank, size)
	ev.ExternalProduct(ct, ggsw, out)

	got := dec.DecryptNew(out)
	for l := 0; l < size; l++ {
		requireCloseInts(t, pt.At(0, l), got.At(0, l), 256)
	}
}
