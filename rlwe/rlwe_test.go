package rlwe

import (
	"testing"

	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/sampling"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

func testSetup(t *testing.T, seedByte byte) (*ring.Module, Parameters, *GLWESecret, *Encryptor, *Decryptor, *KeyGenerator) {
	t.Helper()
	mod := ring.NewModule(8) // N=256
	params := Parameters{LogN: 8, Base2K: 12, Rank: 1, Sigma: 3.2}
	var seed [32]byte
	seed[0] = seedByte
	src := sampling.NewBlake3Source(seed)
	kgen := NewKeyGenerator(mod, params, src)
	sk := kgen.GenSecretKeyNew(DistributionParameters{Dist: TernaryFixed, HW: mod.N() / 2})
	enc := NewEncryptor(mod, params, src)
	dec := NewDecryptor(mod, sk)
	return mod, params, sk, enc, dec, kgen
}

// TestEncryptDecryptRoundTrip checks that EncryptSk/Decrypt recovers a
// plaintext up to additive noise whose standard deviation tracks
// params.Sigma, across many fresh samples of a fixed plaintext.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	mod, params, sk, enc, dec, _ := testSetup(t, 0)

	size := 2
	pt := ring.NewVecZnx(mod.N(), 1, size)
	for i := range pt.At(0, 0) {
		pt.At(0, 0)[i] = int64(i)
	}

	trials := 64
	errs := make([]float64, 0, trials*mod.N())
	for trial := 0; trial < trials; trial++ {
		ct := NewGLWE(mod.N(), params.Rank, size)
		enc.EncryptSk(pt, sk, ct)
		got := dec.DecryptNew(ct)
		for i, want := range pt.At(0, 0) {
			errs = append(errs, float64(got.At(0, 0)[i]-want))
		}
	}

	sd, err := stats.StandardDeviation(errs)
	require.NoError(t, err)
	require.Greater(t, sd, 0.0)
	require.Less(t, sd, 10*params.Sigma)
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

// TestKeySwitchPreservesPlaintext checks that key-switching a GLWE
// ciphertext from one secret to another, then decrypting under the
// new secret, recovers the original plaintext up to noise.
func TestKeySwitchPreservesPlaintext(t *testing.T) {
	mod, params, skIn, enc, _, kgen := testSetup(t, 1)

	skOut := kgen.GenSecretKeyNew(DistributionParameters{Dist: TernaryFixed, HW: mod.N() / 2})
	decOut := NewDecryptor(mod, skOut)

	gp := GadgetParams{Dnum: 2, Dsize: 1}
	ksk := kgen.GenSwitchingKeyNew(skIn, skOut, gp)

	size := 1
	pt := ring.NewVecZnx(mod.N(), 1, size)
	for i := range pt.At(0, 0) {
		pt.At(0, 0)[i] = int64(i % 7)
	}

	ct := NewGLWE(mod.N(), 1, size)
	enc.EncryptSk(pt, skIn, ct)

	ev := NewEvaluator(mod, params)
	out := NewGLWE(mod.N(), params.Rank, size)
	ev.KeySwitch(ct, ksk, out)

	got := decOut.DecryptNew(out)
	require.Equal(t, mod.N(), got.N())
	require.Equal(t, size, got.Size())
	requireCloseInts(t, pt.At(0, 0), got.At(0, 0), 256)
}

// TestAutomorphismNegationRoundTrip checks that applying the p=-1
// automorphism twice returns to the original rotation of a known
// coefficient pattern.
func TestAutomorphismNegationRoundTrip(t *testing.T) {
	mod, params, sk, enc, dec, kgen := testSetup(t, 2)

	gp := GadgetParams{Dnum: 2, Dsize: 1}
	atk := kgen.GenAutomorphismKeyNew(-1, sk, gp)

	size := 1
	pt := ring.NewVecZnx(mod.N(), 1, size)
	pt.At(0, 0)[1] = 1 // X^1

	ct := NewGLWE(mod.N(), params.Rank, size)
	enc.EncryptSk(pt, sk, ct)

	ev := NewEvaluator(mod, params)
	rotated := NewGLWE(mod.N(), params.Rank, size)
	ev.Automorphism(-1, ct, atk, rotated)

	wantRotated := make([]int64, mod.N())
	ring.ZnxAutomorphism(-1, pt.At(0, 0), wantRotated)

	gotRotated := dec.DecryptNew(rotated)
	requireCloseInts(t, wantRotated, gotRotated.At(0, 0), 256)

	back := NewGLWE(mod.N(), params.Rank, size)
	ev.Automorphism(-1, rotated, atk, back)

	got := dec.DecryptNew(back)
	require.Equal(t, size, got.Size())
	// applying X -> X^-1 twice is the identity automorphism.
	requireCloseInts(t, pt.At(0, 0), got.At(0, 0), 512)
}

// TestCompressedRoundTrip checks that EncryptSkCompressed followed by
// Decompress and Decrypt recovers the plaintext up to noise whose
// standard deviation tracks params.Sigma, the seed-compressed analogue
// of TestEncryptDecryptRoundTrip.
func TestCompressedRoundTrip(t *testing.T) {
	mod, params, sk, enc, dec, _ := testSetup(t, 0)

	size := 2
	pt := ring.NewVecZnx(mod.N(), 1, size)
	for i := range pt.At(0, 0) {
		pt.At(0, 0)[i] = int64(i)
	}

	var maskSeed [32]byte
	maskSeed[0] = 1

	trials := 64
	errs := make([]float64, 0, trials*mod.N())
	for trial := 0; trial < trials; trial++ {
		compressed := NewGLWECompressed(mod.N(), params.Base2K, params.Rank, size)
		enc.EncryptSkCompressed(pt, sk, maskSeed, compressed)

		ct := NewGLWE(mod.N(), params.Rank, size)
		Decompress(compressed, ct)

		got := dec.DecryptNew(ct)
		for i, want := range pt.At(0, 0) {
			errs = append(errs, float64(got.At(0, 0)[i]-want))
		}
	}

	sd, err := stats.StandardDeviation(errs)
	require.NoError(t, err)
	require.Greater(t, sd, 0.0)
	require.Less(t, sd, params.Sigma+0.2)
}
