package rlwe

import (
	"fmt"

	"github.com/Pro7ech/poulpy/ring"
)

// Evaluator groups the module handle and normalization scratch shared
// by its GLWE operations: KeySwitch, Automorphism and
// ComposeAutomorphismKeys (and rgsw.Evaluator, which embeds it).
type Evaluator struct {
	mod    *ring.Module
	params Parameters
	carry  []int64
}

// NewEvaluator binds an Evaluator to a module and parameter set.
func NewEvaluator(mod *ring.Module, params Parameters) *Evaluator {
	return &Evaluator{mod: mod, params: params, carry: make([]int64, mod.N())}
}

// Module returns the module handle the receiver was constructed with.
func (ev *Evaluator) Module() *ring.Module { return ev.mod }

// Params returns the parameter set the receiver was constructed with.
func (ev *Evaluator) Params() Parameters { return ev.params }

// KeySwitch re-encrypts ctIn (a rank-1-mask GLWE, i.e. ctIn.Rank()==1)
// under ksk's output secret, writing the result into ctOut. It is the
// gadget product of ctIn's mask column against ksk's rows (spec.md
// §4.6/§4.7): ctIn's mask is DFT-transformed into a Dnum-digit
// VecZnxDft, ksk's rows are prepared into a VmpPMat that places row i
// at output-limb offset i*Dsize, and VmpApplyDftToDft sums the product
// over rows in the transformed domain. The result is inverse
// transformed, ctIn's body is folded in, and the whole thing is
// normalized once into ctOut.
func (ev *Evaluator) KeySwitch(ctIn *GLWE, ksk *GLWESwitchingKey, ctOut *GLWE) {
	if ctIn.Rank() != 1 {
		panic(fmt.Errorf("KeySwitch: ctIn.Rank()=%d, expected 1", ctIn.Rank()))
	}
	if ctOut.Rank() != ksk.Rank() {
		panic(fmt.Errorf("KeySwitch: ctOut.Rank()=%d != ksk.Rank()=%d", ctOut.Rank(), ksk.Rank()))
	}

	n, colsOut, outSize := ctOut.N(), ctOut.Cols(), ctOut.Size()
	fft := ev.mod.FFT64()

	pmat := ring.NewGadgetPMat(fft, n, ksk.Dnum, ksk.Dsize, colsOut, outSize, func(i, c, l int) []int64 {
		return ksk.Rows[i].At(c, l)
	})
	a := ring.NewGadgetDft(fft, n, ksk.Dnum, func(i int) []int64 {
		if i >= ctIn.Size() {
			return nil
		}
		return ctIn.At(1, i)
	})

	res := ring.NewVecZnxDft(n, colsOut, outSize)
	ring.VmpApplyDftToDft(res, a, pmat)

	big := ring.NewVecZnxBig(n, colsOut, outSize)
	res.IDFT(fft, big)

	size := min(outSize, ctIn.Size())
	for l := 0; l < size; l++ {
		dst, src := big.At(0, l), ctIn.At(0, l)
		for k := range dst {
			dst[k] += src[k]
		}
	}

	big.Normalize(ev.params.Base2K, &ctOut.VecZnx, ev.carry)
}

// Automorphism applies X -> X^p to ctIn (using atk.P, which must match
// p) and key-switches the result back under atk's original secret,
// writing into ctOut.
func (ev *Evaluator) Automorphism(p int, ctIn *GLWE, atk *GLWEAutomorphismKey, ctOut *GLWE) {
	if atk.P != p {
		panic(fmt.Errorf("Automorphism: atk.P=%d != p=%d", atk.P, p))
	}
	rotated := NewGLWE(ctIn.N(), ctIn.Rank(), ctIn.Size())
	rotated.Automorphism(p, &ctIn.VecZnx)
	ksk := &GLWESwitchingKey{atk.GGLWE}
	ev.KeySwitch(rotated, ksk, ctOut)
}

// ComposeAutomorphismKeys combines automorphism keys for p and q into
// one for p*q mod 2N, key-switching a's rows through b's rows (i.e.
// applying b's automorphism to a's encrypted secret, then re-keying
// the result under b's secret).
func (ev *Evaluator) ComposeAutomorphismKeys(a, b *GLWEAutomorphismKey) *GLWEAutomorphismKey {
	n := a.N()
	twoN := 2 * n
	pq := ((a.P*b.P)%twoN + twoN) % twoN
	out := NewGLWEAutomorphismKey(n, a.Rank(), a.GadgetParams)
	out.P = pq
	bKsk := &GLWESwitchingKey{b.GGLWE}
	for i := range out.Rows {
		tmp := NewGLWE(n, a.Rank(), a.Dsize)
		tmp.Automorphism(b.P, &a.Rows[i].VecZnx)
		ev.KeySwitch(tmp, bKsk, &out.Rows[i])
	}
	return out
}
