package rgsw

import (
	"fmt"

	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/rlwe"
)

// Evaluator applies GGSW external products against GLWE ciphertexts.
type Evaluator struct {
	*rlwe.Evaluator
}

// NewEvaluator wraps ev for GGSW evaluation.
func NewEvaluator(ev *rlwe.Evaluator) *Evaluator {
	return &Evaluator{ev}
}

// ExternalProduct computes ctOut = ggsw (x) ctIn: the GGSW's message m
// multiplied into ctIn's plaintext, writing the result into ctOut. Each
// column c of ctIn is gadget-decomposed and the digits multiplied, via
// VmpApplyDftToDftAdd in the transformed domain (spec.md §4.6/§4.7),
// against ggsw.Blocks[c]'s rows, accumulating into ctOut — the same
// VMP gadget product KeySwitch uses, generalized to every input column
// instead of just the mask.
func (ev *Evaluator) ExternalProduct(ctIn *rlwe.GLWE, ggsw *GGSW, ctOut *rlwe.GLWE) {
	if ctIn.Rank() != ggsw.Rank() || ctOut.Rank() != ggsw.Rank() {
		panic(fmt.Errorf("ExternalProduct: rank mismatch: ctIn=%d, ggsw=%d, ctOut=%d", ctIn.Rank(), ggsw.Rank(), ctOut.Rank()))
	}
	mod := ev.Module()
	fft := mod.FFT64()
	n, colsOut, outSize := ctOut.N(), ctOut.Cols(), ctOut.Size()
	dnum, dsize := ggsw.Dnum, ggsw.Dsize

	res := ring.NewVecZnxDft(n, colsOut, outSize)
	for c := 0; c <= ctIn.Rank(); c++ {
		block := ggsw.Blocks[c]
		pmat := ring.NewGadgetPMat(fft, n, dnum, dsize, colsOut, outSize, func(i, outc, l int) []int64 {
			return block.Rows[i].At(outc, l)
		})
		a := ring.NewGadgetDft(fft, n, dnum, func(i int) []int64 {
			if i >= ctIn.Size() {
				return nil
			}
			return ctIn.At(c, i)
		})
		ring.VmpApplyDftToDftAdd(res, a, pmat, 1)
	}

	big := ring.NewVecZnxBig(n, colsOut, outSize)
	res.IDFT(fft, big)
	big.Normalize(ev.Params().Base2K, &ctOut.VecZnx, make([]int64, n))
}

// GGLWEToGGSW expands a GGLWE encryption of m (every gglwe.Rows[i] a
// GLWE encryption of m in its limb 0, as rlwe.EncryptGGLWESk produces)
// into a full GGSW under the same secret, using tk to supply the
// s_i*s_j cross terms every block beyond the first needs (glossary:
// tensor key; spec's gglwe_to_ggsw).
//
// Concretely: Blocks[0] is a clone of gglwe (it already encrypts m).
// For c in 1..=rank, block c encrypts m*s_{c-1}: for every row
// (b, a_1, ..., a_rank), each mask column a_j is key-switched, as a
// rank-1 GLWE with a zero body, through tk's (c-1, j) key (from
// s_{c-1}*s_j to s); the results are summed and the row body b is added
// at column c, so the row decrypts to s_{c-1}*(b + sum_j a_j*s_j) =
// m*s_{c-1} plus noise. Only limb 0 of each row's columns is used.
func (ev *Evaluator) GGLWEToGGSW(gglwe *rlwe.GGLWE, tk *rlwe.TensorKey, ggsw *GGSW) {
	rank := gglwe.Rank()
	if rank != ggsw.Rank() || rank != tk.Rank {
		panic(fmt.Errorf("GGLWEToGGSW: rank mismatch: gglwe=%d, ggsw=%d, tk=%d", rank, ggsw.Rank(), tk.Rank))
	}
	ggsw.Blocks[0] = *gglwe.Clone()
	for c := 1; c <= rank; c++ {
		out := &ggsw.Blocks[c]
		for i := range out.Rows {
			out.Rows[i].Zero()
		}
		for j := 0; j < rank; j++ {
			ksk := &tk.Keys[c-1][j]
			for i := range gglwe.Rows {
				row := &gglwe.Rows[i]
				tmp := rlwe.NewGLWE(gglwe.N(), 1, gglwe.Dsize)
				tmp.Zero()
				copy(tmp.At(1, 0), row.At(j+1, 0))
				switched := rlwe.NewGLWE(gglwe.N(), rank, gglwe.Dsize)
				ev.KeySwitch(tmp, ksk, switched)
				for cc := 0; cc <= rank; cc++ {
					for l := 0; l < gglwe.Dsize; l++ {
						a := out.Rows[i].At(cc, l)
						b := switched.At(cc, l)
						for k := range a {
							a[k] += b[k]
						}
					}
				}
			}
		}
		for i := range gglwe.Rows {
			a, b := out.Rows[i].At(c, 0), gglwe.Rows[i].At(0, 0)
			for k := range a {
				a[k] += b[k]
			}
		}
	}
}
