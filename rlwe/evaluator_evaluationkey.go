package rlwe

import (
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/utils/structs"
)

// TensorKey bundles GGLWE encryptions of every pairwise secret product
// s_i*s_j (i<=j) under the same secret, required to expand a GGLWE into
// a GGSW (glossary: tensor key). Keys[i][j] (j>=i) holds the switching
// key from s_i*s_j to the secret; the lower triangle mirrors the upper.
type TensorKey struct {
	GadgetParams
	Rank int
	Keys [][]GLWESwitchingKey
}

// NewTensorKey allocates a new zero-valued TensorKey for the given rank
// and gadget parameters.
func NewTensorKey(n, rank int, gp GadgetParams) *TensorKey {
	keys := make([][]GLWESwitchingKey, rank)
	for i := range keys {
		keys[i] = make([]GLWESwitchingKey, rank)
		for j := range keys[i] {
			keys[i][j] = *NewGLWESwitchingKey(n, rank, gp)
		}
	}
	return &TensorKey{GadgetParams: gp, Rank: rank, Keys: keys}
}

// entries returns the (i,j), i<=j index pairs of the symmetric s_i*s_j
// grid that actually need their own switching key: the upper triangle
// only, since Keys[j][i] is always a mirror of Keys[i][j]. For rank=1
// this folds down to the single (0,0) pair, matching
// original_source's gglwe_tsk.rs rank=1 special case.
func (tk *TensorKey) entries() [][2]int {
	out := make([][2]int, 0, tk.Rank*(tk.Rank+1)/2)
	for i := 0; i < tk.Rank; i++ {
		for j := i; j < tk.Rank; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// GenTensorKey fills tk with switching keys from every pairwise product
// s_i*s_j of sk's components back to sk, iterating only tk.entries()'s
// upper-triangle pairs and mirroring each into the lower triangle. For
// rank=1 this degenerates to the single key for s_0^2 — the case the
// scenario tests exercise (GGLWE->GGSW expansion at rank 1).
func (enc *Encryptor) GenTensorKey(sk *GLWESecret, tk *TensorKey) {
	n := sk.N()
	for _, e := range tk.entries() {
		i, j := e[0], e[1]
		prod := ring.NewScalarZnx(n, 1)
		copy(prod.At(0), enc.mod.MulPoly(sk.At(i), sk.At(j)))
		skProd := NewGLWESecret(n, 1)
		copy(skProd.At(0), prod.At(0))
		skProd.Dist = sk.Dist
		enc.GenSwitchingKey(skProd, sk, &tk.Keys[i][j])
		if i != j {
			tk.Keys[j][i] = tk.Keys[i][j]
		}
	}
}

// tensorKeyCheck panics if tk.Rank differs from rank.
func tensorKeyCheck(tk *TensorKey, rank int) {
	if tk.Rank != rank {
		panic(fmt.Errorf("TensorKey.Rank()=%d != %d", tk.Rank, rank))
	}
}

// GaloisKeys is a collection of automorphism keys indexed by their
// Galois element p, the shape a caller accumulates once at setup and
// then looks every automorphism up from at evaluation time, rather
// than threading individual *GLWEAutomorphismKey values through a
// circuit by hand.
type GaloisKeys struct {
	set structs.Map[int, GLWEAutomorphismKey]
}

// NewGaloisKeys allocates an empty key collection.
func NewGaloisKeys() *GaloisKeys {
	return &GaloisKeys{set: make(structs.Map[int, GLWEAutomorphismKey])}
}

// Add records atk under its own P.
func (gks *GaloisKeys) Add(atk *GLWEAutomorphismKey) {
	gks.set[atk.P] = atk
}

// Get returns the key for Galois element p, if present.
func (gks *GaloisKeys) Get(p int) (*GLWEAutomorphismKey, bool) {
	atk, ok := gks.set[p]
	return atk, ok
}

// List returns the Galois elements currently held, in no particular order.
func (gks *GaloisKeys) List() []int {
	out := make([]int, 0, len(gks.set))
	for p := range gks.set {
		out = append(out, p)
	}
	return out
}

func (gks *GaloisKeys) BinarySize() int { return gks.set.BinarySize() }

func (gks *GaloisKeys) WriteTo(w io.Writer) (int64, error) { return gks.set.WriteTo(w) }

func (gks *GaloisKeys) ReadFrom(r io.Reader) (int64, error) {
	if gks.set == nil {
		gks.set = make(structs.Map[int, GLWEAutomorphismKey])
	}
	return gks.set.ReadFrom(r)
}

// AutomorphismFromSet applies X -> X^p to ctIn using the key stored in
// gks for p, writing into ctOut. Returns an error if no key for p was
// registered (mirrors the teacher's CheckAndGetGaloisKey pattern of
// surfacing a missing-key lookup as an error rather than a panic).
func (ev *Evaluator) AutomorphismFromSet(p int, ctIn *GLWE, gks *GaloisKeys, ctOut *GLWE) error {
	atk, ok := gks.Get(p)
	if !ok {
		return fmt.Errorf("AutomorphismFromSet: no GaloisKey registered for p=%d", p)
	}
	ev.Automorphism(p, ctIn, atk, ctOut)
	return nil
}
