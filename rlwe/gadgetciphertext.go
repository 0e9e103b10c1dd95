package rlwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/sampling"
	"github.com/Pro7ech/poulpy/utils/structs"
)

// GGLWE is a gadget-decomposed GLWE matrix encrypting a polynomial p:
// Dnum rows of Dsize limbs, each row a GLWE encryption of p, placed in
// the row's limb 0, under the output secret (glossary: GGLWE). The rows
// are not pre-scaled: the gadget weight B^(i*Dsize) of row i, with
// B = 2^Base2K, comes from ring.NewGadgetPMat placing row i at
// output-limb offset i*Dsize in a gadget product. GLWESwitchingKey
// and GLWEAutomorphismKey are both GGLWE encryptions of a secret.
//
// Rows is a structs.Vector rather than a plain slice so that Clone,
// Equal, and serialization fall out of GLWE's own Cloner/Equatable/
// io.WriterTo/io.ReaderFrom implementations instead of being
// reimplemented here row by row.
type GGLWE struct {
	GadgetParams
	Rows structs.Vector[GLWE]
}

// NewGGLWE allocates a new zero-valued GGLWE of the given shape: ring
// degree n, mask rank, and gadget parameters gp. Every row is a GLWE of
// gp.Dsize limbs.
func NewGGLWE(n, rank int, gp GadgetParams) *GGLWE {
	rows := make(structs.Vector[GLWE], gp.Dnum)
	for i := range rows {
		rows[i] = *NewGLWE(n, rank, gp.Dsize)
	}
	return &GGLWE{GadgetParams: gp, Rows: rows}
}

func (g *GGLWE) N() int    { return g.Rows[0].N() }
func (g *GGLWE) Rank() int { return g.Rows[0].Rank() }

func (g *GGLWE) Clone() *GGLWE {
	return &GGLWE{GadgetParams: g.GadgetParams, Rows: g.Rows.Clone()}
}

func (g *GGLWE) Equal(other *GGLWE) bool {
	return g.GadgetParams == other.GadgetParams && g.Rows.Equal(other.Rows)
}

func (g *GGLWE) BinarySize() int {
	return g.GadgetParams.BinarySize() + g.Rows.BinarySize()
}

func (g *GGLWE) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = g.GadgetParams.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = g.Rows.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.WriteTo(bufio.NewWriter(w))
	}
}

func (g *GGLWE) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		if inc, err = g.GadgetParams.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = g.Rows.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.ReadFrom(bufio.NewReader(r))
	}
}

// EncryptGGLWESk fills every row of g with a GLWE encryption under sk of
// the same single-limb plaintext polynomial p, placed in the row's limb
// 0 (spec.md's "gadget decomposition": Dnum decomposition groups of
// Dsize limbs). The B^(i*Dsize) weight of row i is not applied here; it
// comes from the limb offset the gadget product places row i at.
func (enc *Encryptor) EncryptGGLWESk(p []int64, sk *GLWESecret, g *GGLWE) {
	if g.Rank() != sk.Rank() {
		panic(fmt.Errorf("EncryptGGLWESk: g.Rank()=%d != sk.Rank()=%d", g.Rank(), sk.Rank()))
	}
	pt := ring.NewVecZnx(g.N(), 1, g.Dsize)
	for i := range g.Rows {
		pt.Zero()
		copy(pt.At(0, 0), p)
		enc.EncryptSk(pt, sk, &g.Rows[i])
	}
}

// GLWESwitchingKey is a GGLWE encryption of an input secret under an
// output secret, used to re-key a GLWE ciphertext via KeySwitch.
type GLWESwitchingKey struct {
	GGLWE
}

// NewGLWESwitchingKey allocates a new zero-valued switching key.
func NewGLWESwitchingKey(n, rank int, gp GadgetParams) *GLWESwitchingKey {
	return &GLWESwitchingKey{*NewGGLWE(n, rank, gp)}
}

// GenSwitchingKey fills ksk with a GGLWE encryption of skIn under skOut.
func (enc *Encryptor) GenSwitchingKey(skIn, skOut *GLWESecret, ksk *GLWESwitchingKey) {
	if skIn.Rank() != 1 {
		panic(fmt.Errorf("GenSwitchingKey: skIn must carry a single column of input-secret data, has rank %d", skIn.Rank()))
	}
	enc.EncryptGGLWESk(skIn.At(0), skOut, &ksk.GGLWE)
}

// GLWEAutomorphismKey is a switching key specialized for the
// automorphism X -> X^p: a GGLWE encryption of sk(X^p) under sk.
type GLWEAutomorphismKey struct {
	GGLWE
	P int
}

// NewGLWEAutomorphismKey allocates a new zero-valued automorphism key.
func NewGLWEAutomorphismKey(n, rank int, gp GadgetParams) *GLWEAutomorphismKey {
	return &GLWEAutomorphismKey{GGLWE: *NewGGLWE(n, rank, gp), P: 1}
}

// GenAutomorphismKey fills atk with a GGLWE encryption of sk(X^p) under sk.
func (enc *Encryptor) GenAutomorphismKey(p int, sk *GLWESecret, atk *GLWEAutomorphismKey) {
	n := sk.N()
	skAut := NewGLWESecret(n, sk.Rank())
	skAut.Dist = sk.Dist
	for c := 0; c < sk.Rank(); c++ {
		ring.ZnxAutomorphism(p, sk.At(c), skAut.At(c))
	}
	enc.EncryptGGLWESk(skAut.At(0), sk, &atk.GGLWE)
	atk.P = p
}

func (atk *GLWEAutomorphismKey) Clone() *GLWEAutomorphismKey {
	return &GLWEAutomorphismKey{GGLWE: *atk.GGLWE.Clone(), P: atk.P}
}

func (atk *GLWEAutomorphismKey) Equal(other *GLWEAutomorphismKey) bool {
	return atk.P == other.P && atk.GGLWE.Equal(&other.GGLWE)
}

func (atk *GLWEAutomorphismKey) BinarySize() int {
	return atk.GGLWE.BinarySize() + 8
}

func (atk *GLWEAutomorphismKey) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = atk.GGLWE.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.WriteAsUint64[int](w, atk.P); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return atk.WriteTo(bufio.NewWriter(w))
	}
}

func (atk *GLWEAutomorphismKey) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		if inc, err = atk.GGLWE.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.ReadAsUint64[int](r, &atk.P); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return atk.ReadFrom(bufio.NewReader(r))
	}
}

// randSeed is a convenience helper used by compressed variants to draw
// the 32-byte seed a mask column is regenerated from.
func randSeed(src sampling.Source) [32]byte {
	var seed [32]byte
	src.Read(seed[:])
	return seed
}
