// Package rgsw implements GGSW: a gadget-decomposed GLWE matrix
// encrypting a scalar polynomial, and the external product GGSW x GLWE
// -> GLWE that multiplies the GGSW's message into a GLWE's plaintext
// without a costly full re-encryption.
package rgsw

import (
	"bufio"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
	"github.com/Pro7ech/poulpy/rlwe"
	"github.com/Pro7ech/poulpy/utils/structs"
)

// GGSW is a gadget-decomposed GLWE matrix encrypting a scalar
// polynomial m: Rank()+1 blocks, block 0 a GGLWE encryption of m itself
// and block c (c>=1) a GGLWE encryption of m*s_{c-1} under the same
// secret (glossary: GGSW). ExternalProduct consumes this structure to
// multiply m homomorphically into a GLWE ciphertext's plaintext.
//
// As with GGLWE.Rows, Blocks is a structs.Vector so Clone/Equal/
// serialization are inherited from GGLWE rather than reimplemented.
type GGSW struct {
	rlwe.GadgetParams
	Blocks structs.Vector[rlwe.GGLWE]
}

// NewGGSW allocates a new zero-valued GGSW of the given ring degree,
// rank, and gadget parameters.
func NewGGSW(n, rank int, gp rlwe.GadgetParams) *GGSW {
	blocks := make(structs.Vector[rlwe.GGLWE], rank+1)
	for i := range blocks {
		blocks[i] = *rlwe.NewGGLWE(n, rank, gp)
	}
	return &GGSW{GadgetParams: gp, Blocks: blocks}
}

func (g *GGSW) N() int    { return g.Blocks[0].N() }
func (g *GGSW) Rank() int { return g.Blocks[0].Rank() }

func (g *GGSW) Clone() *GGSW {
	return &GGSW{GadgetParams: g.GadgetParams, Blocks: g.Blocks.Clone()}
}

func (g *GGSW) Equal(other *GGSW) bool {
	return g.GadgetParams == other.GadgetParams && g.Blocks.Equal(other.Blocks)
}

func (g *GGSW) BinarySize() int {
	return g.GadgetParams.BinarySize() + g.Blocks.BinarySize()
}

func (g *GGSW) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = g.GadgetParams.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = g.Blocks.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.WriteTo(bufio.NewWriter(w))
	}
}

func (g *GGSW) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		if inc, err = g.GadgetParams.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = g.Blocks.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.ReadFrom(bufio.NewReader(r))
	}
}
