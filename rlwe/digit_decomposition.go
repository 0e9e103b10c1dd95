package rlwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
)

// GadgetParams bundles the gadget-decomposition shape shared by every
// GGLWE/GGSW row: Dnum decomposition groups of Dsize base2k-sized limbs
// each (spec glossary: dnum, dsize). Size() is the minimum VecZnx size
// capable of holding the decomposition.
type GadgetParams struct {
	Dnum  int
	Dsize int
}

func (g GadgetParams) Size() int { return g.Dnum * g.Dsize }

func (g GadgetParams) String() string {
	return fmt.Sprintf("Dnum:%d,Dsize:%d", g.Dnum, g.Dsize)
}

func (g GadgetParams) BinarySize() int { return 16 }

func (g GadgetParams) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = buffer.WriteAsUint64[int](w, g.Dnum); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.WriteAsUint64[int](w, g.Dsize); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.WriteTo(bufio.NewWriter(w))
	}
}

func (g *GadgetParams) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		if inc, err = buffer.ReadAsUint64[int](r, &g.Dnum); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.ReadAsUint64[int](r, &g.Dsize); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.ReadFrom(bufio.NewReader(r))
	}
}
