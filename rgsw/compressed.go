package rgsw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
	"github.com/Pro7ech/poulpy/rlwe"
	"github.com/Pro7ech/poulpy/utils/structs"
)

// GGSWCompressed is the seed-compressed wire form of a GGSW matrix
// (spec.md §6 `GGSWCompressed`): Rank()+1 compressed GGLWE blocks, each
// keeping only its rows' bodies and per-row seeds. Grounded on
// original_source's poulpy-core/src/layouts/compressed/ggsw_ct.rs.
type GGSWCompressed struct {
	rlwe.GadgetParams
	Blocks structs.Vector[rlwe.GGLWECompressed]
}

// NewGGSWCompressed allocates a new zero-valued compressed GGSW.
func NewGGSWCompressed(n, base2k, rank int, gp rlwe.GadgetParams) *GGSWCompressed {
	blocks := make(structs.Vector[rlwe.GGLWECompressed], rank+1)
	for i := range blocks {
		blocks[i] = *rlwe.NewGGLWECompressed(n, base2k, rank, gp)
	}
	return &GGSWCompressed{GadgetParams: gp, Blocks: blocks}
}

func (g *GGSWCompressed) N() int { return g.Blocks[0].N() }

func (g *GGSWCompressed) Clone() *GGSWCompressed {
	return &GGSWCompressed{GadgetParams: g.GadgetParams, Blocks: g.Blocks.Clone()}
}

func (g *GGSWCompressed) Equal(other *GGSWCompressed) bool {
	return g.GadgetParams == other.GadgetParams && g.Blocks.Equal(other.Blocks)
}

func (g *GGSWCompressed) BinarySize() int {
	return g.GadgetParams.BinarySize() + g.Blocks.BinarySize()
}

func (g *GGSWCompressed) WriteTo(w io.Writer) (n int64, err error) {
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

func (g *GGSWCompressed) ReadFrom(r io.Reader) (n int64, err error) {
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

// Decompress expands every block of g into the corresponding block of out.
func Decompress(g *GGSWCompressed, out *GGSW) {
	if len(g.Blocks) != len(out.Blocks) {
		panic(fmt.Errorf("Decompress: block count mismatch: %d != %d", len(g.Blocks), len(out.Blocks)))
	}
	for i := range g.Blocks {
		rlwe.DecompressGGLWE(&g.Blocks[i], &out.Blocks[i])
	}
}
