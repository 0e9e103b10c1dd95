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

// GLWECompressed is the seed-compressed wire form of a GLWE ciphertext
// (spec.md §6 `GLWECompressed`): only the body (column 0) is stored;
// the Rank mask columns are regenerated deterministically from Seed by
// Decompress. Grounded on original_source's
// poulpy-core/src/layouts/compressed/glwe.rs.
type GLWECompressed struct {
	Base2K int
	Rank   int
	Seed   [32]byte
	Body   ring.VecZnx
}

// NewGLWECompressed allocates a new zero-valued compressed GLWE.
func NewGLWECompressed(n, base2k, rank, size int) *GLWECompressed {
	return &GLWECompressed{Base2K: base2k, Rank: rank, Body: *ring.NewVecZnx(n, 1, size)}
}

func (g *GLWECompressed) N() int    { return g.Body.N() }
func (g *GLWECompressed) Size() int { return g.Body.Size() }

func (g *GLWECompressed) Clone() *GLWECompressed {
	return &GLWECompressed{Base2K: g.Base2K, Rank: g.Rank, Seed: g.Seed, Body: *g.Body.Clone()}
}

func (g *GLWECompressed) Equal(other *GLWECompressed) bool {
	return g.Base2K == other.Base2K && g.Rank == other.Rank && g.Seed == other.Seed && g.Body.Equal(&other.Body)
}

func (g *GLWECompressed) BinarySize() int {
	return 8 + 8 + len(g.Seed) + g.Body.BinarySize()
}

func (g *GLWECompressed) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = buffer.WriteAsUint64[int](w, g.Base2K); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.WriteAsUint64[int](w, g.Rank); err != nil {
			return n + inc, err
		}
		n += inc
		nn, err2 := w.Write(g.Seed[:])
		n += int64(nn)
		if err2 != nil {
			return n, err2
		}
		if inc, err = g.Body.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.WriteTo(bufio.NewWriter(w))
	}
}

func (g *GLWECompressed) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		if inc, err = buffer.ReadAsUint64[int](r, &g.Base2K); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = buffer.ReadAsUint64[int](r, &g.Rank); err != nil {
			return n + inc, err
		}
		n += inc
		nn, err2 := io.ReadFull(r, g.Seed[:])
		n += int64(nn)
		if err2 != nil {
			return n, err2
		}
		if inc, err = g.Body.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return g.ReadFrom(bufio.NewReader(r))
	}
}

// EncryptSkCompressed encrypts pt under sk into a seed-compressed GLWE:
// the mask columns are drawn from a fresh Blake3Source seeded with
// seed rather than enc's own source, and only the body is kept, so the
// mask can be regenerated byte-for-byte later from seed alone
// (Decompress). The Gaussian error is drawn from enc's own source, as
// it needs no regeneration.
func (enc *Encryptor) EncryptSkCompressed(pt *ring.VecZnx, sk *GLWESecret, seed [32]byte, out *GLWECompressed) {
	if sk.Dist.Dist == None {
		panic(fmt.Errorf("EncryptSkCompressed: secret distribution is None"))
	}
	if out.Rank != sk.Rank() {
		panic(fmt.Errorf("EncryptSkCompressed: out.Rank=%d != sk.Rank()=%d", out.Rank, sk.Rank()))
	}
	out.Seed = seed
	maskSrc := sampling.NewBlake3Source(seed)
	n := out.N()
	e := make([]int64, n)
	a := make([]int64, n)
	for l := 0; l < out.Size(); l++ {
		body := out.Body.At(0, l)
		for i := range body {
			body[i] = 0
		}
		if pt != nil && l < pt.Size() {
			copy(body, pt.At(0, l))
		}
		fillGaussian(enc.src, enc.params.Sigma, 0, e)
		for i := range body {
			body[i] += e[i]
		}
		for c := 1; c <= out.Rank; c++ {
			fillUniform(maskSrc, out.Base2K, a)
			enc.mod.MulAddPoly(a, negateCopy(sk.At(c-1)), body)
		}
	}
}

// Decompress regenerates ct's mask columns from other's seed and
// copies its body, restoring a full GLWE equivalent to the one
// EncryptSkCompressed produced. It needs no secret: the mask is
// reproducible from the seed alone.
func Decompress(other *GLWECompressed, ct *GLWE) {
	if ct.Rank() != other.Rank {
		panic(fmt.Errorf("Decompress: ct.Rank()=%d != other.Rank=%d", ct.Rank(), other.Rank))
	}
	ct.Zero()
	size := min(ct.Size(), other.Size())
	for l := 0; l < size; l++ {
		copy(ct.At(0, l), other.Body.At(0, l))
	}
	maskSrc := sampling.NewBlake3Source(other.Seed)
	a := make([]int64, ct.N())
	for l := 0; l < ct.Size(); l++ {
		for c := 1; c <= ct.Rank(); c++ {
			fillUniform(maskSrc, other.Base2K, a)
			copy(ct.At(c, l), a)
		}
	}
}

// GGLWECompressed is the seed-compressed wire form of a GGLWE matrix
// (spec.md §6 `GGLWECompressed`/`GGSWCompressed`): every row keeps only
// its body, alongside the per-row seed its mask columns regenerate
// from (seed_count == Dnum, since this engine's GGLWE always carries a
// single input column per row). Grounded on original_source's
// poulpy-core/src/layouts/compressed/gglwe_ct.rs, simplified from its
// rank_in x dnum seed grid to this engine's rank_in==1 model.
type GGLWECompressed struct {
	GadgetParams
	Rows structs.Vector[GLWECompressed]
}

// NewGGLWECompressed allocates a new zero-valued compressed GGLWE.
func NewGGLWECompressed(n, base2k, rank int, gp GadgetParams) *GGLWECompressed {
	rows := make(structs.Vector[GLWECompressed], gp.Dnum)
	for i := range rows {
		rows[i] = *NewGLWECompressed(n, base2k, rank, gp.Dsize)
	}
	return &GGLWECompressed{GadgetParams: gp, Rows: rows}
}

func (g *GGLWECompressed) N() int { return g.Rows[0].N() }

func (g *GGLWECompressed) Clone() *GGLWECompressed {
	return &GGLWECompressed{GadgetParams: g.GadgetParams, Rows: g.Rows.Clone()}
}

func (g *GGLWECompressed) Equal(other *GGLWECompressed) bool {
	return g.GadgetParams == other.GadgetParams && g.Rows.Equal(other.Rows)
}

func (g *GGLWECompressed) BinarySize() int {
	return g.GadgetParams.BinarySize() + g.Rows.BinarySize()
}

func (g *GGLWECompressed) WriteTo(w io.Writer) (n int64, err error) {
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

func (g *GGLWECompressed) ReadFrom(r io.Reader) (n int64, err error) {
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

// EncryptGGLWESkCompressed fills g with a seed-compressed GGLWE
// encryption of p, placed in limb 0 of every row as EncryptGGLWESk
// does, each row's mask regenerated from its own 32-byte seed drawn
// from enc's own source.
func (enc *Encryptor) EncryptGGLWESkCompressed(p []int64, sk *GLWESecret, g *GGLWECompressed) {
	if g.Rows[0].Rank != sk.Rank() {
		panic(fmt.Errorf("EncryptGGLWESkCompressed: g.Rank=%d != sk.Rank()=%d", g.Rows[0].Rank, sk.Rank()))
	}
	pt := ring.NewVecZnx(g.N(), 1, g.Dsize)
	for i := range g.Rows {
		pt.Zero()
		copy(pt.At(0, 0), p)
		enc.EncryptSkCompressed(pt, sk, randSeed(enc.src), &g.Rows[i])
	}
}

// DecompressGGLWE expands every row of g into the corresponding row of out.
func DecompressGGLWE(g *GGLWECompressed, out *GGLWE) {
	if len(g.Rows) != len(out.Rows) {
		panic(fmt.Errorf("DecompressGGLWE: row count mismatch: %d != %d", len(g.Rows), len(out.Rows)))
	}
	for i := range g.Rows {
		Decompress(&g.Rows[i], &out.Rows[i])
	}
}
