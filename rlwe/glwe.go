package rlwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/sampling"
)

// GLWE is a rank-`k` RLWE ciphertext: a VecZnx of Rank()+1 columns,
// column 0 the body and columns 1..Rank() the mask (spec.md §2). It is
// a thin, semantically-named wrapper so that encryptor/decryptor/
// keyswitch code reads in terms of the scheme rather than the raw
// container.
type GLWE struct {
	ring.VecZnx
}

// NewGLWE allocates a new zero-valued GLWE ciphertext of the given rank
// (mask width) and size (gadget-decomposition limb count).
func NewGLWE(n, rank, size int) *GLWE {
	return &GLWE{*ring.NewVecZnx(n, rank+1, size)}
}

func (c *GLWE) Copy(other *GLWE) { c.VecZnx.Copy(&other.VecZnx) }

func (c *GLWE) Clone() *GLWE { return &GLWE{*c.VecZnx.Clone()} }

func (c *GLWE) Equal(other *GLWE) bool { return c.VecZnx.Equal(&other.VecZnx) }

// GLWESecret holds the rank-many secret-key polynomials and the
// Distribution they were last filled from (None until Fill is called).
type GLWESecret struct {
	ring.ScalarZnx
	Dist DistributionParameters
}

// NewGLWESecret allocates a new GLWESecret of the given rank, in the
// None distribution state.
func NewGLWESecret(n, rank int) *GLWESecret {
	return &GLWESecret{ScalarZnx: *ring.NewScalarZnx(n, rank), Dist: DistributionParameters{Dist: None}}
}

func (s *GLWESecret) Rank() int { return s.Cols() }

// Fill samples every column of the secret according to d and records
// the distribution on the receiver.
func (s *GLWESecret) Fill(d DistributionParameters, src sampling.Source) {
	col := ring.NewScalarZnx(s.N(), 1)
	for c := 0; c < s.Cols(); c++ {
		Fill(d, src, col)
		copy(s.At(c), col.At(0))
	}
	s.Dist = d
}

func (s *GLWESecret) BinarySize() int {
	return s.ScalarZnx.BinarySize() + s.Dist.BinarySize()
}

func (s *GLWESecret) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = s.ScalarZnx.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = s.Dist.WriteTo(w); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return s.WriteTo(bufio.NewWriter(w))
	}
}

func (s *GLWESecret) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		if inc, err = s.ScalarZnx.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		if inc, err = s.Dist.ReadFrom(r); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return s.ReadFrom(bufio.NewReader(r))
	}
}

// GLWEPublicKey is a rank-`k` GLWE encryption of zero under a
// GLWESecret, used by encrypt_pk. Its own Distribution records how its
// mask was generated (independent of the secret's).
type GLWEPublicKey struct {
	GLWE
	Dist DistributionParameters
}

// NewGLWEPublicKey allocates a new zero-valued public key of the given
// rank, at size 1 (a public key is never gadget-decomposed).
func NewGLWEPublicKey(n, rank int) *GLWEPublicKey {
	return &GLWEPublicKey{GLWE: *NewGLWE(n, rank, 1), Dist: DistributionParameters{Dist: None}}
}

// Parameters bundles the scalar knobs every GLWE operation needs:
// ring degree, base2k digit width, rank (mask width), and the noise
// standard deviation used by fill_* and encrypt_*.
type Parameters struct {
	LogN   int
	Base2K int
	Rank   int
	Sigma  float64
}

// ParametersLiteral is the serializable, validation-free counterpart of
// Parameters (spec.md's ambient config split: a literal the caller
// assembles freely, compiled into a validated Parameters).
type ParametersLiteral struct {
	LogN   int
	Base2K int
	Rank   int
	Sigma  float64
}

// Compile validates the literal and returns the corresponding Parameters.
func (p ParametersLiteral) Compile() (Parameters, error) {
	if p.LogN < 1 {
		return Parameters{}, fmt.Errorf("%w: LogN must be >= 1, got %d", ErrInvalidData, p.LogN)
	}
	if p.Base2K < 1 {
		return Parameters{}, fmt.Errorf("%w: Base2K must be >= 1, got %d", ErrInvalidData, p.Base2K)
	}
	if p.Rank < 1 {
		return Parameters{}, fmt.Errorf("%w: Rank must be >= 1, got %d", ErrInvalidData, p.Rank)
	}
	return Parameters{LogN: p.LogN, Base2K: p.Base2K, Rank: p.Rank, Sigma: p.Sigma}, nil
}

func (p Parameters) N() int { return 1 << uint(p.LogN) }
