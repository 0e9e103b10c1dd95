package rlwe

import (
	"fmt"
	"math"

	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/sampling"
)

// fillTernaryProb fills a length-N coefficient slice with values in
// {-1, 0, 1} where each of -1/1 occurs with probability p/2 and 0 with
// probability 1-p.
func fillTernaryProb(src sampling.Source, p float64, out []int64) {
	for i := range out {
		f := src.Float64()
		switch {
		case f < p/2:
			out[i] = -1
		case f < p:
			out[i] = 1
		default:
			out[i] = 0
		}
	}
}

// fillTernaryFixed fills out with a uniformly random ternary vector of
// the given Hamming weight hw (hw positions nonzero, each sign drawn
// independently by a fair coin, so the -1/1 split is random rather than
// exactly even).
func fillTernaryFixed(src sampling.Source, hw int, out []int64) {
	n := len(out)
	if hw > n {
		panic(fmt.Errorf("fillTernaryFixed: hw=%d > n=%d", hw, n))
	}
	for i := range out {
		out[i] = 0
	}
	placed := 0
	for placed < hw {
		idx := int(src.Uint64() % uint64(n))
		if out[idx] != 0 {
			continue
		}
		if src.Uint64()&1 == 0 {
			out[idx] = -1
		} else {
			out[idx] = 1
		}
		placed++
	}
}

// fillBinaryProb fills out with 0/1 values, 1 occurring with
// probability p.
func fillBinaryProb(src sampling.Source, p float64, out []int64) {
	for i := range out {
		if src.Float64() < p {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}

// fillBinaryFixed fills out with a uniformly random binary vector of
// the given Hamming weight hw.
func fillBinaryFixed(src sampling.Source, hw int, out []int64) {
	n := len(out)
	if hw > n {
		panic(fmt.Errorf("fillBinaryFixed: hw=%d > n=%d", hw, n))
	}
	for i := range out {
		out[i] = 0
	}
	placed := 0
	for placed < hw {
		idx := int(src.Uint64() % uint64(n))
		if out[idx] != 0 {
			continue
		}
		out[idx] = 1
		placed++
	}
}

// fillBinaryBlock fills out with zeros except for exactly one 1 in every
// disjoint block of blockSize coefficients (the last block may be
// shorter), at a uniformly chosen position within the block
// (spec's BinaryBlock distribution, used by blind
// rotation's lazily-batched X^a+Y precomputation).
func fillBinaryBlock(src sampling.Source, blockSize int, out []int64) {
	n := len(out)
	for i := range out {
		out[i] = 0
	}
	for start := 0; start < n; start += blockSize {
		end := min(start+blockSize, n)
		idx := start + int(src.Uint64()%uint64(end-start))
		out[idx] = 1
	}
}

// fillGaussian fills out with coefficients drawn from a discretized
// Gaussian of standard deviation sigma, rejecting samples beyond bound
// (0 disables the bound).
func fillGaussian(src sampling.Source, sigma, bound float64, out []int64) {
	for i := range out {
		for {
			// Box-Muller transform over two independent uniforms.
			u1 := src.Float64()
			if u1 <= 0 {
				u1 = 1e-300
			}
			u2 := src.Float64()
			r := sigma * math.Sqrt(-2*math.Log(u1))
			v := r * math.Cos(2*math.Pi*u2)
			if bound == 0 || math.Abs(v) <= bound {
				out[i] = int64(roundHalfAwayFromZero(v))
				break
			}
		}
	}
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}

// fillUniform fills out with coefficients drawn uniformly from the
// signed base2k digit range.
func fillUniform(src sampling.Source, base2k int, out []int64) {
	mod := uint64(1) << uint(base2k)
	half := int64(1) << uint(base2k-1)
	mask := mod - 1
	for i := range out {
		v := int64(src.Uint64() & mask)
		if v > half {
			v -= int64(mod)
		}
		out[i] = v
	}
}

// Fill fills a ScalarZnx's column 0 according to d, using src as the
// randomness source. This is the fill_* state transition spec.md §4.9
// describes for GLWESecret/GLWEPublicKey.
func Fill(d DistributionParameters, src sampling.Source, out *ring.ScalarZnx) {
	switch d.Dist {
	case ZERO:
		out.Zero()
	case TernaryProb:
		fillTernaryProb(src, d.P, out.At(0))
	case TernaryFixed:
		fillTernaryFixed(src, d.HW, out.At(0))
	case BinaryProb:
		fillBinaryProb(src, d.P, out.At(0))
	case BinaryFixed:
		fillBinaryFixed(src, d.HW, out.At(0))
	case BinaryBlock:
		fillBinaryBlock(src, d.BlockSize, out.At(0))
	default:
		panic(fmt.Errorf("rlwe.Fill: cannot fill from distribution %s", d.Dist))
	}
}
