package ring

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
	"github.com/google/go-cmp/cmp"
)

// VecZnx stores Cols*Size limbs of N coefficients in the coefficient
// domain: a gadget-decomposed polynomial vector (spec.md §3). Layout is
// column-major, limb-minor: data[col][limb] is a length-N []int64.
type VecZnx struct {
	n, cols, size int
	data          []int64 // cols*size*n contiguous
}

// NewVecZnx allocates a new zero-valued VecZnx.
func NewVecZnx(n, cols, size int) *VecZnx {
	v := new(VecZnx)
	v.FromBuffer(n, cols, size, make([]int64, v.BufferSize(n, cols, size)))
	return v
}

// BufferSize returns the minimum buffer size to instantiate the
// receiver through FromBuffer.
func (v *VecZnx) BufferSize(n, cols, size int) int {
	return n * cols * size
}

// FromBuffer assigns a new backing array to the receiver.
func (v *VecZnx) FromBuffer(n, cols, size int, buf []int64) *VecZnx {
	if want := v.BufferSize(n, cols, size); len(buf) < want {
		panic(fmt.Errorf("VecZnx.FromBuffer: len(buf)=%d < %d", len(buf), want))
	}
	v.n, v.cols, v.size = n, cols, size
	v.data = buf[:n*cols*size]
	return v
}

func (v *VecZnx) N() int    { return v.n }
func (v *VecZnx) Cols() int { return v.cols }
func (v *VecZnx) Size() int { return v.size }
func (v *VecZnx) Rank() int { return v.cols - 1 }

// At returns the length-N coefficient slice of column col, limb limb.
func (v *VecZnx) At(col, limb int) []int64 {
	off := (col*v.size + limb) * v.n
	return v.data[off : off+v.n]
}

// Limbs returns all Size limbs of column col, least-significant first.
func (v *VecZnx) Limbs(col int) [][]int64 {
	out := make([][]int64, v.size)
	for l := 0; l < v.size; l++ {
		out[l] = v.At(col, l)
	}
	return out
}

// Zero zeroes every limb of every column.
func (v *VecZnx) Zero() {
	for i := range v.data {
		v.data[i] = 0
	}
}

// Copy copies other into the receiver, up to the shared shape.
func (v *VecZnx) Copy(other *VecZnx) {
	cols := min(v.cols, other.cols)
	size := min(v.size, other.size)
	for c := 0; c < cols; c++ {
		for l := 0; l < size; l++ {
			copy(v.At(c, l), other.At(c, l))
		}
	}
}

// Clone returns a deep copy of the receiver.
func (v *VecZnx) Clone() *VecZnx {
	c := NewVecZnx(v.n, v.cols, v.size)
	copy(c.data, v.data)
	return c
}

// Equal performs a deep comparison.
func (v *VecZnx) Equal(other *VecZnx) bool {
	return v.n == other.n && v.cols == other.cols && v.size == other.size && cmp.Equal(v.data, other.data)
}

// Add computes v = a + b per-limb, per-column (spec.md §4.7).
func (v *VecZnx) Add(a, b *VecZnx) {
	v.perLimb2(a, b, ZnxAdd)
}

// Sub computes v = a - b per-limb, per-column.
func (v *VecZnx) Sub(a, b *VecZnx) {
	v.perLimb2(a, b, ZnxSub)
}

// Negate computes v = -a per-limb, per-column.
func (v *VecZnx) Negate(a *VecZnx) {
	for c := 0; c < v.cols; c++ {
		for l := 0; l < v.size; l++ {
			ZnxNegate(a.At(c, l), v.At(c, l))
		}
	}
}

func (v *VecZnx) perLimb2(a, b *VecZnx, f func(a, b, out []int64)) {
	for c := 0; c < v.cols; c++ {
		for l := 0; l < v.size; l++ {
			f(a.At(c, l), b.At(c, l), v.At(c, l))
		}
	}
}

// Rotate computes v = a * X^p mod (X^N+1) per-limb, per-column.
func (v *VecZnx) Rotate(p int, a *VecZnx) {
	for c := 0; c < v.cols; c++ {
		for l := 0; l < v.size; l++ {
			ZnxRotate(p, a.At(c, l), v.At(c, l))
		}
	}
}

// Automorphism computes v = a(X^k) per-limb, per-column.
func (v *VecZnx) Automorphism(k int, a *VecZnx) {
	for c := 0; c < v.cols; c++ {
		for l := 0; l < v.size; l++ {
			ZnxAutomorphism(k, a.At(c, l), v.At(c, l))
		}
	}
}

// Normalize performs base-2^k carry propagation on every column of the
// receiver in place (spec.md §4.3), using carry as scratch (length N).
func (v *VecZnx) Normalize(base2k int, carry []int64) {
	for c := 0; c < v.cols; c++ {
		normalizeChain(base2k, v.Limbs(c), carry)
	}
}

// Rsh right-shifts the multi-limb coefficient value of every column by
// k bits (0 < k < base2k), bringing the low k bits of each limb down
// from the next-more-significant limb. GLWE inherits it through its
// embedded VecZnx.
func (v *VecZnx) Rsh(base2k, k int, _ []int64) {
	lowMask := (int64(1) << uint(k)) - 1
	for c := 0; c < v.cols; c++ {
		limbs := v.Limbs(c)
		for l := 0; l < v.size; l++ {
			for i := 0; i < v.n; i++ {
				var hi int64
				if l+1 < v.size {
					hi = limbs[l+1][i] & lowMask
				}
				limbs[l][i] = (limbs[l][i] >> uint(k)) | (hi << uint(base2k-k))
			}
		}
	}
}

// BinarySize returns the serialized size of the receiver in bytes per
// the §6 wire layout.
func (v *VecZnx) BinarySize() int {
	return 8*5 + len(v.data)*8
}

// WriteTo implements io.WriterTo per spec.md §6's VecZnx layout:
// u64 n, u64 cols, u64 size, u64 max_size, u64 len, bytes[len].
func (v *VecZnx) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		fields := []uint64{uint64(v.n), uint64(v.cols), uint64(v.size), uint64(v.size), uint64(len(v.data) * 8)}
		for _, f := range fields {
			if inc, err = buffer.WriteUint64(w, f); err != nil {
				return n + inc, err
			}
			n += inc
		}
		if inc, err = buffer.WriteAsUint64Slice[int64](w, v.data); err != nil {
			return n + inc, err
		}
		n += inc
		return n, w.Flush()
	default:
		return v.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom implements io.ReaderFrom, the dual of WriteTo. Returns
// ErrInvalidData if the declared length is inconsistent with n*cols*size*8.
func (v *VecZnx) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		var nn, cols, size, maxSize, length uint64
		for _, f := range []*uint64{&nn, &cols, &size, &maxSize, &length} {
			if inc, err = buffer.ReadUint64(r, f); err != nil {
				return n + inc, err
			}
			n += inc
		}
		if length != nn*cols*size*8 {
			return n, fmt.Errorf("%w: declared len=%d != n*cols*size*8=%d", ErrInvalidData, length, nn*cols*size*8)
		}
		v.FromBuffer(int(nn), int(cols), int(size), make([]int64, nn*cols*size))
		if inc, err = buffer.ReadAsUint64Slice[int64](r, v.data); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return v.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the receiver into a newly allocated byte slice.
func (v *VecZnx) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(v.BinarySize())
	_, err := v.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice produced by MarshalBinary.
func (v *VecZnx) UnmarshalBinary(p []byte) error {
	_, err := v.ReadFrom(buffer.NewBuffer(p))
	return err
}
