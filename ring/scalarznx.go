package ring

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
	"github.com/google/go-cmp/cmp"
)

// ScalarZnx stores Cols polynomials of N signed i64 coefficients each
// (spec.md §3): one limb per column, used for secret keys and
// single-polynomial scalars. Grounded on the teacher's BufferSize/
// FromBuffer allocation convention (ring/structs.go, rlwe/gadgetciphertext.go).
type ScalarZnx struct {
	n, cols int
	data    []int64 // cols * n, column-major contiguous
}

// NewScalarZnx allocates a new zero-valued ScalarZnx.
func NewScalarZnx(n, cols int) *ScalarZnx {
	z := new(ScalarZnx)
	z.FromBuffer(n, cols, make([]int64, z.BufferSize(n, cols)))
	return z
}

// BufferSize returns the minimum buffer size to instantiate the
// receiver through FromBuffer.
func (z *ScalarZnx) BufferSize(n, cols int) int {
	return n * cols
}

// FromBuffer assigns a new backing array to the receiver. Panics if
// len(buf) is smaller than BufferSize(n, cols).
func (z *ScalarZnx) FromBuffer(n, cols int, buf []int64) *ScalarZnx {
	if size := z.BufferSize(n, cols); len(buf) < size {
		panic(fmt.Errorf("ScalarZnx.FromBuffer: len(buf)=%d < %d", len(buf), size))
	}
	z.n = n
	z.cols = cols
	z.data = buf[:n*cols]
	return z
}

// N returns the ring degree of the receiver.
func (z *ScalarZnx) N() int { return z.n }

// Cols returns the number of columns of the receiver.
func (z *ScalarZnx) Cols() int { return z.cols }

// At returns the length-N coefficient slice of column i.
func (z *ScalarZnx) At(i int) []int64 {
	return z.data[i*z.n : (i+1)*z.n]
}

// Zero zeroes every column.
func (z *ScalarZnx) Zero() {
	for i := range z.data {
		z.data[i] = 0
	}
}

// Copy copies other into the receiver, up to the minimum shared shape.
func (z *ScalarZnx) Copy(other *ScalarZnx) {
	for i := 0; i < min(z.cols, other.cols); i++ {
		copy(z.At(i), other.At(i))
	}
}

// Clone returns a deep copy of the receiver.
func (z *ScalarZnx) Clone() *ScalarZnx {
	c := NewScalarZnx(z.n, z.cols)
	copy(c.data, z.data)
	return c
}

// Equal performs a deep comparison.
func (z *ScalarZnx) Equal(other *ScalarZnx) bool {
	return z.n == other.n && z.cols == other.cols && cmp.Equal(z.data, other.data)
}

// BinarySize returns the serialized size of the receiver in bytes,
// matching the VecZnx wire layout in spec.md §6 with size=1.
func (z *ScalarZnx) BinarySize() int {
	return 8*5 + z.n*z.cols*8
}

// WriteTo implements io.WriterTo, writing the §6 VecZnx-shaped header
// (n, cols, size=1, max_size=1, len) followed by the raw coefficients.
func (z *ScalarZnx) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		fields := []uint64{uint64(z.n), uint64(z.cols), 1, 1, uint64(len(z.data) * 8)}
		for _, f := range fields {
			if inc, err = buffer.WriteUint64(w, f); err != nil {
				return n + inc, err
			}
			n += inc
		}
		if inc, err = buffer.WriteAsUint64Slice[int64](w, z.data); err != nil {
			return n + inc, err
		}
		n += inc
		return n, w.Flush()
	default:
		return z.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom implements io.ReaderFrom, the dual of WriteTo.
func (z *ScalarZnx) ReadFrom(r io.Reader) (n int64, err error) {
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
		z.FromBuffer(int(nn), int(cols), make([]int64, nn*cols))
		if inc, err = buffer.ReadAsUint64Slice[int64](r, z.data); err != nil {
			return n + inc, err
		}
		n += inc
		return n, nil
	default:
		return z.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the receiver into a newly allocated byte slice.
func (z *ScalarZnx) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(z.BinarySize())
	_, err := z.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice produced by MarshalBinary.
func (z *ScalarZnx) UnmarshalBinary(p []byte) error {
	_, err := z.ReadFrom(buffer.NewBuffer(p))
	return err
}
