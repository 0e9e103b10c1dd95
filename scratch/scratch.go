// Package scratch implements the bump-allocated arena that the rest of
// the engine uses for every temporary buffer on the hot path (spec.md
// §4.1). A ScratchOwned owns the backing array; a Scratch is a borrowed,
// 64-byte-aligned view into it. Every take_<T> operation hands back a
// typed sub-view plus the remainder of the arena, the moral equivalent
// of a bump pointer with an explicit Mark/Reset boundary at each call
// site (spec.md §9, "Scratch as arena+indices").
//
// Go has no borrow checker, so the linear discipline spec.md §4.9
// describes ("take_* transitions the nominal top pointer forward;
// dropping the inner reference restores it") is enforced here by scope:
// a Scratch returned by a take_* call must not be read from after a
// sibling Scratch derived from the same parent has been taken later in
// program order. This mirrors the teacher's FromBuffer/BufferSize
// convention (ring/structs.go, rlwe/gadgetciphertext.go), generalized
// from "one fixed container shape" to "any number of typed sub-takes".
package scratch

import "fmt"

const alignment = 64

// ScratchOwned owns a byte arena and hands out Scratch views into it.
type ScratchOwned struct {
	buf []byte
}

// NewScratchOwned allocates an arena of the given capacity in bytes.
func NewScratchOwned(capacity int) *ScratchOwned {
	return &ScratchOwned{buf: make([]byte, capacity)}
}

// Scratch returns a borrowed, 64-byte-aligned view spanning the whole
// arena.
func (s *ScratchOwned) Scratch() *Scratch {
	return newScratch(s.buf)
}

// Scratch is a borrowed, bump-allocated view into an arena. All take_*
// methods return the requested typed view together with the remaining
// Scratch past it; the aligned start is advanced to the first 64-byte
// boundary within buf.
type Scratch struct {
	buf    []byte
	offset int // first 64-byte-aligned offset within buf
}

func newScratch(buf []byte) *Scratch {
	s := &Scratch{buf: buf}
	s.offset = alignOffset(buf)
	return s
}

func alignOffset(buf []byte) int {
	// The padding is computed from the address of the backing array's
	// first byte (sliceAddr, via unsafe): the number of bytes to skip so
	// that the first take starts on a 64-byte boundary.
	if len(buf) == 0 {
		return 0
	}
	addr := sliceAddr(buf)
	rem := addr % alignment
	if rem == 0 {
		return 0
	}
	return int(alignment - rem)
}

// Available reports the number of bytes available from the aligned
// start to the end of the view.
func (s *Scratch) Available() int {
	if s.offset > len(s.buf) {
		return 0
	}
	return len(s.buf) - s.offset
}

// take reserves n bytes from the aligned start and returns the reserved
// slice together with the remaining Scratch. It panics if n exceeds
// Available(), per spec.md §4.1's take_* contract.
func (s *Scratch) take(n int) ([]byte, *Scratch) {
	avail := s.Available()
	if n > avail {
		panic(fmt.Errorf("scratch: take(%d) exceeds available(%d)", n, avail))
	}
	out := s.buf[s.offset : s.offset+n]
	rest := newScratch(s.buf[s.offset+n:])
	return out, rest
}

// TakeBytes reserves a raw byte slice of size n.
func (s *Scratch) TakeBytes(n int) ([]byte, *Scratch) {
	return s.take(n)
}

// TakeZeroBytes is TakeBytes with the returned slice zeroed; the zero
// fill is opt-in because uninitialized bytes are the norm on the hot
// path (spec.md §4.1).
func (s *Scratch) TakeZeroBytes(n int) ([]byte, *Scratch) {
	b, rest := s.take(n)
	for i := range b {
		b[i] = 0
	}
	return b, rest
}

// TakeSlice reserves room for n elements of type T and returns it typed.
func TakeSlice[T any](s *Scratch, n int) ([]T, *Scratch) {
	var zero T
	size := int(sizeOf(zero)) * n
	b, rest := s.take(size)
	return reinterpret[T](b, n), rest
}

// TakeSliceZero is TakeSlice with the returned slice zeroed.
func TakeSliceZero[T any](s *Scratch, n int) ([]T, *Scratch) {
	out, rest := TakeSlice[T](s, n)
	var zero T
	for i := range out {
		out[i] = zero
	}
	return out, rest
}
