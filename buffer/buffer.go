// Package buffer implements small io.Writer/io.Reader helpers used
// throughout poulpy to serialize containers to a bit-exact, little-endian,
// unpadded wire format without incurring bufio's allocation overhead when
// the destination already supports direct, flush-free access.
package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer is the interface a destination must implement to avoid being
// wrapped in a bufio.Writer. Flush is a no-op for in-memory destinations.
type Writer interface {
	io.Writer
	Flush() error
}

// Reader is the interface a source must implement to avoid being wrapped
// in a bufio.Reader.
type Reader interface {
	io.Reader
	io.ByteReader
}

// Buffer is a []byte-backed Writer and Reader. It never allocates past
// its initial capacity: writes beyond len(buf) return io.ErrShortBuffer.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer wraps an existing slice for reading and/or writing in place.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{buf: buf}
}

// NewBufferSize allocates a new zero-valued buffer of the given size.
func NewBufferSize(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// Bytes returns the full backing slice.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

func (b *Buffer) Write(p []byte) (n int, err error) {
	if b.pos+len(p) > len(b.buf) {
		return 0, io.ErrShortBuffer
	}
	n = copy(b.buf[b.pos:], p)
	b.pos += n
	return
}

func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.pos >= len(b.buf) {
		return 0, io.EOF
	}
	n = copy(p, b.buf[b.pos:])
	b.pos += n
	return
}

func (b *Buffer) ReadByte() (byte, error) {
	if b.pos >= len(b.buf) {
		return 0, io.EOF
	}
	c := b.buf[b.pos]
	b.pos++
	return c, nil
}

// Flush is a no-op: Buffer writes directly into its backing array.
func (b *Buffer) Flush() error {
	return nil
}

// wireInt is the set of primitive kinds the generic helpers below accept
// besides their matching unsigned integer width.
type wireInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func WriteUint8(w Writer, v uint8) (int64, error) {
	_, err := w.Write([]byte{v})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func ReadUint8(r Reader, v *uint8) (int64, error) {
	c, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	*v = c
	return 1, nil
}

func WriteUint32(w Writer, v uint32) (int64, error) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return 0, err
	}
	return 4, nil
}

func ReadUint32(r Reader, v *uint32) (int64, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	*v = binary.LittleEndian.Uint32(b[:])
	return 4, nil
}

func WriteUint64(w Writer, v uint64) (int64, error) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return 0, err
	}
	return 8, nil
}

func ReadUint64(r Reader, v *uint64) (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	*v = binary.LittleEndian.Uint64(b[:])
	return 8, nil
}

// WriteAsUint8 writes a narrow scalar (bool-sized enums, small ints) as
// a single byte.
func WriteAsUint8[T wireInt](w Writer, v T) (int64, error) {
	return WriteUint8(w, uint8(v))
}

func ReadAsUint8[T wireInt](r Reader, v *T) (int64, error) {
	var u uint8
	n, err := ReadUint8(r, &u)
	*v = T(u)
	return n, err
}

// WriteAsUint64 writes any integer-or-float-sized scalar T (int, int64,
// uint64, float64, and their aliases) as a fixed 8-byte little-endian word.
func WriteAsUint64[T any](w Writer, v T) (int64, error) {
	return WriteUint64(w, toUint64(v))
}

func ReadAsUint64[T any](r Reader, v *T) (int64, error) {
	var u uint64
	n, err := ReadUint64(r, &u)
	if err != nil {
		return n, err
	}
	fromUint64(u, v)
	return n, nil
}

func toUint64(v any) uint64 {
	switch x := v.(type) {
	case int:
		return uint64(x)
	case int64:
		return uint64(x)
	case uint:
		return uint64(x)
	case uint64:
		return x
	case float64:
		return float64bits(x)
	default:
		panic(fmt.Errorf("toUint64: unsupported type %T", v))
	}
}

func float64bits(f float64) uint64   { return math.Float64bits(f) }
func float64frombits(u uint64) float64 { return math.Float64frombits(u) }

func fromUint64[T any](u uint64, v *T) {
	switch p := any(v).(type) {
	case *int:
		*p = int(u)
	case *int64:
		*p = int64(u)
	case *uint:
		*p = uint(u)
	case *uint64:
		*p = u
	case *float64:
		*p = float64frombits(u)
	default:
		panic(fmt.Errorf("fromUint64: unsupported type %T", v))
	}
}
