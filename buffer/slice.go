package buffer

import (
	"unsafe"
)

// WriteAsUint64Slice writes len(s) elements of a uint64-sized type as raw
// little-endian words, without an intermediate per-element loop when the
// host is little-endian (the only architecture this engine targets, per
// the AVX2/FMA requirement in §6).
func WriteAsUint64Slice[T any](w Writer, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	if _, err := w.Write(b); err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

func ReadAsUint64Slice[T any](r Reader, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	n, err := ioReadFull(r, b)
	return int64(n), err
}

func WriteAsUint32Slice[T any](w Writer, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	if _, err := w.Write(b); err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

func ReadAsUint32Slice[T any](r Reader, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	n, err := ioReadFull(r, b)
	return int64(n), err
}

func WriteAsUint16Slice[T any](w Writer, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*2)
	if _, err := w.Write(b); err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

func ReadAsUint16Slice[T any](r Reader, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*2)
	n, err := ioReadFull(r, b)
	return int64(n), err
}

func WriteAsUint8Slice[T any](w Writer, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
	if _, err := w.Write(b); err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

func ReadAsUint8Slice[T any](r Reader, s []T) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
	n, err := ioReadFull(r, b)
	return int64(n), err
}

func ioReadFull(r Reader, b []byte) (int, error) {
	total := 0
	for total < len(b) {
		n, err := r.Read(b[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// EqualAsUint64Slice, EqualAsUint32Slice, EqualAsUint16Slice, EqualAsUint8Slice
// compare two slices of fixed-width scalar types element-wise.
func EqualAsUint64Slice[T comparable](a, b []T) bool { return equalSlice(a, b) }
func EqualAsUint32Slice[T comparable](a, b []T) bool { return equalSlice(a, b) }
func EqualAsUint16Slice[T comparable](a, b []T) bool { return equalSlice(a, b) }
func EqualAsUint8Slice[T comparable](a, b []T) bool  { return equalSlice(a, b) }

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
