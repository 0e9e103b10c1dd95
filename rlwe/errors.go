package rlwe

import "errors"

// ErrInvalidData is returned by ReadFrom/UnmarshalBinary when the
// serialized payload is internally inconsistent (wrong tag, length
// mismatch against declared shape, ...).
var ErrInvalidData = errors.New("invalid data")
