package ring

import "errors"

// ErrInvalidData is returned by ReadFrom when a container's declared
// metadata is internally inconsistent (e.g. declared n*cols*size*8 !=
// payload length), per spec.md §7's serialization error taxonomy.
var ErrInvalidData = errors.New("invalid data")
