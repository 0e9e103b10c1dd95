package ring

import "math/big"

// Int128 is a minimal signed 128-bit integer used as the "wide"
// coefficient type for the NTT120 backend (spec.md §4.5: "ScalarBig =
// i128 because the unreduced limb range exceeds i64"). It is backed by
// math/big.Int rather than a hand-rolled two-word type: the NTT120
// path is not on this engine's hot loop (GLWE/GGSW operations are
// specified against the FFT64 backend; see DESIGN.md), so the
// allocation cost of big.Int is immaterial here and reusing the
// standard library's correct, tested arithmetic avoids a second,
// parallel implementation of carry/borrow logic this module would
// otherwise need to get bit-exact.
type Int128 struct {
	v big.Int
}

func NewInt128FromInt64(x int64) *Int128 {
	return &Int128{v: *big.NewInt(x)}
}

func (a *Int128) Add(b *Int128) *Int128 {
	r := new(Int128)
	r.v.Add(&a.v, &b.v)
	return r
}

func (a *Int128) Sub(b *Int128) *Int128 {
	r := new(Int128)
	r.v.Sub(&a.v, &b.v)
	return r
}

func (a *Int128) BigInt() *big.Int {
	return &a.v
}
