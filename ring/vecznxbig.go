package ring

// VecZnxBig has the same Cols*Size*N shape as VecZnx but its
// coefficients are "wide": the result of an unnormalized addition or
// an inverse transform, not yet digit-decomposed (spec.md §3). For the
// FFT64 backend the wide element type is int64, matching spec.md §4.4
// (the teacher's backends never need a separate big-coefficient type
// since RNS limbs never exceed 64 bits; this type exists purely to
// carry the "not yet normalized" distinction spec.md's data model
// requires). There is no NTT120 counterpart of this type: NTT120's
// CRT reconstruction into *Int128 (NTT120Table.CRTReconstruct) is a
// standalone operation that no VecZnxBig variant wraps.
type VecZnxBig struct {
	VecZnx
}

// NewVecZnxBig allocates a new zero-valued VecZnxBig.
func NewVecZnxBig(n, cols, size int) *VecZnxBig {
	return &VecZnxBig{*NewVecZnx(n, cols, size)}
}

// Normalize reduces the wide (possibly out-of-bound) limbs back to
// canonical base-2^k digits, writing the result into a plain VecZnx.
func (b *VecZnxBig) Normalize(base2k int, out *VecZnx, carry []int64) {
	out.Copy(&b.VecZnx)
	out.Normalize(base2k, carry)
}
