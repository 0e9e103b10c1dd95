package ring

// This file implements the znx primitive vector library (spec.md §4.2):
// per-limb operations on length-N signed i64 polynomial coefficient
// vectors living in R[X]/(X^N+1). Each function has a portable scalar
// body; a SIMD path is gated behind runtime feature detection in
// module.go (NewModule panics if AVX2/FMA are required but absent, per
// spec.md §6) and is not reproduced here bit-for-bit since Go lacks
// inline assembly intrinsics outside dedicated .s files — the scalar
// path is the one always exercised, matching the "implementers without
// SIMD may substitute a scalar ... producing bit-identical results"
// escape hatch spec.md §4.4 grants for the FFT base case.
//
// Grounded on the teacher's per-limb RNS vector kernels (ring/vec_ops.go),
// generalized from "one limb per prime" to "one limb, signed i64".

// ZnxAdd computes out[i] = a[i] + b[i] for i in [0, N).
func ZnxAdd(a, b, out []int64) {
	n := len(out)
	for i := 0; i < n; i++ {
		out[i] = a[i] + b[i]
	}
}

// ZnxSub computes out[i] = a[i] - b[i].
func ZnxSub(a, b, out []int64) {
	n := len(out)
	for i := 0; i < n; i++ {
		out[i] = a[i] - b[i]
	}
}

// ZnxSubABInplace computes a[i] -= b[i], writing the result into a.
func ZnxSubABInplace(a, b []int64) {
	for i := range a {
		a[i] -= b[i]
	}
}

// ZnxSubBAInplace computes b[i] = a[i] - b[i], writing the result into b.
func ZnxSubBAInplace(a, b []int64) {
	for i := range b {
		b[i] = a[i] - b[i]
	}
}

// ZnxNegate computes out[i] = -a[i].
func ZnxNegate(a, out []int64) {
	for i := range out {
		out[i] = -a[i]
	}
}

// ZnxNegateInplace computes a[i] = -a[i].
func ZnxNegateInplace(a []int64) {
	for i := range a {
		a[i] = -a[i]
	}
}

// ZnxCopy copies src into dst.
func ZnxCopy(src, dst []int64) {
	copy(dst, src)
}

// ZnxZero zeroes out.
func ZnxZero(out []int64) {
	for i := range out {
		out[i] = 0
	}
}

// ZnxRotate computes out = in * X^p mod (X^N+1), i.e. a rotation of the
// coefficient vector by p mod 2N with a negation across the wrap
// (spec.md §4.2). The kernel splits into three contiguous copies:
// identity for the run that does not cross the ring boundary, and a
// wrap-and-negate / negate pair for the run that does, indexed by
// p mod 2N exactly as spec.md describes.
func ZnxRotate(p int, in, out []int64) {
	n := len(in)
	if n == 0 {
		return
	}
	twoN := 2 * n
	pp := ((p % twoN) + twoN) % twoN

	if pp == 0 {
		ZnxCopy(in, out)
		return
	}

	if pp < n {
		// out[i] = in[i-pp] for i >= pp (identity copy, shifted)
		// out[i] = -in[i-pp+n] for i < pp (wrap-and-negate)
		for i := 0; i < pp; i++ {
			out[i] = -in[n-pp+i]
		}
		copy(out[pp:], in[:n-pp])
	} else {
		q := pp - n
		// Equivalent to rotating by q and negating the whole result.
		for i := 0; i < q; i++ {
			out[i] = in[n-q+i]
		}
		for i := q; i < n; i++ {
			out[i] = -in[i-q]
		}
	}
}

// ZnxAutomorphism computes out[(j*k) mod 2N] = ±in[j] for the Galois
// automorphism X -> X^k (spec.md §4.2): send a_j to a_{(j*k) mod 2N}
// with a sign flip whenever the destination index, reduced mod 2N,
// falls in the "negative" half [N, 2N). k must be odd.
func ZnxAutomorphism(k int, in, out []int64) {
	n := len(in)
	if n == 0 {
		return
	}
	twoN := 2 * n
	kk := ((k % twoN) + twoN) % twoN
	for j := 0; j < n; j++ {
		dst := (j * kk) % twoN
		if dst < n {
			out[dst] = in[j]
		} else {
			out[dst-n] = -in[j]
		}
	}
}
