package ring

// Normalization implements base-2^k carry-propagation of multi-limb
// polynomial coefficients (spec.md §4.3). A coefficient with "size"
// limbs base2k bits wide is written, after normalization, as a sequence
// of digits in (-2^(base2k-1), 2^(base2k-1)] plus a final carry-out.
//
// Grounded on the teacher's digit-decomposition helpers in
// rlwe/digit_decomposition.go (Unsigned/Signed/SignedBalanced variants),
// generalized into the four-step carry chain spec.md §4.3 names:
// first-step, middle-step, final-step, and carry-only.
//
// Overflow policy: all limb arithmetic below uses Go's native wrapping
// two's-complement semantics (no overflow checks); per spec.md §4.3 the
// digit-extraction formula is correct regardless of intermediate
// overflow so long as the true unnormalized value fits the bound the
// caller documents.

// digitAndCarry extracts the canonical digit in (-2^(base2k-1),
// 2^(base2k-1)] from x and the exact carry (x-digit)>>base2k.
func digitAndCarry(base2k int, x int64) (digit, carry int64) {
	half := int64(1) << (base2k - 1)
	b := int64(1) << base2k
	r := x & (b - 1) // in [0, b-1]
	if r <= half {
		digit = r
	} else {
		digit = r - b
	}
	carry = (x - digit) >> uint(base2k)
	return
}

// NormalizeFirstStep processes the least-significant limb of in,
// writing the canonical digit to outDigit and the propagated carry to
// carry (length N each). lsh, if non-zero, left-shifts the input view
// by lsh bits (0 <= lsh < base2k) before normalizing, equivalent to
// scaling by 2^lsh first.
func NormalizeFirstStep(base2k, lsh int, in, outDigit, carry []int64) {
	for i := range in {
		x := in[i] << uint(lsh)
		d, c := digitAndCarry(base2k, x)
		outDigit[i] = d
		carry[i] = c
	}
}

// NormalizeMiddleStep adds the incoming carry to the current limb and
// produces a new digit/carry pair.
func NormalizeMiddleStep(base2k, lsh int, in, carryIn, outDigit, carryOut []int64) {
	for i := range in {
		x := (in[i] << uint(lsh)) + carryIn[i]
		d, c := digitAndCarry(base2k, x)
		outDigit[i] = d
		carryOut[i] = c
	}
}

// NormalizeFinalStep adds the incoming carry to the most-significant
// limb and writes the final digit; the top limb of a gadget object is
// allowed to exceed the (-half, half] bound (it absorbs whatever carry
// remains), so no further digit extraction happens here.
func NormalizeFinalStep(base2k, lsh int, in, carryIn, outDigit []int64) {
	for i := range in {
		outDigit[i] = (in[i] << uint(lsh)) + carryIn[i]
	}
}

// NormalizeCarryOnly propagates the carry chain without rewriting the
// source digit, used when only the residual carry is needed.
func NormalizeCarryOnly(base2k int, in, carryIn, carryOut []int64) {
	for i := range in {
		_, c := digitAndCarry(base2k, in[i]+carryIn[i])
		carryOut[i] = c
	}
}

// NormalizeFirstStepInPlace is the in-place form of NormalizeFirstStep
// (digit written back into inout, carry into the caller-provided buffer).
func NormalizeFirstStepInPlace(base2k int, inout, carry []int64) {
	NormalizeFirstStep(base2k, 0, inout, inout, carry)
}

// NormalizeMiddleStepInPlace is the in-place form of NormalizeMiddleStep.
func NormalizeMiddleStepInPlace(base2k int, inout, carry []int64) {
	NormalizeMiddleStep(base2k, 0, inout, carry, inout, carry)
}

// normalizeChain composes the four steps over a full multi-limb
// coefficient vector laid out as `size` contiguous length-N slices
// (least-significant limb first), writing the normalized digits back
// in place. Used by VecZnx.Normalize. Idempotent: calling it twice in a
// row leaves every digit unchanged (spec.md §8 invariant 3), since a
// second pass sees an all-zero carry and re-extracts the same digit
// from an already-canonical limb.
func normalizeChain(base2k int, limbs [][]int64, carry []int64) {
	size := len(limbs)
	if size == 0 {
		return
	}
	n := len(limbs[0])
	if len(carry) < n {
		panic("normalizeChain: carry buffer too small")
	}
	for i := range carry {
		carry[i] = 0
	}

	if size == 1 {
		// The sole limb is simultaneously the bottom and top limb of the
		// chain; per the top-limb rule (NormalizeFinalStep) it is left
		// unreduced rather than digit-extracted, so it must not go
		// through NormalizeFirstStepInPlace.
		return
	}

	NormalizeFirstStepInPlace(base2k, limbs[0], carry)
	for l := 1; l < size-1; l++ {
		NormalizeMiddleStepInPlace(base2k, limbs[l], carry)
	}
	NormalizeFinalStep(base2k, 0, limbs[size-1], carry, limbs[size-1])
}
