package ring

// MulPoly computes the negacyclic product a*b mod (X^N+1) via the
// module's FFT64 backend: forward-transform both operands, multiply
// pointwise in the transformed domain, and invert. Coefficients of a
// and b are expected small enough that the float64 DFT round-trip
// stays within the backend's documented error bound (spec.md §8
// invariant 2).
func (m *Module) MulPoly(a, b []int64) []int64 {
	n := len(a)
	table := m.FFT64()
	abuf := make([]float64, n)
	bbuf := make([]float64, n)
	for i := range a {
		abuf[i] = float64(a[i])
		bbuf[i] = float64(b[i])
	}
	are, aim := make([]float64, n/2), make([]float64, n/2)
	bre, bim := make([]float64, n/2), make([]float64, n/2)
	table.Forward(abuf, are, aim)
	table.Forward(bbuf, bre, bim)
	pre, pim := make([]float64, n/2), make([]float64, n/2)
	for i := range are {
		pre[i] = are[i]*bre[i] - aim[i]*bim[i]
		pim[i] = are[i]*bim[i] + aim[i]*bre[i]
	}
	out := make([]float64, n)
	table.Inverse(pre, pim, out)
	res := make([]int64, n)
	for i, v := range out {
		res[i] = int64(roundToEven(v))
	}
	return res
}

// MulAddPoly computes out += a*b mod (X^N+1).
func (m *Module) MulAddPoly(a, b, out []int64) {
	p := m.MulPoly(a, b)
	for i := range out {
		out[i] += p[i]
	}
}
