package ring

// SvpPPol is a single prepared (transformed-domain) polynomial used for
// fast scalar-by-vector products (spec.md §3): multiplying a plaintext
// scalar polynomial against every limb of a VecZnxDft without
// re-transforming the scalar each time.
type SvpPPol struct {
	n      int
	re, im []float64 // length M
}

// NewSvpPPol allocates a new zero-valued SvpPPol.
func NewSvpPPol(n int) *SvpPPol {
	m := n / 2
	return &SvpPPol{n: n, re: make([]float64, m), im: make([]float64, m)}
}

func (p *SvpPPol) N() int { return p.n }
func (p *SvpPPol) M() int { return p.n / 2 }

// Prepare fills the receiver with the forward FFT64 transform of a.
func (p *SvpPPol) Prepare(table *FFT64Table, a []int64) {
	buf := make([]float64, p.n)
	for i, v := range a {
		buf[i] = float64(v)
	}
	table.Forward(buf, p.re, p.im)
}

// Apply computes out = p * a (pointwise complex product) for every
// limb of a's column col, overwriting out's limbs of column col.
func (p *SvpPPol) Apply(a *VecZnxDft, col int, out *VecZnxDft) {
	for l := 0; l < a.Size(); l++ {
		are, aim := a.At(col, l)
		ore, oim := out.At(col, l)
		for i := range are {
			// (are+i*aim)*(p.re+i*p.im)
			ore[i] = are[i]*p.re[i] - aim[i]*p.im[i]
			oim[i] = are[i]*p.im[i] + aim[i]*p.re[i]
		}
	}
}
