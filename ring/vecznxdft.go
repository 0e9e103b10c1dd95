package ring

import "fmt"

// VecZnxDft stores a VecZnx-shaped vector in the transformed domain
// (spec.md §3). For the FFT64 backend each logical (col, limb)
// polynomial is represented by its length-M = N/2 real and imaginary
// parts, stored in separate planes as spec.md §4.4 requires ("elements
// stored in separate real and imaginary sub-vectors").
type VecZnxDft struct {
	n, cols, size int
	re, im        []float64 // cols*size*M each
}

// NewVecZnxDft allocates a new zero-valued VecZnxDft for ring degree n.
func NewVecZnxDft(n, cols, size int) *VecZnxDft {
	m := n / 2
	return &VecZnxDft{
		n: n, cols: cols, size: size,
		re: make([]float64, cols*size*m),
		im: make([]float64, cols*size*m),
	}
}

func (d *VecZnxDft) N() int    { return d.n }
func (d *VecZnxDft) Cols() int { return d.cols }
func (d *VecZnxDft) Size() int { return d.size }
func (d *VecZnxDft) M() int    { return d.n / 2 }

// At returns the real and imaginary length-M planes of column col,
// limb limb.
func (d *VecZnxDft) At(col, limb int) (re, im []float64) {
	m := d.M()
	off := (col*d.size + limb) * m
	return d.re[off : off+m], d.im[off : off+m]
}

// Zero zeroes every plane.
func (d *VecZnxDft) Zero() {
	for i := range d.re {
		d.re[i] = 0
		d.im[i] = 0
	}
}

// DFT fills the receiver by applying the forward FFT64 transform to
// every (col, limb) polynomial of v.
func (d *VecZnxDft) DFT(table *FFT64Table, v *VecZnx) {
	if d.n != v.N() || d.cols != v.Cols() || d.size != v.Size() {
		panic(fmt.Errorf("VecZnxDft.DFT: shape mismatch"))
	}
	m := d.M()
	buf := make([]float64, v.N())
	for c := 0; c < d.cols; c++ {
		for l := 0; l < d.size; l++ {
			src := v.At(c, l)
			for i := 0; i < v.N(); i++ {
				buf[i] = float64(src[i])
			}
			re, im := d.At(c, l)
			table.Forward(buf, re, im)
		}
		_ = m
	}
}

// IDFT applies the inverse FFT64 transform of every (col, limb) plane
// into the corresponding wide coefficients of out.
func (d *VecZnxDft) IDFT(table *FFT64Table, out *VecZnxBig) {
	if d.n != out.N() || d.cols != out.Cols() || d.size != out.Size() {
		panic(fmt.Errorf("VecZnxDft.IDFT: shape mismatch"))
	}
	reTmp := make([]float64, d.M())
	imTmp := make([]float64, d.M())
	x := make([]float64, d.n)
	for c := 0; c < d.cols; c++ {
		for l := 0; l < d.size; l++ {
			re, im := d.At(c, l)
			copy(reTmp, re)
			copy(imTmp, im)
			table.Inverse(reTmp, imTmp, x)
			dst := out.At(c, l)
			for i := 0; i < d.n; i++ {
				dst[i] = int64(roundToEven(x[i]))
			}
		}
	}
}

func roundToEven(x float64) float64 {
	f := float64(int64(x))
	if x-f >= 0.5 {
		return f + 1
	}
	if x-f <= -0.5 {
		return f - 1
	}
	return f
}

// Add accumulates other into the receiver, per plane.
func (d *VecZnxDft) Add(other *VecZnxDft) {
	for i := range d.re {
		d.re[i] += other.re[i]
		d.im[i] += other.im[i]
	}
}

// Copy copies other's planes into the receiver.
func (d *VecZnxDft) Copy(other *VecZnxDft) {
	copy(d.re, other.re)
	copy(d.im, other.im)
}
