package ring

import "fmt"

// VmpPMat is a prepared (transformed-domain) matrix of shape
// rows x cols_in x cols_out x size (spec.md §4.6), built from a MatZnx
// via VmpPrepare. It is the container gadget-decomposed switching keys
// and GGSW rows are stored in once transformed, so that VmpApplyDftToDft
// never has to re-transform key material on the hot path.
type VmpPMat struct {
	n, rows, colsIn, colsOut, size int
	re, im                         []float64 // rows*colsIn*colsOut*size*M each
}

// NewVmpPMat allocates a new zero-valued VmpPMat.
func NewVmpPMat(n, rows, colsIn, colsOut, size int) *VmpPMat {
	m := n / 2
	count := rows * colsIn * colsOut * size * m
	return &VmpPMat{
		n: n, rows: rows, colsIn: colsIn, colsOut: colsOut, size: size,
		re: make([]float64, count),
		im: make([]float64, count),
	}
}

func (p *VmpPMat) N() int       { return p.n }
func (p *VmpPMat) M() int       { return p.n / 2 }
func (p *VmpPMat) Rows() int    { return p.rows }
func (p *VmpPMat) ColsIn() int  { return p.colsIn }
func (p *VmpPMat) ColsOut() int { return p.colsOut }
func (p *VmpPMat) Size() int    { return p.size }

// At returns the real and imaginary length-M planes at (row, colIn, colOut, limb).
func (p *VmpPMat) At(row, colIn, colOut, limb int) (re, im []float64) {
	m := p.M()
	idx := ((row*p.colsIn+colIn)*p.colsOut+colOut)*p.size + limb
	off := idx * m
	return p.re[off : off+m], p.im[off : off+m]
}

// VmpPrepare transforms every entry of mat and writes the result into
// the receiver, which must have matching shape.
func (p *VmpPMat) VmpPrepare(table *FFT64Table, mat *MatZnx) {
	if p.n != mat.N() || p.rows != mat.Rows() || p.colsIn != mat.ColsIn() || p.colsOut != mat.ColsOut() || p.size != mat.Size() {
		panic(fmt.Errorf("VmpPMat.VmpPrepare: shape mismatch"))
	}
	buf := make([]float64, p.n)
	for r := 0; r < p.rows; r++ {
		for ci := 0; ci < p.colsIn; ci++ {
			for co := 0; co < p.colsOut; co++ {
				for l := 0; l < p.size; l++ {
					src := mat.At(r, ci, co, l)
					for i, v := range src {
						buf[i] = float64(v)
					}
					re, im := p.At(r, ci, co, l)
					table.Forward(buf, re, im)
				}
			}
		}
	}
}

// VmpApplyDftToDftTmpBytes returns the scratch byte size VmpApplyDftToDft
// needs: none, since the operation accumulates directly into res with no
// intermediate buffers beyond what the caller already owns.
func VmpApplyDftToDftTmpBytes(resSize, aSize, rows, colsIn, colsOut, size int) int {
	return 0
}

// VmpApplyDftToDft computes, for every output column:
//
//	res[out] = sum_in a[in] * b[in, out]
//
// in the transformed domain (spec.md §4.6), where a is a VecZnxDft with
// ColsIn() = b.ColsIn() columns and a.Size() "rows" of gadget-decomposed
// data matched against b's Rows() dimension. When a.Size() and b.Rows()
// differ, only their shared prefix contributes. res is zeroed first, so
// any output limbs beyond what b provides end up zero.
func VmpApplyDftToDft(res, a *VecZnxDft, b *VmpPMat) {
	res.Zero()
	VmpApplyDftToDftAdd(res, a, b, 1)
}

// VmpApplyDftToDftAdd is the accumulating variant of VmpApplyDftToDft:
// res += scale * (a * b), without zeroing res first.
func VmpApplyDftToDftAdd(res, a *VecZnxDft, b *VmpPMat, scale float64) {
	if a.Cols() != b.ColsIn() || res.Cols() != b.ColsOut() || res.N() != b.N() || a.N() != b.N() {
		panic(fmt.Errorf("VmpApplyDftToDftAdd: shape mismatch"))
	}
	rows := min(a.Size(), b.Rows())
	for out := 0; out < res.Cols(); out++ {
		for k := 0; k < res.Size() && k < b.Size(); k++ {
			ore, oim := res.At(out, k)
			for in := 0; in < a.Cols(); in++ {
				for r := 0; r < rows; r++ {
					are, aim := a.At(in, r)
					bre, bim := b.At(r, in, out, k)
					for i := range ore {
						pr := are[i]*bre[i] - aim[i]*bim[i]
						pi := are[i]*bim[i] + aim[i]*bre[i]
						ore[i] += scale * pr
						oim[i] += scale * pi
					}
				}
			}
		}
	}
}
