package ring

// MatZnx is the coefficient-domain dual of VmpPMat (spec.md §3): a
// rows x cols_in x cols_out x size matrix of plain length-N polynomials,
// prior to preparation. Building one by hand and calling VmpPrepare on
// it is the standard way to construct a gadget-decomposed switching
// key or GGSW row block.
type MatZnx struct {
	n, rows, colsIn, colsOut, size int
	data                           []int64 // rows*colsIn*colsOut*size*n
}

// NewMatZnx allocates a new zero-valued MatZnx.
func NewMatZnx(n, rows, colsIn, colsOut, size int) *MatZnx {
	m := new(MatZnx)
	m.n, m.rows, m.colsIn, m.colsOut, m.size = n, rows, colsIn, colsOut, size
	m.data = make([]int64, rows*colsIn*colsOut*size*n)
	return m
}

func (m *MatZnx) N() int       { return m.n }
func (m *MatZnx) Rows() int    { return m.rows }
func (m *MatZnx) ColsIn() int  { return m.colsIn }
func (m *MatZnx) ColsOut() int { return m.colsOut }
func (m *MatZnx) Size() int    { return m.size }

// At returns the length-N coefficient slice at (row, colIn, colOut, limb).
func (m *MatZnx) At(row, colIn, colOut, limb int) []int64 {
	idx := ((row*m.colsIn+colIn)*m.colsOut+colOut)*m.size + limb
	return m.data[idx*m.n : (idx+1)*m.n]
}
