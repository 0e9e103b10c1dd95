package ring

// NewGadgetPMat builds a prepared VmpPMat of shape (dnum, 1, colsOut,
// outSize) encoding a gadget-decomposed row set for use with
// VmpApplyDftToDft/Add (spec.md §4.6/§4.7): row i's column c, local
// limb l is placed at output-limb offset i*dsize+l and left zero
// everywhere else, so that summing over rows in the transformed domain
// reproduces the digit-offset accumulation a gadget product requires
// without the caller ever touching a raw MatZnx. limb(i, c, l) must
// return row i's column c, local limb l (its Dsize-wide data).
func NewGadgetPMat(table *FFT64Table, n, dnum, dsize, colsOut, outSize int, limb func(i, c, l int) []int64) *VmpPMat {
	mat := NewMatZnx(n, dnum, 1, colsOut, outSize)
	for i := 0; i < dnum; i++ {
		for c := 0; c < colsOut; c++ {
			for l := 0; l < dsize; l++ {
				outLimb := i*dsize + l
				if outLimb >= outSize {
					continue
				}
				copy(mat.At(i, 0, c, outLimb), limb(i, c, l))
			}
		}
	}
	pmat := NewVmpPMat(n, dnum, 1, colsOut, outSize)
	pmat.VmpPrepare(table, mat)
	return pmat
}

// NewGadgetDft DFT-transforms a single gadget-decomposed input column
// (dnum digits, one limb each) into a VecZnxDft of shape (1, dnum),
// ready to feed VmpApplyDftToDft against a NewGadgetPMat-built matrix.
// digit(i) must return the length-N digit i, or nil to leave it zero
// (e.g. when the input ciphertext carries fewer than dnum limbs).
func NewGadgetDft(table *FFT64Table, n, dnum int, digit func(i int) []int64) *VecZnxDft {
	v := NewVecZnx(n, 1, dnum)
	for i := 0; i < dnum; i++ {
		if d := digit(i); d != nil {
			copy(v.At(0, i), d)
		}
	}
	dft := NewVecZnxDft(n, 1, dnum)
	dft.DFT(table, v)
	return dft
}
