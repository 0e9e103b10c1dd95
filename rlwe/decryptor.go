package rlwe

import (
	"fmt"

	"github.com/Pro7ech/poulpy/ring"
)

// Decryptor decrypts GLWE ciphertexts under a stored secret key.
type Decryptor struct {
	mod *ring.Module
	sk  *GLWESecret
}

// NewDecryptor instantiates a new Decryptor bound to sk.
func NewDecryptor(mod *ring.Module, sk *GLWESecret) *Decryptor {
	if sk == nil {
		panic(fmt.Errorf("NewDecryptor: secret key is nil"))
	}
	return &Decryptor{mod: mod, sk: sk}
}

// Decrypt recovers the plaintext limb vector of ct into pt, computing
//
//	pt[l] = ct[0][l] + sum_i ct[i+1][l] * s_i
//
// at every limb l (the dual of EncryptSk, since ct[0][l] was built as
// -sum a_i*s_i + pt[l] + e, so adding back sum a_i*s_i recovers pt[l]+e).
//
// Each secret component s_i is the same scalar across every limb of
// ct, so it is prepared into an SvpPPol once per call rather than
// re-transformed inside the limb loop (spec.md §4.6's prepared
// scalar-by-vector product).
func (d *Decryptor) Decrypt(ct *GLWE, pt *ring.VecZnx) {
	if ct.Rank() != d.sk.Rank() {
		panic(fmt.Errorf("Decrypt: ct.Rank()=%d != sk.Rank()=%d", ct.Rank(), d.sk.Rank()))
	}
	size := min(ct.Size(), pt.Size())
	n := ct.N()
	fft := d.mod.FFT64()

	pps := make([]*ring.SvpPPol, ct.Rank())
	for c := 0; c < ct.Rank(); c++ {
		pps[c] = ring.NewSvpPPol(n)
		pps[c].Prepare(fft, d.sk.At(c))
	}

	v := ring.NewVecZnx(n, 1, 1)
	aDft := ring.NewVecZnxDft(n, 1, 1)
	prod := ring.NewVecZnxDft(n, 1, 1)
	big := ring.NewVecZnxBig(n, 1, 1)

	for l := 0; l < size; l++ {
		body := pt.At(0, l)
		copy(body, ct.At(0, l))
		for c := 1; c <= ct.Rank(); c++ {
			copy(v.At(0, 0), ct.At(c, l))
			aDft.DFT(fft, v)
			pps[c-1].Apply(aDft, 0, prod)
			prod.IDFT(fft, big)
			dst := big.At(0, 0)
			for i := range body {
				body[i] += dst[i]
			}
		}
	}
}

// DecryptNew decrypts ct into a freshly allocated single-column VecZnx.
func (d *Decryptor) DecryptNew(ct *GLWE) *ring.VecZnx {
	pt := ring.NewVecZnx(ct.N(), 1, ct.Size())
	d.Decrypt(ct, pt)
	return pt
}

// WithKey returns a shallow copy of the receiver bound to a different
// secret key.
func (d *Decryptor) WithKey(sk *GLWESecret) *Decryptor {
	if sk == nil {
		panic(fmt.Errorf("WithKey: key is nil"))
	}
	return &Decryptor{mod: d.mod, sk: sk}
}
