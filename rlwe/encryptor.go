package rlwe

import (
	"fmt"

	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/sampling"
)

// Encryptor produces GLWE ciphertexts under either a secret key
// (EncryptSk) or a public key (EncryptPk), mirroring the teacher's
// dedicated-struct-per-role style while carrying this engine's
// single-modulus, base-2^k data model rather than RNS.
type Encryptor struct {
	mod    *ring.Module
	params Parameters
	src    sampling.Source
}

// NewEncryptor binds an Encryptor to a module, parameter set, and
// randomness source.
func NewEncryptor(mod *ring.Module, params Parameters, src sampling.Source) *Encryptor {
	return &Encryptor{mod: mod, params: params, src: src}
}

// EncryptSk encrypts pt (a single-column VecZnx with up to ct.Size()
// limbs, least-significant first; nil means "encrypt zero") under sk
// into ct. Every limb is an independent RLWE sample:
//
//	ct[0][l] = -sum_i a_i[l]*s_i + pt[l] + e[l]
//	ct[c][l] = a_{c-1}[l]                          for c in 1..=rank
//
// with a fresh uniform base2k digit polynomial a_i[l] and a fresh
// discretized Gaussian e[l] of standard deviation params.Sigma at every
// limb. Stacking independent samples per limb is exactly the gadget
// decomposition GGLWE/GGSW rows reuse (see EncryptGGLWESk and KeySwitch).
func (enc *Encryptor) EncryptSk(pt *ring.VecZnx, sk *GLWESecret, ct *GLWE) {
	if sk.Dist.Dist == None {
		panic(fmt.Errorf("EncryptSk: secret distribution is None"))
	}
	if ct.Rank() != sk.Rank() {
		panic(fmt.Errorf("EncryptSk: ct.Rank()=%d != sk.Rank()=%d", ct.Rank(), sk.Rank()))
	}
	n := ct.N()
	e := make([]int64, n)
	for l := 0; l < ct.Size(); l++ {
		body := ct.At(0, l)
		for i := range body {
			body[i] = 0
		}
		if pt != nil && l < pt.Size() {
			copy(body, pt.At(0, l))
		}
		fillGaussian(enc.src, enc.params.Sigma, 0, e)
		for i := range body {
			body[i] += e[i]
		}
		for c := 1; c <= ct.Rank(); c++ {
			a := ct.At(c, l)
			fillUniform(enc.src, enc.params.Base2K, a)
			enc.mod.MulAddPoly(a, negateCopy(sk.At(c-1)), body)
		}
	}
}

// EncryptPk encrypts pt under public key pk into ct, sampling a fresh
// fixed-weight ternary combination vector u and computing
//
//	ct = u * pk + (e0 + pt, e1, ..., e_rank)
func (enc *Encryptor) EncryptPk(pt *ring.VecZnx, pk *GLWEPublicKey, ct *GLWE) {
	if pk.Dist.Dist == None {
		panic(fmt.Errorf("EncryptPk: public key distribution is None"))
	}
	if ct.Rank() != pk.Rank() {
		panic(fmt.Errorf("EncryptPk: ct.Rank()=%d != pk.Rank()=%d", ct.Rank(), pk.Rank()))
	}
	n := ct.N()
	u := make([]int64, n)
	fillTernaryFixed(enc.src, n/2, u)
	e := make([]int64, n)
	for c := 0; c <= ct.Rank(); c++ {
		for l := 0; l < ct.Size(); l++ {
			dst := ct.At(c, l)
			if l < pk.Size() {
				copy(dst, enc.mod.MulPoly(u, pk.At(c, l)))
			} else {
				for i := range dst {
					dst[i] = 0
				}
			}
			fillGaussian(enc.src, enc.params.Sigma, 0, e)
			for i := range dst {
				dst[i] += e[i]
			}
			if c == 0 && pt != nil && l < pt.Size() {
				psrc := pt.At(0, l)
				for i := range dst {
					dst[i] += psrc[i]
				}
			}
		}
	}
}

// GenPublicKey derives a GLWEPublicKey from sk: a rank-`k` GLWE
// encryption of zero under sk. The receiver's Distribution is tagged
// ZERO (the plaintext encrypted under it), matching the state the
// spec's fill_* transitions expect encrypt_pk's caller to have set.
func (enc *Encryptor) GenPublicKey(sk *GLWESecret, pk *GLWEPublicKey) {
	tmp := NewGLWE(pk.N(), pk.Rank(), pk.Size())
	enc.EncryptSk(nil, sk, tmp)
	pk.GLWE.Copy(tmp)
	pk.Dist = DistributionParameters{Dist: ZERO}
}

// MulPoly exposes the bound module's polynomial multiplication, used
// by rgsw.Encryptor to compute m*s_c before encrypting each GGSW block.
func (enc *Encryptor) MulPoly(a, b []int64) []int64 {
	return enc.mod.MulPoly(a, b)
}

func negateCopy(a []int64) []int64 {
	out := make([]int64, len(a))
	for i, v := range a {
		out[i] = -v
	}
	return out
}
