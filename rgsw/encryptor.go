package rgsw

import (
	"github.com/Pro7ech/poulpy/rlwe"
)

// Encryptor wraps an rlwe.Encryptor to produce GGSW ciphertexts.
type Encryptor struct {
	*rlwe.Encryptor
}

// NewEncryptor wraps enc for GGSW encryption.
func NewEncryptor(enc *rlwe.Encryptor) *Encryptor {
	return &Encryptor{enc}
}

// EncryptSk encrypts the scalar polynomial m under sk into ggsw.
func (enc *Encryptor) EncryptSk(m []int64, sk *rlwe.GLWESecret, ggsw *GGSW) {
	enc.EncryptGGLWESk(m, sk, &ggsw.Blocks[0])
	for c := 1; c <= ggsw.Rank(); c++ {
		mTimesS := enc.MulPoly(m, sk.At(c-1))
		enc.EncryptGGLWESk(mTimesS, sk, &ggsw.Blocks[c])
	}
}
