package rlwe

import (
	"github.com/Pro7ech/poulpy/ring"
	"github.com/Pro7ech/poulpy/sampling"
)

// KeyGenerator bundles the module, parameters and randomness source
// needed to produce secrets, public keys, switching keys, automorphism
// keys, and tensor keys.
type KeyGenerator struct {
	mod    *ring.Module
	params Parameters
	src    sampling.Source
	enc    *Encryptor
}

// NewKeyGenerator creates a new KeyGenerator.
func NewKeyGenerator(mod *ring.Module, params Parameters, src sampling.Source) *KeyGenerator {
	return &KeyGenerator{mod: mod, params: params, src: src, enc: NewEncryptor(mod, params, src)}
}

// GenSecretKeyNew allocates and fills a new GLWESecret under d.
func (kgen *KeyGenerator) GenSecretKeyNew(d DistributionParameters) *GLWESecret {
	sk := NewGLWESecret(kgen.mod.N(), kgen.params.Rank)
	kgen.GenSecretKey(d, sk)
	return sk
}

// GenSecretKey fills sk under distribution d.
func (kgen *KeyGenerator) GenSecretKey(d DistributionParameters, sk *GLWESecret) {
	sk.Fill(d, kgen.src)
}

// GenPublicKeyNew allocates and fills a new GLWEPublicKey under sk.
func (kgen *KeyGenerator) GenPublicKeyNew(sk *GLWESecret) *GLWEPublicKey {
	pk := NewGLWEPublicKey(kgen.mod.N(), kgen.params.Rank)
	kgen.enc.GenPublicKey(sk, pk)
	return pk
}

// GenSwitchingKeyNew allocates and fills a new GLWESwitchingKey from
// skIn to skOut at the given gadget parameters.
func (kgen *KeyGenerator) GenSwitchingKeyNew(skIn, skOut *GLWESecret, gp GadgetParams) *GLWESwitchingKey {
	ksk := NewGLWESwitchingKey(kgen.mod.N(), skOut.Rank(), gp)
	kgen.enc.GenSwitchingKey(skIn, skOut, ksk)
	return ksk
}

// GenAutomorphismKeyNew allocates and fills a new GLWEAutomorphismKey
// for the automorphism X -> X^p under sk.
func (kgen *KeyGenerator) GenAutomorphismKeyNew(p int, sk *GLWESecret, gp GadgetParams) *GLWEAutomorphismKey {
	atk := NewGLWEAutomorphismKey(kgen.mod.N(), sk.Rank(), gp)
	kgen.enc.GenAutomorphismKey(p, sk, atk)
	return atk
}

// GenTensorKeyNew allocates and fills a new TensorKey under sk.
func (kgen *KeyGenerator) GenTensorKeyNew(sk *GLWESecret, gp GadgetParams) *TensorKey {
	tk := NewTensorKey(kgen.mod.N(), sk.Rank(), gp)
	kgen.enc.GenTensorKey(sk, tk)
	return tk
}
