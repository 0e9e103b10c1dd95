package ring

import (
	"math/big"
	"math/bits"
)

// NTT120 implements the four-prime RNS NTT backend giving ~120 bits of
// dynamic range (spec.md §4.5). Each of the four primes Q0..Q3 is
// chosen near 2^30 and NTT-friendly (Qi ≡ 1 mod 2N) so that a
// negacyclic NTT of degree N exists for every prime independently;
// CRT reconstruction with signed centering converts back to an
// integer coefficient once all four residues are known.
//
// The teacher corpus has no NTT120-shaped kernel (its RNS primes are
// ~61-bit, single-limb, with no CRT-combine-to-one-coefficient step);
// this follows spec.md §4.5 directly. The per-prime butterflies reduce
// their products with a full 128-bit multiply and divide (mulMod:
// bits.Mul64 then bits.Div64), not a Barrett-style reduction.
const NTT120NumPrimes = 4

// NTT120Table holds, for one ring degree N, the four prime moduli, each
// prime's forward/inverse twiddle tables (psi-scaled for the negacyclic
// transform), and the CRT reconstruction constants.
type NTT120Table struct {
	N       int
	Primes  [NTT120NumPrimes]uint64
	fwd     [NTT120NumPrimes][]uint64 // psi^bitrev(i), i in [0,N)
	inv     [NTT120NumPrimes][]uint64 // psi^-bitrev(i)
	invN    [NTT120NumPrimes]uint64   // N^-1 mod Qi
	psiInv  [NTT120NumPrimes]uint64   // psi^-1 mod Qi
	crtQ    [NTT120NumPrimes]*big.Int // (Q/Qi)
	crtQInv [NTT120NumPrimes]uint64   // (Q/Qi)^-1 mod Qi
	Modulus *big.Int                  // Q0*Q1*Q2*Q3
}

// NewNTT120Table constructs the per-prime tables for ring degree N.
func NewNTT120Table(N int) *NTT120Table {
	t := &NTT120Table{N: N}
	t.Modulus = big.NewInt(1)

	twoN := uint64(2 * N)
	// Start from the first candidate of the form k*2N+1 at or above 2^30
	// and walk upward until four NTT-friendly primes are found.
	k := (uint64(1)<<30)/twoN + 1
	cand := k*twoN + 1
	found := 0
	for found < NTT120NumPrimes {
		if isNTTFriendlyPrime(cand, N) {
			t.Primes[found] = cand
			found++
		}
		cand += twoN
	}

	for i, q := range t.Primes {
		t.fwd[i], t.inv[i], t.psiInv[i], t.invN[i] = buildNTTTwiddles(q, N)
		t.crtQ[i] = new(big.Int)
	}

	for i, qi := range t.Primes {
		t.Modulus.Mul(t.Modulus, new(big.Int).SetUint64(qi))
	}
	for i, qi := range t.Primes {
		Qi := new(big.Int).Div(t.Modulus, new(big.Int).SetUint64(qi))
		t.crtQ[i] = Qi
		QiModqi := new(big.Int).Mod(Qi, new(big.Int).SetUint64(qi)).Uint64()
		t.crtQInv[i] = modInverse(QiModqi, qi)
	}

	return t
}

// isNTTFriendlyPrime reports whether q is prime and satisfies
// q ≡ 1 (mod 2N) so a primitive 2N-th root of unity exists. It does not
// check the size of q; NewNTT120Table starts its search just above 2^30.
func isNTTFriendlyPrime(q uint64, N int) bool {
	twoN := uint64(2 * N)
	if (q-1)%twoN != 0 {
		return false
	}
	return big.NewInt(0).SetUint64(q).ProbablyPrime(20)
}

// buildNTTTwiddles finds a primitive 2N-th root of unity psi mod q and
// returns the bit-reversed forward/inverse twiddle tables plus psi^-1
// and N^-1 mod q.
func buildNTTTwiddles(q uint64, N int) (fwd, inv []uint64, psiInv, invN uint64) {
	psi := findPrimitiveRoot(q, uint64(2*N))
	psiInvVal := modInverse(psi, q)

	fwd = make([]uint64, N)
	inv = make([]uint64, N)
	p := uint64(1)
	pInv := uint64(1)
	logN := bits.Len(uint(N)) - 1
	for i := 0; i < N; i++ {
		r := bitReverse(i, logN)
		fwd[r] = p
		inv[r] = pInv
		p = mulMod(p, psi, q)
		pInv = mulMod(pInv, psiInvVal, q)
	}
	invN = modInverse(uint64(N), q)
	psiInv = psiInvVal
	return
}

func bitReverse(x, logN int) int {
	r := 0
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

func mulMod(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi%q, lo, q)
	return rem
}

func powMod(base, exp, q uint64) uint64 {
	result := uint64(1)
	base %= q
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, q)
		}
		base = mulMod(base, base, q)
		exp >>= 1
	}
	return result
}

func modInverse(a, q uint64) uint64 {
	return powMod(a, q-2, q)
}

// findPrimitiveRoot returns an element of order exactly `order` modulo
// the prime q (order must divide q-1).
func findPrimitiveRoot(q, order uint64) uint64 {
	exp := (q - 1) / order
	for g := uint64(2); ; g++ {
		cand := powMod(g, exp, q)
		if powMod(cand, order/2, q) != 1 {
			return cand
		}
	}
}

// Forward computes the negacyclic NTT of x (length N, coefficients
// reduced mod q already assumed in [0,q)) in place, for prime index pi.
func (t *NTT120Table) Forward(pi int, x []uint64) {
	q := t.Primes[pi]
	twid := t.fwd[pi]
	n := len(x)
	for length := n; length > 1; length >>= 1 {
		half := length / 2
		for start := 0; start < n; start += length {
			tIdx := (n / length) + start/length
			w := twid[tIdx]
			for k := start; k < start+half; k++ {
				u := x[k]
				v := mulMod(x[k+half], w, q)
				x[k] = addMod(u, v, q)
				x[k+half] = subMod(u, v, q)
			}
		}
	}
}

// Inverse computes the inverse negacyclic NTT of x in place.
func (t *NTT120Table) Inverse(pi int, x []uint64) {
	q := t.Primes[pi]
	twid := t.inv[pi]
	n := len(x)
	for length := 2; length <= n; length <<= 1 {
		half := length / 2
		for start := 0; start < n; start += length {
			tIdx := (n / length) + start/length
			w := twid[tIdx]
			for k := start; k < start+half; k++ {
				u := x[k]
				v := x[k+half]
				x[k] = addMod(u, v, q)
				diff := subMod(u, v, q)
				x[k+half] = mulMod(diff, w, q)
			}
		}
	}
	invN := t.invN[pi]
	for k := range x {
		x[k] = mulMod(x[k], invN, q)
	}
}

func addMod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q {
		s -= q
	}
	return s
}

func subMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + q - b
}

// CRTReconstruct combines one residue per prime (four values per
// coefficient) into a single signed big.Int, centered in
// (-Modulus/2, Modulus/2], as spec.md §4.5 requires ("signed
// centering").
func (t *NTT120Table) CRTReconstruct(residues [NTT120NumPrimes]uint64) *big.Int {
	acc := new(big.Int)
	tmp := new(big.Int)
	for i, qi := range t.Primes {
		// term = residues[i] * crtQInv[i] mod qi, then * crtQ[i]
		term := mulMod(residues[i], t.crtQInv[i], qi)
		tmp.SetUint64(term)
		tmp.Mul(tmp, t.crtQ[i])
		acc.Add(acc, tmp)
	}
	acc.Mod(acc, t.Modulus)
	half := new(big.Int).Rsh(t.Modulus, 1)
	if acc.Cmp(half) > 0 {
		acc.Sub(acc, t.Modulus)
	}
	return acc
}

// CRTDecompose reduces a signed big.Int coefficient into its four
// prime residues.
func (t *NTT120Table) CRTDecompose(v *big.Int) (residues [NTT120NumPrimes]uint64) {
	for i, qi := range t.Primes {
		m := new(big.Int).Mod(v, new(big.Int).SetUint64(qi))
		residues[i] = m.Uint64()
	}
	return
}
