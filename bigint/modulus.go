package bigint

import "math/bits"

// Modulus is an immutable per-request context: the prime N itself, its
// Montgomery radix constants, and the limb count every Int created against
// it must share. A Modulus is created once when a request is parsed and
// lives for exactly as long as the operation it describes.
type Modulus struct {
	n       Int    // the modulus itself, s limbs
	bitLen  int    // bit length of n
	nprime  uint64 // -n[0]^-1 mod 2^64, the word-level Montgomery constant
	rSquare Int    // R^2 mod n, used to move values into Montgomery form
	rModN   Int    // R mod n, i.e. Montgomery form of 1
}

// Limbs returns the number of 64-bit limbs every Int under this modulus has.
func (m *Modulus) Limbs() int { return len(m.n) }

// BitLen returns the bit length of the modulus.
func (m *Modulus) BitLen() int { return m.bitLen }

// ByteLen returns ceil(BitLen()/8), the canonical big-endian encoding width.
func (m *Modulus) ByteLen() int { return (m.bitLen + 7) / 8 }

// N returns the modulus value itself (not a copy; callers must not mutate).
func (m *Modulus) N() Int { return m.n }

// NewModulus builds a Modulus context from a big-endian encoded odd integer
// >= 3. The EIP-1962 wire format only ever carries odd prime moduli (see
// wire package validation); this constructor does not itself test
// primality, matching the source's own scope (a full primality test is not
// part of the parser's eager validation list either).
func NewModulus(modBytes []byte) *Modulus {
	bitLen := bitLenOfBytes(modBytes)
	limbs := (bitLen + limbBits - 1) / limbBits
	if limbs == 0 {
		limbs = 1
	}
	n := FromBytes(modBytes, limbs)

	m := &Modulus{n: n, bitLen: bitLen}
	m.nprime = montgomeryWordInverse(n[0])
	m.rModN = twoPowMod(n, limbs*limbBits)
	m.rSquare = twoPowMod(n, 2*limbs*limbBits)
	return m
}

func bitLenOfBytes(b []byte) int {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	if i == len(b) {
		return 0
	}
	topBits := 8 - leadingZeroBitsInByte(b[i])
	return (len(b)-i-1)*8 + topBits
}

func leadingZeroBitsInByte(b byte) int {
	n := 0
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) != 0 {
			break
		}
		n++
	}
	return n
}

// montgomeryWordInverse computes -n0^-1 mod 2^64 via Newton's iteration,
// which converges for any odd n0 in log2(64) steps: if x is correct mod 2^k,
// x*(2 - n0*x) is correct mod 2^(2k).
func montgomeryWordInverse(n0 uint64) uint64 {
	x := n0 // correct mod 2^3 for any odd n0
	for i := 0; i < 6; i++ {
		x = x * (2 - n0*x)
	}
	return -x
}

// twoPowMod computes 2^k mod n via repeated conditional-doubling, the
// schoolbook binary reduction used once per Modulus to seed Montgomery form
// before any Montgomery multiplication is available.
func twoPowMod(n Int, k int) Int {
	s := len(n)
	rem := make(Int, s)
	rem[0] = 1
	tmp := make(Int, s+1)
	nExt := make(Int, s+1)
	copy(nExt, n)
	for i := 0; i < k; i++ {
		tmp[s] = shiftLeft1(tmp[:s], rem)
		copy(rem, tmp[:s])
		if tmp[s] != 0 || cmpLimbs(tmp, nExt) >= 0 {
			subLimbs(tmp, tmp, nExt)
			copy(rem, tmp[:s])
		}
	}
	return rem
}

// redc performs Montgomery reduction of a 2*s-limb value t, returning
// t * R^-1 mod n where R = 2^(64*s). This is the SOS (separated operand
// scanning) method: reduce in place, one limb of the radix at a time, then
// finish with a single conditional subtraction.
func (m *Modulus) redc(t Int) Int {
	s := len(m.n)
	buf := make(Int, 2*s+1)
	copy(buf, t)
	for i := 0; i < s; i++ {
		mi := buf[i] * m.nprime
		if mi == 0 {
			continue
		}
		carry := mulAddWord(buf[i:i+s+1], m.n, mi)
		k := i + s + 1
		for carry != 0 && k < len(buf) {
			var c uint64
			buf[k], c = bits.Add64(buf[k], carry, 0)
			carry = c
			k++
		}
	}
	whole := buf[s:]
	nExt := make(Int, s+1)
	copy(nExt, m.n)
	if cmpLimbs(whole, nExt) >= 0 {
		subLimbs(whole, whole, nExt)
	}
	return Int(whole[:s]).Clone()
}

// ToMont converts a (in [0,n)) into Montgomery form.
func (m *Modulus) ToMont(a Int) Int {
	return m.redc(mulWide(a, m.rSquare))
}

// FromMont converts a Montgomery-form value back to a plain residue.
func (m *Modulus) FromMont(a Int) Int {
	t := make(Int, 2*len(m.n))
	copy(t, a)
	return m.redc(t)
}

// MontMul returns a*b*R^-1 mod n, i.e. the Montgomery-domain product of two
// Montgomery-form operands.
func (m *Modulus) MontMul(a, b Int) Int {
	return m.redc(mulWide(a, b))
}

// One returns the Montgomery form of 1.
func (m *Modulus) One() Int {
	return m.rModN.Clone()
}

// Zero returns the additive identity (same in both forms).
func (m *Modulus) Zero() Int {
	return NewInt(len(m.n))
}

// Exp computes base^exp mod n, with base and the result in Montgomery form
// and exp a plain (non-Montgomery) big-endian-agnostic exponent. Uses
// left-to-right square-and-multiply.
func (m *Modulus) Exp(base Int, exp Int) Int {
	result := m.One()
	bl := exp.BitLen()
	for i := bl - 1; i >= 0; i-- {
		result = m.MontMul(result, result)
		if exp.Bit(i) {
			result = m.MontMul(result, base)
		}
	}
	return result
}

// Inverse returns a^-1 mod n for a given in plain (non-Montgomery) form,
// computed via the binary extended Euclidean algorithm, itself plain-form
// throughout per spec.md 4.A. Returns ErrNotInvertible for a == 0.
//
// x1/x2 run with two extra guard limbs of headroom: the "add n, then halve"
// step of the classic algorithm can transiently push a cofactor above n
// before the division brings it back down, and the guard limbs keep that
// transient from wrapping the fixed-width representation.
func (m *Modulus) Inverse(a Int) (Int, error) {
	if a.IsZero() {
		return nil, ErrNotInvertible
	}
	s := len(m.n)
	w := s + 2
	nW := make(Int, w)
	copy(nW, m.n)

	u := make(Int, w)
	copy(u, a)
	v := make(Int, w)
	copy(v, m.n)
	x1 := make(Int, w)
	x1[0] = 1
	x2 := make(Int, w)
	one := make(Int, w)
	one[0] = 1

	normalize := func(x Int) {
		for cmpLimbs(x, nW) >= 0 {
			subLimbs(x, x, nW)
		}
	}

	for cmpLimbs(u, one) != 0 && cmpLimbs(v, one) != 0 {
		for u[0]&1 == 0 && !u.IsZero() {
			shiftRight1(u, u)
			if x1[0]&1 != 0 {
				addLimbs(x1, x1, nW)
			}
			shiftRight1(x1, x1)
			normalize(x1)
		}
		for v[0]&1 == 0 && !v.IsZero() {
			shiftRight1(v, v)
			if x2[0]&1 != 0 {
				addLimbs(x2, x2, nW)
			}
			shiftRight1(x2, x2)
			normalize(x2)
		}
		if cmpLimbs(u, v) >= 0 {
			subLimbs(u, u, v)
			for cmpLimbs(x1, x2) < 0 {
				addLimbs(x1, x1, nW)
			}
			subLimbs(x1, x1, x2)
		} else {
			subLimbs(v, v, u)
			for cmpLimbs(x2, x1) < 0 {
				addLimbs(x2, x2, nW)
			}
			subLimbs(x2, x2, x1)
		}
	}
	if cmpLimbs(u, one) == 0 {
		normalize(x1)
		return x1[:s].Clone(), nil
	}
	normalize(x2)
	return x2[:s].Clone(), nil
}

// shiftRight1 computes dst = a>>1 over equal-length slices.
func shiftRight1(dst, a []uint64) {
	var carry uint64
	for i := len(a) - 1; i >= 0; i-- {
		next := a[i] & 1
		dst[i] = (a[i] >> 1) | (carry << 63)
		carry = next
	}
}
