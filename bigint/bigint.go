// Package bigint implements arbitrary-precision modular arithmetic over a
// runtime-supplied prime modulus, including Montgomery form conversion and
// reduction.
//
// Unlike a fixed-modulus scalar field, the modulus here arrives inside a
// parsed request (see package wire) and can be up to 1024 bits wide.
// Every Int therefore carries its limb count implicitly via len(x); two Ints
// participating in the same operation must share that length. Mixing Ints
// from different Modulus contexts is a programming error.
package bigint

import (
	"errors"
	"math/bits"
)

// ErrNotInvertible is returned by Modulus.Inverse when asked to invert zero.
var ErrNotInvertible = errors.New("bigint: value has no modular inverse")

// limbBits is the width of one limb of an Int.
const limbBits = 64

// Int is a little-endian fixed-width arbitrary-precision integer: Int[0] is
// the least significant limb. The length of an Int is fixed by the Modulus
// that created it and is never resized in place.
type Int []uint64

// NewInt allocates a zero Int with the given limb count.
func NewInt(limbs int) Int {
	return make(Int, limbs)
}

// Clone returns an independent copy of a.
func (a Int) Clone() Int {
	b := make(Int, len(a))
	copy(b, a)
	return b
}

// IsZero reports whether every limb of a is zero.
func (a Int) IsZero() bool {
	for _, w := range a {
		if w != 0 {
			return false
		}
	}
	return true
}

// Bit reports the value of bit i (0 = least significant).
func (a Int) Bit(i int) bool {
	limb := i / limbBits
	if limb >= len(a) {
		return false
	}
	return (a[limb]>>(uint(i)%limbBits))&1 == 1
}

// BitLen returns the index of the highest set bit of a, plus one. BitLen of
// zero is zero.
func (a Int) BitLen() int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != 0 {
			return i*limbBits + bits.Len64(a[i])
		}
	}
	return 0
}

// Cmp compares a and b, which must have equal length, returning -1, 0 or 1.
func (a Int) Cmp(b Int) int {
	return cmpLimbs(a, b)
}

// Equal reports whether a and b represent the same integer.
func (a Int) Equal(b Int) bool {
	return cmpLimbs(a, b) == 0
}

// SetUint64 sets a to the value of v, zeroing the remaining limbs.
func (a Int) SetUint64(v uint64) {
	a[0] = v
	for i := 1; i < len(a); i++ {
		a[i] = 0
	}
}

// FromBytes decodes a big-endian byte string into an Int of the given limb
// count. The byte string may be shorter than limbs*8; it is treated as if
// left-padded with zero bytes.
func FromBytes(b []byte, limbs int) Int {
	x := make(Int, limbs)
	// Walk the byte string from the least significant end.
	for i := 0; i < len(b); i++ {
		byteIndex := len(b) - 1 - i
		limb := i / 8
		if limb >= limbs {
			break
		}
		x[limb] |= uint64(b[byteIndex]) << (8 * uint(i%8))
	}
	return x
}

// ToBytes encodes a as a big-endian byte string of exactly byteLen bytes,
// truncating or zero-padding as needed on the most significant side.
func ToBytes(a Int, byteLen int) []byte {
	out := make([]byte, byteLen)
	for i := 0; i < byteLen; i++ {
		limb := i / 8
		var w uint64
		if limb < len(a) {
			w = a[limb]
		}
		out[byteLen-1-i] = byte(w >> (8 * uint(i%8)))
	}
	return out
}

// cmpLimbs compares equal-length limb slices as unsigned integers.
func cmpLimbs(a, b []uint64) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// addLimbs computes dst = a + b over equal-length slices, returning the
// carry out of the top limb. dst may alias a or b.
func addLimbs(dst, a, b []uint64) uint64 {
	var c uint64
	for i := range a {
		dst[i], c = bits.Add64(a[i], b[i], c)
	}
	return c
}

// subLimbs computes dst = a - b over equal-length slices, returning the
// borrow out of the top limb (1 if a < b). dst may alias a or b.
func subLimbs(dst, a, b []uint64) uint64 {
	var borrow uint64
	for i := range a {
		dst[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

// shiftLeft1 computes dst = a<<1 over equal-length slices, returning the bit
// shifted out of the top limb.
func shiftLeft1(dst, a []uint64) uint64 {
	var carry uint64
	for i := range a {
		next := a[i] >> 63
		dst[i] = (a[i] << 1) | carry
		carry = next
	}
	return carry
}

// Add returns (a+b) mod n.
func (m *Modulus) Add(a, b Int) Int {
	out := make(Int, len(m.n))
	carry := addLimbs(out, a, b)
	if carry != 0 || cmpLimbs(out, m.n) >= 0 {
		subLimbs(out, out, m.n)
	}
	return out
}

// Sub returns (a-b) mod n.
func (m *Modulus) Sub(a, b Int) Int {
	out := make(Int, len(m.n))
	borrow := subLimbs(out, a, b)
	if borrow != 0 {
		addLimbs(out, out, m.n)
	}
	return out
}

// Neg returns (-a) mod n.
func (m *Modulus) Neg(a Int) Int {
	if a.IsZero() {
		return NewInt(len(m.n))
	}
	return m.Sub(m.n, a)
}

// mulAddWord computes dst += x*y, where dst has length len(x)+1. It returns
// the carry out of dst's top limb (the (len(x)+1)-th word); callers that
// know the carry cannot occur (mulWide, where the destination is sized to
// hold the full product) ignore it, while redc propagates it further.
func mulAddWord(dst, x []uint64, y uint64) uint64 {
	var carry uint64
	for i, xi := range x {
		hi, lo := bits.Mul64(xi, y)
		var c uint64
		lo, c = bits.Add64(lo, dst[i], 0)
		hi += c
		lo, c = bits.Add64(lo, carry, 0)
		hi += c
		dst[i] = lo
		carry = hi
	}
	var c uint64
	dst[len(x)], c = bits.Add64(dst[len(x)], carry, 0)
	return c
}

// mulWide returns the full 2*len(a)-limb product of a and b, which must have
// equal length.
func mulWide(a, b Int) Int {
	s := len(a)
	t := make(Int, 2*s)
	for i := 0; i < s; i++ {
		if b[i] != 0 {
			mulAddWord(t[i:i+s+1], a, b[i])
		}
	}
	return t
}

// Mul returns the exact product of a and b as a len(a)+len(b)-limb Int,
// growing the width rather than reducing mod anything. Unlike MontMul this
// is not tied to a Modulus; it exists for the rare case of arithmetic on
// plain exponents that can genuinely exceed one Modulus's bit width (see
// field.Tower's Frobenius, which needs q^i for i up to the tower degree).
func Mul(a, b Int) Int {
	out := make(Int, len(a)+len(b))
	for i := range a {
		if a[i] != 0 {
			mulAddWord(out[i:i+len(b)+1], b, a[i])
		}
	}
	return out
}
