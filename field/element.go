// Package field implements the prime field Fq and its tower extensions
// Fqᵏ over a runtime-supplied modulus, built on top of package bigint's
// Montgomery arithmetic.
package field

import (
	"errors"

	"github.com/HarryR/go-eip1962/bigint"
)

// ErrNotCanonical is returned when decoding a byte string whose integer
// value is >= the field modulus.
var ErrNotCanonical = errors.New("field: value is not canonical (>= modulus)")

// Element is a residue in the prime field Fq, held internally in
// Montgomery form; every observable boundary (encode, Canonical, Equal)
// presents the plain residue in [0, q).
type Element struct {
	ctx *bigint.Modulus
	v   bigint.Int // Montgomery form
}

// Ctx returns the modulus context this element belongs to.
func (a Element) Ctx() *bigint.Modulus { return a.ctx }

// Zero returns the additive identity of the field described by ctx.
func Zero(ctx *bigint.Modulus) Element {
	return Element{ctx: ctx, v: ctx.Zero()}
}

// One returns the multiplicative identity of the field described by ctx.
func One(ctx *bigint.Modulus) Element {
	return Element{ctx: ctx, v: ctx.One()}
}

// FromCanonical builds an Element from a plain (non-Montgomery) residue,
// which must already be reduced into [0, q) by the caller (the wire parser
// enforces this on every value it decodes; see errs.ParseNotCanonical).
func FromCanonical(ctx *bigint.Modulus, plain bigint.Int) Element {
	return Element{ctx: ctx, v: ctx.ToMont(plain)}
}

// FromBytes decodes a canonical big-endian byte string into an Element,
// rejecting values >= the modulus.
func FromBytes(ctx *bigint.Modulus, b []byte) (Element, error) {
	plain := bigint.FromBytes(b, ctx.Limbs())
	if plain.Cmp(ctx.N()) >= 0 {
		return Element{}, ErrNotCanonical
	}
	return FromCanonical(ctx, plain), nil
}

// Canonical returns the plain (non-Montgomery) residue in [0, q).
func (a Element) Canonical() bigint.Int {
	return a.ctx.FromMont(a.v)
}

// Bytes encodes the element as a canonical big-endian byte string of
// ctx.ByteLen() bytes.
func (a Element) Bytes() []byte {
	return bigint.ToBytes(a.Canonical(), a.ctx.ByteLen())
}

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool {
	return a.v.IsZero()
}

// Equal reports whether a and b represent the same residue. a and b must
// share the same modulus context.
func (a Element) Equal(b Element) bool {
	return a.v.Equal(b.v)
}

// Add returns a+b mod q.
func (a Element) Add(b Element) Element {
	return Element{ctx: a.ctx, v: a.ctx.Add(a.v, b.v)}
}

// Sub returns a-b mod q.
func (a Element) Sub(b Element) Element {
	return Element{ctx: a.ctx, v: a.ctx.Sub(a.v, b.v)}
}

// Neg returns -a mod q.
func (a Element) Neg() Element {
	return Element{ctx: a.ctx, v: a.ctx.Neg(a.v)}
}

// Mul returns a*b mod q.
func (a Element) Mul(b Element) Element {
	return Element{ctx: a.ctx, v: a.ctx.MontMul(a.v, b.v)}
}

// Double returns a+a.
func (a Element) Double() Element {
	return a.Add(a)
}

// Square returns a*a.
func (a Element) Square() Element {
	return a.Mul(a)
}

// Inverse returns a^-1 mod q. Returns bigint.ErrNotInvertible for a == 0.
func (a Element) Inverse() (Element, error) {
	plain := a.Canonical()
	inv, err := a.ctx.Inverse(plain)
	if err != nil {
		return Element{}, err
	}
	return FromCanonical(a.ctx, inv), nil
}

// Div returns a/b mod q.
func (a Element) Div(b Element) (Element, error) {
	inv, err := b.Inverse()
	if err != nil {
		return Element{}, err
	}
	return a.Mul(inv), nil
}

// Pow returns a raised to the given plain (non-Montgomery) exponent.
func (a Element) Pow(exp bigint.Int) Element {
	return Element{ctx: a.ctx, v: a.ctx.Exp(a.v, exp)}
}

// Legendre returns 0, 1 or -1 according to whether a is zero, a nonzero
// quadratic residue, or a non-residue mod q.
func Legendre(a Element) int {
	if a.IsZero() {
		return 0
	}
	euler := eulerExponent(a.ctx)
	r := a.Pow(euler)
	one := One(a.ctx)
	if r.Equal(one) {
		return 1
	}
	return -1
}

// IsQuadraticResidue reports whether a is a square mod q; zero counts as a
// square (Legendre 0), so only non-residues report false.
func IsQuadraticResidue(a Element) bool {
	return Legendre(a) != -1
}

// eulerExponent returns (q-1)/2 as a plain-form exponent; q is always odd
// so this division is exact.
func eulerExponent(ctx *bigint.Modulus) bigint.Int {
	n := ctx.N()
	out := n.Clone()
	out[0]-- // n is odd, so the low limb is nonzero and this cannot borrow
	shiftRightOne(out)
	return out
}

// shiftRightOne divides x by two in place, treating it as an unsigned
// little-endian limb sequence.
func shiftRightOne(x bigint.Int) {
	var carry uint64
	for i := len(x) - 1; i >= 0; i-- {
		next := x[i] & 1
		x[i] = (x[i] >> 1) | (carry << 63)
		carry = next
	}
}
