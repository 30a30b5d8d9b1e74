// Package curve implements the short-Weierstrass group law y^2 = x^3 + A*x + B
// generically over any field-capability type, so the same code serves both
// G1 (over Fq) and G2 (over the Fq-tower used by a curve's twist).
package curve

import (
	"errors"

	"github.com/HarryR/go-eip1962/bigint"
)

// ErrLengthMismatch is returned by MultiExp when points and scalars differ
// in length.
var ErrLengthMismatch = errors.New("curve: points and scalars length mismatch")

// FieldElement is the capability set Point[F] needs from its coordinate
// field: both field.Element (Fq) and field.Tower (Fqᵏ) implement it, which
// is what lets this package serve as both the G1 and G2 group law.
type FieldElement[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) (T, error)
	Neg() T
	IsZero() bool
	Equal(T) bool
}

// Params holds a short-Weierstrass curve's coefficients: y^2 = x^3 + A*x + B.
type Params[F any] struct {
	A, B F
}

// Point is an affine short-Weierstrass point, or the point at infinity when
// inf is set (in which case x and y are not meaningful).
type Point[F FieldElement[F]] struct {
	x, y F
	inf  bool
}

// Infinity returns the group identity.
func Infinity[F FieldElement[F]]() Point[F] {
	return Point[F]{inf: true}
}

// NewAffine constructs a finite point from its coordinates. Callers that
// need to confirm it actually lies on the curve should follow up with
// IsOnCurve.
func NewAffine[F FieldElement[F]](x, y F) Point[F] {
	return Point[F]{x: x, y: y}
}

func (p Point[F]) IsInfinity() bool { return p.inf }
func (p Point[F]) X() F             { return p.x }
func (p Point[F]) Y() F             { return p.y }

// Negate returns -p.
func (p Point[F]) Negate() Point[F] {
	if p.inf {
		return p
	}
	return Point[F]{x: p.x, y: p.y.Neg()}
}

// Equal reports whether p and q denote the same point.
func (p Point[F]) Equal(q Point[F]) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + A*x + B. The point at
// infinity is always considered on-curve.
func IsOnCurve[F FieldElement[F]](p Point[F], params Params[F]) bool {
	if p.inf {
		return true
	}
	lhs := p.y.Mul(p.y)
	x2 := p.x.Mul(p.x)
	x3 := x2.Mul(p.x)
	rhs := x3.Add(params.A.Mul(p.x)).Add(params.B)
	return lhs.Equal(rhs)
}

// Add returns p+q under the group law.
func Add[F FieldElement[F]](p, q Point[F], params Params[F]) (Point[F], error) {
	if p.inf {
		return q, nil
	}
	if q.inf {
		return p, nil
	}
	if p.x.Equal(q.x) {
		if !p.y.Equal(q.y) || p.y.IsZero() {
			// p == -q: the chord is vertical.
			return Infinity[F](), nil
		}
		return Double(p, params)
	}
	lambda, err := q.y.Sub(p.y).Div(q.x.Sub(p.x))
	if err != nil {
		return Point[F]{}, err
	}
	x3 := lambda.Mul(lambda).Sub(p.x).Sub(q.x)
	y3 := lambda.Mul(p.x.Sub(x3)).Sub(p.y)
	return Point[F]{x: x3, y: y3}, nil
}

// Double returns p+p under the group law.
func Double[F FieldElement[F]](p Point[F], params Params[F]) (Point[F], error) {
	if p.inf || p.y.IsZero() {
		return Infinity[F](), nil
	}
	x2 := p.x.Mul(p.x)
	threeX2 := x2.Add(x2).Add(x2)
	lambda, err := threeX2.Add(params.A).Div(p.y.Add(p.y))
	if err != nil {
		return Point[F]{}, err
	}
	x3 := lambda.Mul(lambda).Sub(p.x).Sub(p.x)
	y3 := lambda.Mul(p.x.Sub(x3)).Sub(p.y)
	return Point[F]{x: x3, y: y3}, nil
}

// Sub returns p-q.
func Sub[F FieldElement[F]](p, q Point[F], params Params[F]) (Point[F], error) {
	return Add(p, q.Negate(), params)
}

// ScalarMul returns scalar*p via left-to-right double-and-add. scalar is
// taken as a plain (non-negative) big-endian-agnostic bigint.Int; callers
// that need reduction mod the group order do so before calling.
func ScalarMul[F FieldElement[F]](p Point[F], scalar bigint.Int, params Params[F]) (Point[F], error) {
	result := Infinity[F]()
	bl := scalar.BitLen()
	for i := bl - 1; i >= 0; i-- {
		var err error
		result, err = Double(result, params)
		if err != nil {
			return Point[F]{}, err
		}
		if scalar.Bit(i) {
			result, err = Add(result, p, params)
			if err != nil {
				return Point[F]{}, err
			}
		}
	}
	return result, nil
}
