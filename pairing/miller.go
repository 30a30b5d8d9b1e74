package pairing

import (
	"context"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/curve"
	"github.com/HarryR/go-eip1962/errs"
	"github.com/HarryR/go-eip1962/field"
)

// lineFunction evaluates, at T, the line through P1 and P2 (tangent at P1
// if P1==P2) — the function whose divisor the Miller loop accumulates.
// Mirrors the three cases of the textbook construction: a chord, a
// tangent, or (when P2 is P1's negation) the vertical line through their
// sum at infinity.
func lineFunction(p1, p2, t curve.Point[field.Tower], params curve.Params[field.Tower]) (field.Tower, error) {
	x1, y1 := p1.X(), p1.Y()
	x2, y2 := p2.X(), p2.Y()
	xt, yt := t.X(), t.Y()

	if !x1.Equal(x2) {
		m, err := y2.Sub(y1).Div(x2.Sub(x1))
		if err != nil {
			return field.Tower{}, err
		}
		return m.Mul(xt.Sub(x1)).Sub(yt.Sub(y1)), nil
	}
	if y1.Equal(y2) {
		three := x1.Square().Double().Add(x1.Square())
		m, err := three.Add(params.A).Div(y1.Double())
		if err != nil {
			return field.Tower{}, err
		}
		return m.Mul(xt.Sub(x1)).Sub(yt.Sub(y1)), nil
	}
	return xt.Sub(x1), nil
}

// MillerLoop computes f_{loopCount,Q}(P) over GT, walking loopCount's bits
// MSB-to-LSB (skipping the leading 1, per the standard algorithm) and
// polling ctx for cooperative cancellation once per bit.
func MillerLoop(ctx context.Context, ec *Ctx, q, p curve.Point[field.Tower], params curve.Params[field.Tower], loopCount bigint.Int) (field.Tower, error) {
	if q.IsInfinity() || p.IsInfinity() {
		return gtOne(ec), nil
	}
	r := q
	f := gtOne(ec)
	bl := loopCount.BitLen()
	for i := bl - 2; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return field.Tower{}, errs.Cancelled
		default:
		}
		lf, err := lineFunction(r, r, p, params)
		if err != nil {
			return field.Tower{}, err
		}
		f = f.Mul(f).Mul(lf)
		r, err = curve.Double(r, params)
		if err != nil {
			return field.Tower{}, err
		}
		if loopCount.Bit(i) {
			lf2, err := lineFunction(r, q, p, params)
			if err != nil {
				return field.Tower{}, err
			}
			f = f.Mul(lf2)
			r, err = curve.Add(r, q, params)
			if err != nil {
				return field.Tower{}, err
			}
		}
	}
	return f, nil
}
