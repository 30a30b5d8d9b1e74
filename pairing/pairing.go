package pairing

import (
	"context"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/curve"
	"github.com/HarryR/go-eip1962/errs"
	"github.com/HarryR/go-eip1962/field"
	"github.com/HarryR/go-eip1962/wire"
)

// toG2Tower rebuilds a G2 coordinate (an ExtensionDegree-length vector of
// plain Fq residues, as parsed off the wire) as a field.Tower over ec's G2
// context (Fq2, or Fq3 for MNT6).
func toG2Tower(ec *Ctx, raw []bigint.Int) field.Tower {
	elems := make([]field.Element, len(raw))
	for i, v := range raw {
		elems[i] = field.FromCanonical(ec.base, v)
	}
	return field.NewTower(ec.g2Ctx, elems)
}

// g2CurveParams rebuilds the twisted curve's A/B as tower constants over
// ec.g2Ctx, zero-padded out to its extension degree — the same shape
// wire's unexported g2CurveParams builds, needed again here (subgroup
// check below) since this package can't reach wire's private helper.
func g2CurveParams(ec *Ctx, d wire.PairingDescriptor) curve.Params[field.Tower] {
	degree := ec.g2Ctx.Degree()
	aCoeffs := make([]field.Element, degree)
	bCoeffs := make([]field.Element, degree)
	aCoeffs[0] = field.FromCanonical(ec.base, d.A)
	bCoeffs[0] = field.FromCanonical(ec.base, d.B)
	for i := 1; i < degree; i++ {
		aCoeffs[i] = field.Zero(ec.base)
		bCoeffs[i] = field.Zero(ec.base)
	}
	return curve.Params[field.Tower]{A: field.NewTower(ec.g2Ctx, aCoeffs), B: field.NewTower(ec.g2Ctx, bCoeffs)}
}

// checkSubgroup rejects a point that isn't in the prime-order subgroup:
// order*P must be the identity. Infinity trivially passes.
func checkSubgroup[F curve.FieldElement[F]](p curve.Point[F], order bigint.Int, params curve.Params[F]) error {
	if p.IsInfinity() {
		return nil
	}
	np, err := curve.ScalarMul(p, order, params)
	if err != nil {
		return err
	}
	if !np.IsInfinity() {
		return errs.NotInSubgroup
	}
	return nil
}

// Check evaluates the EIP-1962 pairing check: the product of e(P_i, Q_i)
// over every pair equals 1 in GT. An empty pair list is vacuously true.
func Check(ctx context.Context, d wire.PairingDescriptor, pairs []wire.PairingPair) (bool, error) {
	ec, err := NewCtx(d)
	if err != nil {
		return false, err
	}

	gtParams := curve.Params[field.Tower]{
		A: gtConst(ec, field.FromCanonical(ec.base, d.A)),
		B: gtConst(ec, field.FromCanonical(ec.base, d.B)),
	}
	g1Params := curve.Params[field.Element]{
		A: field.FromCanonical(ec.base, d.A),
		B: field.FromCanonical(ec.base, d.B),
	}
	g2Params := g2CurveParams(ec, d)

	// BN/MNT4/CP curves carry a signed ate parameter; a negative x runs the
	// Miller loop on |x| and inverts the result, since f_{-x,Q}(P) and
	// f_{x,Q}(P) differ by an inversion up to a final-exponentiation-
	// absorbed factor.
	loopCount := d.XParam
	negate := d.Sign != 0

	acc := gtOne(ec)
	for _, pr := range pairs {
		select {
		case <-ctx.Done():
			return false, errs.Cancelled
		default:
		}

		g1 := curve.NewAffine(
			field.FromCanonical(ec.base, pr.G1.X),
			field.FromCanonical(ec.base, pr.G1.Y),
		)
		g2Raw := curve.NewAffine(toG2Tower(ec, pr.G2.X), toG2Tower(ec, pr.G2.Y))

		if err := checkSubgroup(g1, d.Order, g1Params); err != nil {
			return false, err
		}
		if err := checkSubgroup(g2Raw, d.Order, g2Params); err != nil {
			return false, err
		}

		p := EmbedG1(ec, g1)
		q, err := EmbedG2(ec, g2Raw)
		if err != nil {
			return false, err
		}

		f, err := MillerLoop(ctx, ec, q, p, gtParams, loopCount)
		if err != nil {
			return false, err
		}
		if negate {
			f, err = gtOne(ec).Div(f)
			if err != nil {
				return false, err
			}
		}
		acc = acc.Mul(f)
	}

	result, err := FinalExponentiation(ec, acc, d.Order)
	if err != nil {
		return false, err
	}
	return result.Equal(gtOne(ec)), nil
}
