package precompile

import (
	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/curve"
	"github.com/HarryR/go-eip1962/field"
	"github.com/HarryR/go-eip1962/wire"
)

// g1Params rebuilds the Fq curve.Params a G1Prefix describes.
func g1Params(prefix wire.G1Prefix) curve.Params[field.Element] {
	return curve.Params[field.Element]{
		A: field.FromCanonical(prefix.Modulus, prefix.A),
		B: field.FromCanonical(prefix.Modulus, prefix.B),
	}
}

// g1Point rebuilds an affine G1 point from its wire coordinates. The wire
// parser already ran the on-curve check (spec.md §4.F item 7); this is a
// bare reconstruction, not a re-validation.
func g1Point(ctx *bigint.Modulus, p wire.G1Point) curve.Point[field.Element] {
	return curve.NewAffine(field.FromCanonical(ctx, p.X), field.FromCanonical(ctx, p.Y))
}

// g2TowerCtx rebuilds the Fq^d tower context a G2Prefix's non-residue
// describes: m(X) = X^d - nonResidue, so the constant coefficient carried
// on TowerCtx is -nonResidue.
func g2TowerCtx(prefix wire.G2Prefix) *field.TowerCtx {
	base := prefix.Modulus
	coefs := make([]field.Element, prefix.ExtensionDegree)
	coefs[0] = field.FromCanonical(base, prefix.NonResidue).Neg()
	for i := 1; i < prefix.ExtensionDegree; i++ {
		coefs[i] = field.Zero(base)
	}
	return field.NewTowerCtx(base, coefs)
}

// g2Params rebuilds the Fq^d curve.Params a G2Prefix describes, with A and
// B embedded as constant-term tower elements.
func g2Params(prefix wire.G2Prefix, ctx *field.TowerCtx) curve.Params[field.Tower] {
	base := prefix.Modulus
	aCoeffs := make([]field.Element, prefix.ExtensionDegree)
	bCoeffs := make([]field.Element, prefix.ExtensionDegree)
	aCoeffs[0] = field.FromCanonical(base, prefix.A)
	bCoeffs[0] = field.FromCanonical(base, prefix.B)
	for i := 1; i < prefix.ExtensionDegree; i++ {
		aCoeffs[i] = field.Zero(base)
		bCoeffs[i] = field.Zero(base)
	}
	return curve.Params[field.Tower]{A: field.NewTower(ctx, aCoeffs), B: field.NewTower(ctx, bCoeffs)}
}

// g2Point rebuilds an affine G2 point from its wire coordinate vectors.
func g2Point(ctx *field.TowerCtx, base *bigint.Modulus, p wire.G2Point) curve.Point[field.Tower] {
	toTower := func(raw []bigint.Int) field.Tower {
		elems := make([]field.Element, len(raw))
		for i, v := range raw {
			elems[i] = field.FromCanonical(base, v)
		}
		return field.NewTower(ctx, elems)
	}
	return curve.NewAffine(toTower(p.X), toTower(p.Y))
}
