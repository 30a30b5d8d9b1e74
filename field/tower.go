package field

import "github.com/HarryR/go-eip1962/bigint"

// TowerCtx describes a degree-k extension Fqᵏ = Fq[X]/(m(X)) of the base
// field, where m(X) = X^k + c[k-1]*X^(k-1) + ... + c[0] is given by its
// length-k coefficient vector (the leading term is implicit). Every Tower
// built from a TowerCtx shares the same base modulus and reduction
// polynomial.
type TowerCtx struct {
	base     *bigint.Modulus
	degree   int
	modCoefs []Element // length degree, in the base field
}

// NewTowerCtx builds a tower context from its reduction polynomial's
// coefficient vector. len(modCoefs) is the extension degree.
func NewTowerCtx(base *bigint.Modulus, modCoefs []Element) *TowerCtx {
	degree := len(modCoefs)
	cp := make([]Element, degree)
	copy(cp, modCoefs)
	return &TowerCtx{base: base, degree: degree, modCoefs: cp}
}

func (c *TowerCtx) Degree() int            { return c.degree }
func (c *TowerCtx) Base() *bigint.Modulus  { return c.base }

// monicModulus returns the reduction polynomial as a length degree+1
// coefficient slice with its implicit leading 1 made explicit, for use by
// the general polynomial inversion routine.
func (c *TowerCtx) monicModulus() []Element {
	m := make([]Element, c.degree+1)
	copy(m, c.modCoefs)
	m[c.degree] = One(c.base)
	return m
}

// Tower is an element of Fqᵏ, represented by its length-degree coefficient
// vector coeffs[i] = coefficient of X^i.
type Tower struct {
	ctx    *TowerCtx
	coeffs []Element
}

// NewTower builds a Tower element from exactly ctx.Degree() base-field
// coefficients.
func NewTower(ctx *TowerCtx, coeffs []Element) Tower {
	cp := make([]Element, ctx.degree)
	copy(cp, coeffs)
	return Tower{ctx: ctx, coeffs: cp}
}

// ZeroTower returns the additive identity of ctx.
func ZeroTower(ctx *TowerCtx) Tower {
	z := make([]Element, ctx.degree)
	for i := range z {
		z[i] = Zero(ctx.base)
	}
	return Tower{ctx: ctx, coeffs: z}
}

// OneTower returns the multiplicative identity of ctx.
func OneTower(ctx *TowerCtx) Tower {
	t := ZeroTower(ctx)
	t.coeffs[0] = One(ctx.base)
	return t
}

func (t Tower) Ctx() *TowerCtx { return t.ctx }

// Coeffs returns the coefficient vector; callers must not mutate it.
func (t Tower) Coeffs() []Element { return t.coeffs }

func (t Tower) IsZero() bool {
	for _, c := range t.coeffs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

func (t Tower) Equal(o Tower) bool {
	for i := range t.coeffs {
		if !t.coeffs[i].Equal(o.coeffs[i]) {
			return false
		}
	}
	return true
}

func (t Tower) Add(o Tower) Tower {
	out := make([]Element, t.ctx.degree)
	for i := range out {
		out[i] = t.coeffs[i].Add(o.coeffs[i])
	}
	return Tower{ctx: t.ctx, coeffs: out}
}

func (t Tower) Sub(o Tower) Tower {
	out := make([]Element, t.ctx.degree)
	for i := range out {
		out[i] = t.coeffs[i].Sub(o.coeffs[i])
	}
	return Tower{ctx: t.ctx, coeffs: out}
}

func (t Tower) Neg() Tower {
	out := make([]Element, t.ctx.degree)
	for i := range out {
		out[i] = t.coeffs[i].Neg()
	}
	return Tower{ctx: t.ctx, coeffs: out}
}

func (t Tower) Double() Tower { return t.Add(t) }

// Mul computes the product of t and o, reducing modulo the tower's
// defining polynomial: a schoolbook polynomial multiply producing a
// degree-(2k-2) raw product, followed by back-substitution of X^k with
// -(c[0] + c[1]*X + ... + c[k-1]*X^(k-1)) for every degree >= k.
func (t Tower) Mul(o Tower) Tower {
	k := t.ctx.degree
	base := t.ctx.base
	zero := Zero(base)

	raw := make([]Element, 2*k-1)
	for i := range raw {
		raw[i] = zero
	}
	for i := 0; i < k; i++ {
		if t.coeffs[i].IsZero() {
			continue
		}
		for j := 0; j < k; j++ {
			raw[i+j] = raw[i+j].Add(t.coeffs[i].Mul(o.coeffs[j]))
		}
	}

	for deg := 2*k - 2; deg >= k; deg-- {
		top := raw[deg]
		if top.IsZero() {
			continue
		}
		raw[deg] = zero
		for i := 0; i < k; i++ {
			raw[deg-k+i] = raw[deg-k+i].Sub(top.Mul(t.ctx.modCoefs[i]))
		}
	}

	return Tower{ctx: t.ctx, coeffs: raw[:k]}
}

func (t Tower) Square() Tower { return t.Mul(t) }

// Inverse returns t^-1. Degree-2 towers use the closed form
// (a0 - a1*X) / (a0^2 - beta*a1^2) with beta = -modCoefs[0] (valid when
// modCoefs[1] == 0, true of every quadratic extension this package builds);
// higher-degree towers fall back to the general extended Euclidean
// algorithm on polynomials over the base field.
func (t Tower) Inverse() (Tower, error) {
	base := t.ctx.base
	if t.ctx.degree == 2 {
		a0, a1 := t.coeffs[0], t.coeffs[1]
		beta := t.ctx.modCoefs[0].Neg()
		norm := a0.Square().Sub(beta.Mul(a1.Square()))
		normInv, err := norm.Inverse()
		if err != nil {
			return Tower{}, err
		}
		return Tower{ctx: t.ctx, coeffs: []Element{
			a0.Mul(normInv),
			a1.Neg().Mul(normInv),
		}}, nil
	}

	zero, one := Zero(base), One(base)
	inv, err := polyInverseMod(t.coeffs, t.ctx.monicModulus(), zero, one)
	if err != nil {
		return Tower{}, err
	}
	padded := make([]Element, t.ctx.degree)
	for i := range padded {
		padded[i] = zero
	}
	copy(padded, inv)
	return Tower{ctx: t.ctx, coeffs: padded}, nil
}

func (t Tower) Div(o Tower) (Tower, error) {
	inv, err := o.Inverse()
	if err != nil {
		return Tower{}, err
	}
	return t.Mul(inv), nil
}

// Pow raises t to a plain-form exponent via left-to-right square-and-multiply.
func (t Tower) Pow(exp bigint.Int) Tower {
	result := OneTower(t.ctx)
	bl := exp.BitLen()
	for i := bl - 1; i >= 0; i-- {
		result = result.Square()
		if exp.Bit(i) {
			result = result.Mul(t)
		}
	}
	return result
}

// Frobenius applies the power-th iterate of the Frobenius endomorphism
// x -> x^q, computed directly as exponentiation by q^power. q^power grows
// past the width of any single Modulus for power > 1, so the exponent is
// built with bigint.Mul's unbounded-width multiply rather than anything
// tied to the base Modulus.
func (t Tower) Frobenius(power int) Tower {
	q := t.ctx.base.N()
	exp := bigint.Int{1}
	for i := 0; i < power; i++ {
		exp = bigint.Mul(exp, q)
	}
	return t.Pow(exp)
}

// Norm returns N(a) = prod_{i=0}^{k-1} a^(q^i), which always lands in the
// base field Fq (every non-constant coefficient of the product cancels).
func Norm(t Tower) Element {
	acc := OneTower(t.ctx)
	for i := 0; i < t.ctx.degree; i++ {
		acc = acc.Mul(t.Frobenius(i))
	}
	return acc.coeffs[0]
}

// FrobeniusCoeffs returns, for the given Frobenius power, the image of
// every basis vector X^j under x -> x^(q^power) as a tower element — the
// j-th returned Tower is Frobenius(power) applied to X^j. The table is
// computed on each call; Tower.Frobenius does not consult it.
func FrobeniusCoeffs(ctx *TowerCtx, power int) []Tower {
	out := make([]Tower, ctx.degree)
	for j := 0; j < ctx.degree; j++ {
		basis := ZeroTower(ctx)
		basis.coeffs[j] = One(ctx.base)
		out[j] = basis.Frobenius(power)
	}
	return out
}
