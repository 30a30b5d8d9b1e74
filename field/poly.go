package field

import "github.com/HarryR/go-eip1962/bigint"

// Polynomials here are plain slices of base-field Elements, index i holding
// the coefficient of X^i, used only as scratch representation inside Tower's
// general-degree inverse (see tower.go). They are always trimmed so that the
// top coefficient is nonzero, except for the zero polynomial which is kept
// at length 1.

func trimPoly(p []Element, zero Element) []Element {
	i := len(p) - 1
	for i > 0 && p[i].IsZero() {
		i--
	}
	out := make([]Element, i+1)
	copy(out, p[:i+1])
	return out
}

func polyDegree(p []Element) int { return len(p) - 1 }

func polyIsZero(p []Element) bool {
	return len(p) == 1 && p[0].IsZero()
}

func polySub(a, b []Element, zero Element) []Element {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]Element, n)
	for i := range out {
		out[i] = zero
		if i < len(a) {
			out[i] = a[i]
		}
		if i < len(b) {
			out[i] = out[i].Sub(b[i])
		}
	}
	return trimPoly(out, zero)
}

func polyScale(a []Element, s Element) []Element {
	out := make([]Element, len(a))
	for i := range a {
		out[i] = a[i].Mul(s)
	}
	return out
}

// polyMulPlain computes the full, unreduced product of a and b.
func polyMulPlain(a, b []Element, zero Element) []Element {
	out := make([]Element, len(a)+len(b)-1)
	for i := range out {
		out[i] = zero
	}
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			out[i+j] = out[i+j].Add(ai.Mul(bj))
		}
	}
	return trimPoly(out, zero)
}

// polyDivMod divides a by b (b nonzero), returning trimmed quotient and
// remainder such that a = q*b + r with deg(r) < deg(b).
func polyDivMod(a, b []Element, zero Element) (q, r []Element, err error) {
	bDeg := polyDegree(b)
	leadInv, ierr := b[bDeg].Inverse()
	if ierr != nil {
		return nil, nil, ierr
	}
	r = trimPoly(append([]Element{}, a...), zero)
	qLen := polyDegree(a) - bDeg + 1
	if qLen < 1 {
		qLen = 1
	}
	q = make([]Element, qLen)
	for i := range q {
		q[i] = zero
	}
	for {
		if polyIsZero(r) {
			break
		}
		rDeg := polyDegree(r)
		if rDeg < bDeg {
			break
		}
		shift := rDeg - bDeg
		coeff := r[rDeg].Mul(leadInv)
		q[shift] = q[shift].Add(coeff)
		scaled := polyScale(b, coeff)
		for i := 0; i <= bDeg; i++ {
			r[shift+i] = r[shift+i].Sub(scaled[i])
		}
		r = trimPoly(r, zero)
	}
	return trimPoly(q, zero), r, nil
}

// polyInverseMod computes u with u*a ≡ 1 (mod m) via the extended Euclidean
// algorithm on polynomials over the base field, used for Tower.Inverse when
// the tower degree is greater than 2 (the degree-2 case uses a closed form
// instead; see tower.go).
func polyInverseMod(a, m []Element, zero, one Element) ([]Element, error) {
	oldR, r := trimPoly(append([]Element{}, a...), zero), trimPoly(append([]Element{}, m...), zero)
	oldS, s := []Element{one}, []Element{zero}

	for !polyIsZero(r) {
		q, rem, err := polyDivMod(oldR, r, zero)
		if err != nil {
			return nil, err
		}
		oldR, r = r, rem
		qs := polyMulPlain(q, s, zero)
		newS := polySub(oldS, qs, zero)
		oldS, s = s, newS
	}

	if polyDegree(oldR) != 0 {
		return nil, bigint.ErrNotInvertible
	}
	gcdInv, err := oldR[0].Inverse()
	if err != nil {
		return nil, err
	}
	return polyScale(oldS, gcdInv), nil
}
