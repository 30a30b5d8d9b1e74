package pairing

import (
	"fmt"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/errs"
	"github.com/HarryR/go-eip1962/field"
)

// FinalExponentiation raises f to (q^k-1)/order, the step that collapses an
// arbitrary Miller loop output into a genuine k-th root of unity comparable
// across different Miller loop runs. q^k is computed with bigint.Mul's
// unbounded-width multiply since it outgrows a single Modulus's limb count
// for k > 1; q^k-1 must then be exactly divisible by order — a precondition
// on the curve description, not something any choice of f can satisfy —
// so a nonzero remainder from bigint.QuoRem fails with errs.InvalidCurve
// rather than silently discarding it.
func FinalExponentiation(ec *Ctx, f field.Tower, order bigint.Int) (field.Tower, error) {
	q := ec.base.N()
	qk := bigint.Int{1}
	for i := 0; i < ec.degree; i++ {
		qk = bigint.Mul(qk, q)
	}
	qk[0]-- // q is odd so q^k is odd; the low limb is nonzero and this cannot borrow
	exp, rem := bigint.QuoRem(qk, order)
	if !rem.IsZero() {
		return field.Tower{}, fmt.Errorf("%w: (p^k-1) is not a multiple of the group order", errs.InvalidCurve)
	}
	return f.Pow(exp), nil
}
