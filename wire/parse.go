package wire

import (
	"fmt"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/curve"
	"github.com/HarryR/go-eip1962/errs"
	"github.com/HarryR/go-eip1962/field"
)

const (
	bytesForLengthEncoding        = 1
	operationEncodingLength       = 1
	curveTypeLength               = 1
	twistTypeLength               = 1
	extensionDegreeEncodingLength = 1
)

const (
	minFieldLength = 1
	maxFieldLength = 128
)

// Parse decodes a full request into its typed Operation, running every
// validation rule of spec.md §4.F eagerly, in consume order. No partial
// operation is ever returned.
func Parse(req []byte) (Operation, error) {
	c := NewCursor(req)
	opByte, err := c.ConsumeByte()
	if err != nil {
		return nil, err
	}
	op := Opcode(opByte)
	switch op {
	case OpG1Add, OpG1Mul, OpG1MultiExp:
		return parseG1Op(c, op)
	case OpG2Add, OpG2Mul, OpG2MultiExp:
		return parseG2Op(c, op)
	case OpPairing:
		return parsePairingOp(c)
	default:
		return nil, fmt.Errorf("%w: unknown opcode %d at offset %d", errs.ParseBadEnum, opByte, c.Offset()-1)
	}
}

func validateFieldLength(n int, offset int) error {
	if n < minFieldLength || n > maxFieldLength {
		return fmt.Errorf("%w: field length %d outside [%d,%d] at offset %d", errs.InvalidCurve, n, minFieldLength, maxFieldLength, offset)
	}
	return nil
}

func validateModulus(m *bigint.Modulus, offset int) error {
	n := m.N()
	if n.BitLen() == 0 || (n.BitLen() == 1) {
		return fmt.Errorf("%w: modulus too small at offset %d", errs.InvalidCurve, offset)
	}
	if n[0]&1 == 0 {
		return fmt.Errorf("%w: modulus is even at offset %d", errs.InvalidCurve, offset)
	}
	three := bigint.FromBytes([]byte{3}, m.Limbs())
	if n.Cmp(three) < 0 {
		return fmt.Errorf("%w: modulus < 3 at offset %d", errs.InvalidCurve, offset)
	}
	return nil
}

func validateCanonical(v bigint.Int, m *bigint.Modulus, offset int) error {
	if v.Cmp(m.N()) >= 0 {
		return fmt.Errorf("%w: value >= modulus at offset %d", errs.ParseNotCanonical, offset)
	}
	return nil
}

func validateNonzero(v bigint.Int, offset int) error {
	if v.IsZero() {
		return fmt.Errorf("%w: group order is zero at offset %d", errs.InvalidCurve, offset)
	}
	return nil
}

// isNonNthRoot reports whether candidate fails to be a divisor-th power
// mod modulus, i.e. candidate^((q-1)/divisor) != 1 — the generalized
// non-residue test spec.md §4.F item 5 describes (divisor=2 is the
// standard quadratic-non-residue / Legendre check). It returns false when
// divisor does not divide q-1.
func isNonNthRoot(candidate bigint.Int, divisor uint64, m *bigint.Modulus) bool {
	n := m.N()
	qMinus1 := n.Clone()
	qMinus1[0]--

	remainder, quotient := divModSmall(qMinus1, divisor)
	if remainder != 0 {
		return false
	}
	l := m.Exp(m.ToMont(candidate), quotient)
	one := m.One()
	return !l.Equal(one)
}

// divModSmall divides the arbitrary-precision a by a small divisor,
// returning the remainder and the quotient (also arbitrary-precision).
func divModSmall(a bigint.Int, divisor uint64) (uint64, bigint.Int) {
	q := make(bigint.Int, len(a))
	var rem uint64
	for i := len(a) - 1; i >= 0; i-- {
		hi := rem
		lo := a[i]
		// 128-bit (hi:lo) / divisor using repeated shift-subtract, since
		// divisor here is always small (2 or 3).
		var qWord uint64
		for b := 63; b >= 0; b-- {
			hi = (hi << 1) | (lo >> 63)
			lo <<= 1
			if hi >= divisor {
				hi -= divisor
				qWord |= 1 << uint(b)
			}
		}
		q[i] = qWord
		rem = hi
	}
	return rem, q
}

func parseG1Prefix(c *Cursor) (G1Prefix, error) {
	fieldLenU, err := c.ConsumeUint(bytesForLengthEncoding)
	if err != nil {
		return G1Prefix{}, err
	}
	fieldLen := int(fieldLenU)
	if err := validateFieldLength(fieldLen, c.Offset()); err != nil {
		return G1Prefix{}, err
	}
	modBytes, err := c.ConsumeBytes(fieldLen)
	if err != nil {
		return G1Prefix{}, err
	}
	m := bigint.NewModulus(modBytes)
	if err := validateModulus(m, c.Offset()); err != nil {
		return G1Prefix{}, err
	}
	a, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return G1Prefix{}, err
	}
	if err := validateCanonical(a, m, c.Offset()); err != nil {
		return G1Prefix{}, err
	}
	b, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return G1Prefix{}, err
	}
	if err := validateCanonical(b, m, c.Offset()); err != nil {
		return G1Prefix{}, err
	}
	orderLenU, err := c.ConsumeUint(bytesForLengthEncoding)
	if err != nil {
		return G1Prefix{}, err
	}
	orderLen := int(orderLenU)
	orderLimbs := (orderLen*8 + 63) / 64
	if orderLimbs == 0 {
		orderLimbs = 1
	}
	order, err := c.ConsumeBigInt(orderLen, orderLimbs)
	if err != nil {
		return G1Prefix{}, err
	}
	if err := validateNonzero(order, c.Offset()); err != nil {
		return G1Prefix{}, err
	}
	return G1Prefix{FieldLength: fieldLen, Modulus: m, A: a, B: b, OrderLength: orderLen, Order: order}, nil
}

func g1CurveParams(prefix G1Prefix) curve.Params[field.Element] {
	return curve.Params[field.Element]{
		A: field.FromCanonical(prefix.Modulus, prefix.A),
		B: field.FromCanonical(prefix.Modulus, prefix.B),
	}
}

func parseG1Point(c *Cursor, prefix G1Prefix) (G1Point, error) {
	x, err := c.ConsumeBigInt(prefix.FieldLength, prefix.Modulus.Limbs())
	if err != nil {
		return G1Point{}, err
	}
	if err := validateCanonical(x, prefix.Modulus, c.Offset()); err != nil {
		return G1Point{}, err
	}
	y, err := c.ConsumeBigInt(prefix.FieldLength, prefix.Modulus.Limbs())
	if err != nil {
		return G1Point{}, err
	}
	if err := validateCanonical(y, prefix.Modulus, c.Offset()); err != nil {
		return G1Point{}, err
	}
	p := curve.NewAffine(field.FromCanonical(prefix.Modulus, x), field.FromCanonical(prefix.Modulus, y))
	if !curve.IsOnCurve(p, g1CurveParams(prefix)) {
		return G1Point{}, fmt.Errorf("%w: G1 point at offset %d", errs.NotOnCurve, c.Offset())
	}
	return G1Point{X: x, Y: y}, nil
}

func parseG1PointAndScalar(c *Cursor, prefix G1Prefix) (G1Point, bigint.Int, error) {
	p, err := parseG1Point(c, prefix)
	if err != nil {
		return G1Point{}, nil, err
	}
	scalarLimbs := (prefix.OrderLength*8 + 63) / 64
	if scalarLimbs == 0 {
		scalarLimbs = 1
	}
	scalar, err := c.ConsumeBigInt(prefix.OrderLength, scalarLimbs)
	if err != nil {
		return G1Point{}, nil, err
	}
	return p, scalar, nil
}

func parseG1Op(c *Cursor, op Opcode) (Operation, error) {
	prefix, err := parseG1Prefix(c)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpG1Add:
		p, err := parseG1Point(c, prefix)
		if err != nil {
			return nil, err
		}
		q, err := parseG1Point(c, prefix)
		if err != nil {
			return nil, err
		}
		return G1AddOp{Prefix: prefix, P: p, Q: q}, nil
	case OpG1Mul:
		p, s, err := parseG1PointAndScalar(c, prefix)
		if err != nil {
			return nil, err
		}
		return G1MulOp{Prefix: prefix, P: p, Scalar: s}, nil
	case OpG1MultiExp:
		numU, err := c.ConsumeUint(1)
		if err != nil {
			return nil, err
		}
		num := int(numU)
		points := make([]G1Point, num)
		scalars := make([]bigint.Int, num)
		for i := 0; i < num; i++ {
			p, s, err := parseG1PointAndScalar(c, prefix)
			if err != nil {
				return nil, err
			}
			points[i], scalars[i] = p, s
		}
		return G1MultiExpOp{Prefix: prefix, Points: points, Scalars: scalars}, nil
	default:
		return nil, fmt.Errorf("%w: unreachable G1 opcode %v", errs.ParseBadEnum, op)
	}
}

func parseG2Prefix(c *Cursor) (G2Prefix, error) {
	fieldLenU, err := c.ConsumeUint(bytesForLengthEncoding)
	if err != nil {
		return G2Prefix{}, err
	}
	fieldLen := int(fieldLenU)
	if err := validateFieldLength(fieldLen, c.Offset()); err != nil {
		return G2Prefix{}, err
	}
	modBytes, err := c.ConsumeBytes(fieldLen)
	if err != nil {
		return G2Prefix{}, err
	}
	m := bigint.NewModulus(modBytes)
	if err := validateModulus(m, c.Offset()); err != nil {
		return G2Prefix{}, err
	}
	degU, err := c.ConsumeUint(extensionDegreeEncodingLength)
	if err != nil {
		return G2Prefix{}, err
	}
	degree := int(degU)
	if degree != 2 && degree != 3 {
		return G2Prefix{}, fmt.Errorf("%w: unsupported extension degree %d at offset %d", errs.ParseBadEnum, degree, c.Offset())
	}
	nonResidue, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return G2Prefix{}, err
	}
	if err := validateCanonical(nonResidue, m, c.Offset()); err != nil {
		return G2Prefix{}, err
	}
	a, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return G2Prefix{}, err
	}
	if err := validateCanonical(a, m, c.Offset()); err != nil {
		return G2Prefix{}, err
	}
	b, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return G2Prefix{}, err
	}
	if err := validateCanonical(b, m, c.Offset()); err != nil {
		return G2Prefix{}, err
	}
	orderLenU, err := c.ConsumeUint(bytesForLengthEncoding)
	if err != nil {
		return G2Prefix{}, err
	}
	orderLen := int(orderLenU)
	orderLimbs := (orderLen*8 + 63) / 64
	if orderLimbs == 0 {
		orderLimbs = 1
	}
	order, err := c.ConsumeBigInt(orderLen, orderLimbs)
	if err != nil {
		return G2Prefix{}, err
	}
	if err := validateNonzero(order, c.Offset()); err != nil {
		return G2Prefix{}, err
	}
	return G2Prefix{
		FieldLength: fieldLen, Modulus: m, ExtensionDegree: degree,
		NonResidue: nonResidue, A: a, B: b, OrderLength: orderLen, Order: order,
	}, nil
}

func g2TowerCtx(prefix G2Prefix) *field.TowerCtx {
	base := prefix.Modulus
	coefs := make([]field.Element, prefix.ExtensionDegree)
	coefs[0] = field.FromCanonical(base, prefix.NonResidue).Neg()
	for i := 1; i < prefix.ExtensionDegree; i++ {
		coefs[i] = field.Zero(base)
	}
	return field.NewTowerCtx(base, coefs)
}

func g2CurveParams(prefix G2Prefix, ctx *field.TowerCtx) curve.Params[field.Tower] {
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

func parseG2Point(c *Cursor, prefix G2Prefix, ctx *field.TowerCtx) (G2Point, error) {
	readCoords := func() ([]bigint.Int, []field.Element, error) {
		raw := make([]bigint.Int, prefix.ExtensionDegree)
		elems := make([]field.Element, prefix.ExtensionDegree)
		for i := 0; i < prefix.ExtensionDegree; i++ {
			v, err := c.ConsumeBigInt(prefix.FieldLength, prefix.Modulus.Limbs())
			if err != nil {
				return nil, nil, err
			}
			if err := validateCanonical(v, prefix.Modulus, c.Offset()); err != nil {
				return nil, nil, err
			}
			raw[i] = v
			elems[i] = field.FromCanonical(prefix.Modulus, v)
		}
		return raw, elems, nil
	}
	xRaw, xElems, err := readCoords()
	if err != nil {
		return G2Point{}, err
	}
	yRaw, yElems, err := readCoords()
	if err != nil {
		return G2Point{}, err
	}
	p := curve.NewAffine(field.NewTower(ctx, xElems), field.NewTower(ctx, yElems))
	if !curve.IsOnCurve(p, g2CurveParams(prefix, ctx)) {
		return G2Point{}, fmt.Errorf("%w: G2 point at offset %d", errs.NotOnCurve, c.Offset())
	}
	return G2Point{X: xRaw, Y: yRaw}, nil
}

func parseG2PointAndScalar(c *Cursor, prefix G2Prefix, ctx *field.TowerCtx) (G2Point, bigint.Int, error) {
	p, err := parseG2Point(c, prefix, ctx)
	if err != nil {
		return G2Point{}, nil, err
	}
	scalarLimbs := (prefix.OrderLength*8 + 63) / 64
	if scalarLimbs == 0 {
		scalarLimbs = 1
	}
	scalar, err := c.ConsumeBigInt(prefix.OrderLength, scalarLimbs)
	if err != nil {
		return G2Point{}, nil, err
	}
	return p, scalar, nil
}

func parseG2Op(c *Cursor, op Opcode) (Operation, error) {
	prefix, err := parseG2Prefix(c)
	if err != nil {
		return nil, err
	}
	ctx := g2TowerCtx(prefix)
	switch op {
	case OpG2Add:
		p, err := parseG2Point(c, prefix, ctx)
		if err != nil {
			return nil, err
		}
		q, err := parseG2Point(c, prefix, ctx)
		if err != nil {
			return nil, err
		}
		return G2AddOp{Prefix: prefix, P: p, Q: q}, nil
	case OpG2Mul:
		p, s, err := parseG2PointAndScalar(c, prefix, ctx)
		if err != nil {
			return nil, err
		}
		return G2MulOp{Prefix: prefix, P: p, Scalar: s}, nil
	case OpG2MultiExp:
		numU, err := c.ConsumeUint(1)
		if err != nil {
			return nil, err
		}
		num := int(numU)
		points := make([]G2Point, num)
		scalars := make([]bigint.Int, num)
		for i := 0; i < num; i++ {
			p, s, err := parseG2PointAndScalar(c, prefix, ctx)
			if err != nil {
				return nil, err
			}
			points[i], scalars[i] = p, s
		}
		return G2MultiExpOp{Prefix: prefix, Points: points, Scalars: scalars}, nil
	default:
		return nil, fmt.Errorf("%w: unreachable G2 opcode %v", errs.ParseBadEnum, op)
	}
}

func parsePairingOp(c *Cursor) (Operation, error) {
	familyByte, err := c.ConsumeUint(curveTypeLength)
	if err != nil {
		return nil, err
	}
	family := Family(familyByte)
	switch family {
	case FamilyBLS12, FamilyBN, FamilyMNT4, FamilyMNT6, FamilyCP:
	default:
		return nil, fmt.Errorf("%w: unknown curve family %d at offset %d", errs.ParseBadEnum, familyByte, c.Offset())
	}

	fieldLenU, err := c.ConsumeUint(bytesForLengthEncoding)
	if err != nil {
		return nil, err
	}
	fieldLen := int(fieldLenU)
	if err := validateFieldLength(fieldLen, c.Offset()); err != nil {
		return nil, err
	}
	modBytes, err := c.ConsumeBytes(fieldLen)
	if err != nil {
		return nil, err
	}
	m := bigint.NewModulus(modBytes)
	if err := validateModulus(m, c.Offset()); err != nil {
		return nil, err
	}

	degree := 2
	if family == FamilyMNT6 {
		degree = 3
	}

	a, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return nil, err
	}
	if err := validateCanonical(a, m, c.Offset()); err != nil {
		return nil, err
	}
	if family == FamilyBLS12 && !a.IsZero() {
		return nil, fmt.Errorf("%w: BLS12 requires A=0 at offset %d", errs.InvalidCurve, c.Offset())
	}
	b, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return nil, err
	}
	if err := validateCanonical(b, m, c.Offset()); err != nil {
		return nil, err
	}

	orderLenU, err := c.ConsumeUint(bytesForLengthEncoding)
	if err != nil {
		return nil, err
	}
	orderLen := int(orderLenU)
	orderLimbs := (orderLen*8 + 63) / 64
	if orderLimbs == 0 {
		orderLimbs = 1
	}
	order, err := c.ConsumeBigInt(orderLen, orderLimbs)
	if err != nil {
		return nil, err
	}
	if err := validateNonzero(order, c.Offset()); err != nil {
		return nil, err
	}

	fp2NonResidue, err := c.ConsumeBigInt(fieldLen, m.Limbs())
	if err != nil {
		return nil, err
	}
	if err := validateCanonical(fp2NonResidue, m, c.Offset()); err != nil {
		return nil, err
	}
	// degree is 2 for every family but MNT6 (3): the non-residue must fail
	// to be a degree-th power for X^degree-nonResidue to actually be
	// irreducible and make G2's field a genuine extension.
	if !isNonNthRoot(fp2NonResidue, uint64(degree), m) {
		return nil, fmt.Errorf("%w: fp2 non-residue is actually a residue at offset %d", errs.InvalidCurve, c.Offset())
	}

	// fp6NonResidue carries the two-coefficient Fq2 value xi used to build
	// the flat GT tower (GT = Fq[X]/(X^2d - 2*xi0*X^d + (xi0^2-beta*xi1^2))
	// where X^d = xi, see package pairing) for the quadratic-G2 families;
	// MNT6 uses only its first coefficient, as the gamma of Fq[Y]/(Y^2-gamma).
	// Every family's GT embedding reads it, so it is read unconditionally.
	fp6NonResidue := make([]bigint.Int, 2)
	for i := range fp6NonResidue {
		v, err := c.ConsumeBigInt(fieldLen, m.Limbs())
		if err != nil {
			return nil, err
		}
		if err := validateCanonical(v, m, c.Offset()); err != nil {
			return nil, err
		}
		fp6NonResidue[i] = v
	}

	twistByte, err := c.ConsumeUint(twistTypeLength)
	if err != nil {
		return nil, err
	}
	twist := Twist(twistByte)
	if twist != TwistM && twist != TwistD {
		return nil, fmt.Errorf("%w: unknown twist type %d at offset %d", errs.ParseBadEnum, twistByte, c.Offset())
	}

	xLenU, err := c.ConsumeUint(1)
	if err != nil {
		return nil, err
	}
	xLen := int(xLenU)
	xLimbs := (xLen*8 + 63) / 64
	if xLimbs == 0 {
		xLimbs = 1
	}
	xParam, err := c.ConsumeBigInt(xLen, xLimbs)
	if err != nil {
		return nil, err
	}

	sign, err := c.ConsumeByte()
	if err != nil {
		return nil, err
	}

	numPairsU, err := c.ConsumeUint(1)
	if err != nil {
		return nil, err
	}
	numPairs := int(numPairsU)

	descriptor := PairingDescriptor{
		Family: family, FieldLength: fieldLen, Modulus: m, ExtensionDegree: degree,
		A: a, B: b, OrderLength: orderLen, Order: order,
		Fp2NonResidue: fp2NonResidue, Fp6NonResidue: fp6NonResidue,
		TwistKind: twist, XParam: xParam, Sign: sign,
	}

	g1Prefix := G1Prefix{FieldLength: fieldLen, Modulus: m, A: a, B: b, OrderLength: orderLen, Order: order}
	g2Prefix := G2Prefix{
		FieldLength: fieldLen, Modulus: m, ExtensionDegree: degree,
		NonResidue: fp2NonResidue, A: a, B: b, OrderLength: orderLen, Order: order,
	}
	g2Ctx := g2TowerCtx(g2Prefix)

	pairs := make([]PairingPair, numPairs)
	for i := 0; i < numPairs; i++ {
		g1, err := parseG1Point(c, g1Prefix)
		if err != nil {
			return nil, err
		}
		g2, err := parseG2Point(c, g2Prefix, g2Ctx)
		if err != nil {
			return nil, err
		}
		pairs[i] = PairingPair{G1: g1, G2: g2}
	}

	return PairingOp{Descriptor: descriptor, Pairs: pairs}, nil
}
