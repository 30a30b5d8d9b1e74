package wire

import (
	"errors"
	"testing"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/errs"
	"github.com/stretchr/testify/require"
)

// buildG1AddRequest assembles a valid G1_ADD request over the toy curve
// y^2 = x^3 + 2x + 3 mod 97 with generator-ish point (3,6) — a small
// hand-checked curve used throughout the arithmetic package tests, chosen
// here too since every intermediate value is easy to verify by hand.
func buildG1AddRequest(t *testing.T) []byte {
	t.Helper()
	buf := []byte{byte(OpG1Add)}
	buf = append(buf, 1)    // field length
	buf = append(buf, 97)   // modulus
	buf = append(buf, 2)    // A
	buf = append(buf, 3)    // B
	buf = append(buf, 1)    // order length
	buf = append(buf, 5)    // order (placeholder, not prime-checked)
	buf = append(buf, 3, 6) // P = (3,6)
	buf = append(buf, 3, 6) // Q = (3,6), so this is really P+P
	return buf
}

func TestParseG1AddRoundTrip(t *testing.T) {
	req := buildG1AddRequest(t)
	op, err := Parse(req)
	require.NoError(t, err)
	add, ok := op.(G1AddOp)
	require.True(t, ok)
	require.Equal(t, OpG1Add, add.Opcode())
	require.Equal(t, 1, add.Prefix.FieldLength)
}

func TestParseUnknownOpcode(t *testing.T) {
	_, err := Parse([]byte{0xFF})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ParseBadEnum))
}

func TestParseTruncatedMidScalar(t *testing.T) {
	// G1_MUL with a 2-byte order, so the scalar is 2 bytes wide; only the
	// first of its two bytes is present.
	req := []byte{byte(OpG1Mul)}
	req = append(req, 1, 97, 2, 3, 2, 0, 5) // field length, modulus, A, B, order length, order
	req = append(req, 3, 6)                 // P
	req = append(req, 0)                    // scalar truncated after one byte
	_, err := Parse(req)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ParseTruncated))
}

func TestParseNonCanonicalCoordinate(t *testing.T) {
	req := buildG1AddRequest(t)
	// P.x := 97, equal to the modulus, so it is not canonical.
	req[7] = 97
	_, err := Parse(req)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ParseNotCanonical))
}

func TestParsePointNotOnCurve(t *testing.T) {
	req := buildG1AddRequest(t)
	// P.y := 7 instead of 6, which does not satisfy y^2 = x^3+2x+3 at x=3.
	req[8] = 7
	_, err := Parse(req)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.NotOnCurve))
}

func TestParseZeroOrderRejected(t *testing.T) {
	req := buildG1AddRequest(t)
	req[6] = 0 // order := 0, keeping order length at 1 byte
	_, err := Parse(req)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.InvalidCurve))
}

func TestParseEvenModulusRejected(t *testing.T) {
	req := buildG1AddRequest(t)
	req[2] = 98 // modulus := 98, even
	_, err := Parse(req)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.InvalidCurve))
}

func TestParseFieldLengthOutOfRange(t *testing.T) {
	req := []byte{byte(OpG1Add), 0}
	_, err := Parse(req)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.InvalidCurve))
}

func TestParseG1MulRoundTrip(t *testing.T) {
	buf := []byte{byte(OpG1Mul)}
	buf = append(buf, 1, 97, 2, 3, 1, 5)
	buf = append(buf, 3, 6) // point
	buf = append(buf, 4)    // scalar
	op, err := Parse(buf)
	require.NoError(t, err)
	mul, ok := op.(G1MulOp)
	require.True(t, ok)
	require.Equal(t, OpG1Mul, mul.Opcode())
}

func TestParseG1MultiExpRoundTrip(t *testing.T) {
	buf := []byte{byte(OpG1MultiExp)}
	buf = append(buf, 1, 97, 2, 3, 1, 5)
	buf = append(buf, 2)    // count
	buf = append(buf, 3, 6) // point 1
	buf = append(buf, 1)    // scalar 1
	buf = append(buf, 3, 6) // point 2
	buf = append(buf, 2)    // scalar 2
	op, err := Parse(buf)
	require.NoError(t, err)
	me, ok := op.(G1MultiExpOp)
	require.True(t, ok)
	require.Len(t, me.Points, 2)
	require.Len(t, me.Scalars, 2)
}

func TestParseG2AddRoundTrip(t *testing.T) {
	// A G2 prefix over F97 declaring X^2 = -1. Since 97 = 1 mod 4, -1 is
	// in fact a square mod 97 (22^2 = 484 = 96 mod 97), so this is not a
	// genuine extension; the G2 prefix parser does not test the declared
	// non-residue, and the curve is degenerate (A=B=0) so every
	// (0,0)-style coordinate trivially satisfies y^2=x^3, keeping this
	// test about wire shape rather than curve arithmetic.
	buf := []byte{byte(OpG2Add)}
	buf = append(buf, 1, 97) // field length, modulus
	buf = append(buf, 2)     // extension degree
	buf = append(buf, 96)    // non-residue
	buf = append(buf, 0, 0)  // A, B
	buf = append(buf, 1, 5)  // order length, order
	buf = append(buf, 0, 0, 0, 0) // P = (0+0i, 0+0i)
	buf = append(buf, 0, 0, 0, 0) // Q = (0+0i, 0+0i)
	op, err := Parse(buf)
	require.NoError(t, err)
	add, ok := op.(G2AddOp)
	require.True(t, ok)
	require.Equal(t, OpG2Add, add.Opcode())
}

func testModulus97(t *testing.T) *bigint.Modulus {
	t.Helper()
	return bigint.NewModulus([]byte{97})
}

func testInt97(v byte) bigint.Int {
	return bigint.FromBytes([]byte{v}, 1)
}

func TestIsNonNthRootRejectsResidue(t *testing.T) {
	m := testModulus97(t)
	// 4 = 2^2 is a quadratic residue mod 97, so it must fail the check.
	four := testInt97(4)
	require.False(t, isNonNthRoot(four, 2, m))
}

func TestIsNonNthRootAcceptsNonResidue(t *testing.T) {
	m := testModulus97(t)
	// 5 is a quadratic non-residue mod 97 (verified with an exhaustive
	// square table over F97: no x in [1,96] has x^2 == 5 mod 97).
	five := testInt97(5)
	require.True(t, isNonNthRoot(five, 2, m))
}
