package curve

import (
	"context"
	"math/big"
	"testing"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/field"
	"github.com/stretchr/testify/require"
)

// secp-like toy curve for hand-checkable arithmetic: y^2 = x^3 + 2x + 3 mod 97,
// with a known point (3, 6): 6^2=36, 3^3+2*3+3=27+6+3=36. On curve.
func toyParams() (Params[field.Element], *bigint.Modulus) {
	ctx := bigint.NewModulus(big.NewInt(97).Bytes())
	a := field.FromCanonical(ctx, bigint.FromBytes(big.NewInt(2).Bytes(), ctx.Limbs()))
	b := field.FromCanonical(ctx, bigint.FromBytes(big.NewInt(3).Bytes(), ctx.Limbs()))
	return Params[field.Element]{A: a, B: b}, ctx
}

func toyElem(ctx *bigint.Modulus, v int64) field.Element {
	return field.FromCanonical(ctx, bigint.FromBytes(big.NewInt(v).Bytes(), ctx.Limbs()))
}

func TestIsOnCurve(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))
	require.True(t, IsOnCurve(p, params))

	bad := NewAffine(toyElem(ctx, 3), toyElem(ctx, 7))
	require.False(t, IsOnCurve(bad, params))

	require.True(t, IsOnCurve(Infinity[field.Element](), params))
}

func TestAddDoubleConsistency(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))

	viaAdd, err := Add(p, p, params)
	require.NoError(t, err)
	viaDouble, err := Double(p, params)
	require.NoError(t, err)
	require.True(t, viaAdd.Equal(viaDouble))
	require.True(t, IsOnCurve(viaDouble, params))
}

func TestAddIdentity(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))

	sum, err := Add(p, Infinity[field.Element](), params)
	require.NoError(t, err)
	require.True(t, sum.Equal(p))
}

func TestAddNegationIsInfinity(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))

	sum, err := Add(p, p.Negate(), params)
	require.NoError(t, err)
	require.True(t, sum.IsInfinity())
}

func TestScalarMulMatchesRepeatedAdd(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))

	acc := Infinity[field.Element]()
	for i := 0; i < 7; i++ {
		var err error
		acc, err = Add(acc, p, params)
		require.NoError(t, err)
	}

	scalar := bigint.FromBytes(big.NewInt(7).Bytes(), ctx.Limbs())
	viaMul, err := ScalarMul(p, scalar, params)
	require.NoError(t, err)
	require.True(t, acc.Equal(viaMul))
}

func TestMultiExpNaiveMatchesScalarMulSum(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))
	dbl, err := Double(p, params)
	require.NoError(t, err)

	points := []Point[field.Element]{p, dbl}
	scalars := []bigint.Int{
		bigint.FromBytes(big.NewInt(5).Bytes(), ctx.Limbs()),
		bigint.FromBytes(big.NewInt(11).Bytes(), ctx.Limbs()),
	}

	got, err := MultiExp(context.Background(), points, scalars, params)
	require.NoError(t, err)

	t1, err := ScalarMul(points[0], scalars[0], params)
	require.NoError(t, err)
	t2, err := ScalarMul(points[1], scalars[1], params)
	require.NoError(t, err)
	want, err := Add(t1, t2, params)
	require.NoError(t, err)

	require.True(t, got.Equal(want))
}

func TestMultiExpPippengerMatchesNaive(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))

	const n = 40 // above pippengerThreshold
	points := make([]Point[field.Element], n)
	scalars := make([]bigint.Int, n)
	cur := p
	for i := 0; i < n; i++ {
		points[i] = cur
		scalars[i] = bigint.FromBytes(big.NewInt(int64(i+1)).Bytes(), ctx.Limbs())
		var err error
		cur, err = Add(cur, p, params)
		require.NoError(t, err)
	}

	viaPippenger, err := multiExpPippenger(context.Background(), points, scalars, params)
	require.NoError(t, err)
	viaNaive, err := multiExpNaive(context.Background(), points, scalars, params)
	require.NoError(t, err)
	require.True(t, viaPippenger.Equal(viaNaive))
}

func TestMultiExpLengthMismatch(t *testing.T) {
	params, ctx := toyParams()
	p := NewAffine(toyElem(ctx, 3), toyElem(ctx, 6))
	_, err := MultiExp(context.Background(), []Point[field.Element]{p}, nil, params)
	require.ErrorIs(t, err, ErrLengthMismatch)
}
