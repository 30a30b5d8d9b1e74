package precompile

import (
	"context"
	"errors"
	"testing"

	"github.com/HarryR/go-eip1962/errs"
	"github.com/HarryR/go-eip1962/wire"
	"github.com/stretchr/testify/require"
)

// toyG1Prefix matches wire/parse_test.go's buildG1AddRequest curve: y^2 =
// x^3 + 2x + 3 mod 97, generator-ish point (3,6) of order 5 (the full group
// has 100 points including infinity).
func toyG1Prefix() []byte {
	return []byte{1, 97, 2, 3, 1, 5} // field length, modulus, A, B, order length, order
}

func TestDispatchG1AddIdentity(t *testing.T) {
	buf := []byte{byte(wire.OpG1Add)}
	buf = append(buf, toyG1Prefix()...)
	buf = append(buf, 3, 6)  // P = (3,6)
	buf = append(buf, 3, 91) // Q = -P = (3,91)

	out, err := Dispatch(context.Background(), buf)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 2), out, "g + (-g) must encode as infinity")
}

func TestDispatchG1MulByZero(t *testing.T) {
	buf := []byte{byte(wire.OpG1Mul)}
	buf = append(buf, toyG1Prefix()...)
	buf = append(buf, 3, 6) // P
	buf = append(buf, 0)    // scalar = 0
	out, err := Dispatch(context.Background(), buf)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 2), out, "P*0 must encode as infinity")
}

func TestDispatchG1MulByOrderMinusOne(t *testing.T) {
	buf := []byte{byte(wire.OpG1Mul)}
	buf = append(buf, toyG1Prefix()...)
	buf = append(buf, 3, 6) // P, order 5
	buf = append(buf, 4)    // scalar = order-1 = 4
	out, err := Dispatch(context.Background(), buf)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 91}, out, "g*(order-1) must equal -g")
}

func TestDispatchUnknownOpcode(t *testing.T) {
	_, err := Dispatch(context.Background(), []byte{0xFF})
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ParseBadEnum))
}

func TestDispatchTruncatedMidScalar(t *testing.T) {
	buf := []byte{byte(wire.OpG1Mul)}
	buf = append(buf, 1, 97, 2, 3, 2, 0, 5) // toy curve with a 2-byte order (= 5)
	buf = append(buf, 3, 6)                 // P
	buf = append(buf, 0)                    // scalar truncated after one of its two bytes
	_, err := Dispatch(context.Background(), buf)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ParseTruncated))
}

func TestDispatchBLS12PairingNonzeroARejected(t *testing.T) {
	buf := []byte{byte(wire.OpPairing)}
	buf = append(buf, byte(wire.FamilyBLS12))
	buf = append(buf, 1, 97) // field length, modulus
	buf = append(buf, 1, 3)  // A=1 (invalid for BLS12), B=3
	_, err := Dispatch(context.Background(), buf)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.InvalidCurve))
}
