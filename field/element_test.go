package field

import (
	"math/big"
	"testing"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/stretchr/testify/require"
)

func modFromUint64(n uint64) *bigint.Modulus {
	return bigint.NewModulus(big.NewInt(0).SetUint64(n).Bytes())
}

func elemFromUint64(ctx *bigint.Modulus, v uint64) Element {
	return FromCanonical(ctx, bigint.FromBytes(big.NewInt(0).SetUint64(v).Bytes(), ctx.Limbs()))
}

func TestElementRoundTrip(t *testing.T) {
	ctx := modFromUint64(97)
	for v := uint64(0); v < 97; v++ {
		e := elemFromUint64(ctx, v)
		b := e.Bytes()
		got, err := FromBytes(ctx, b)
		require.NoError(t, err)
		require.True(t, got.Equal(e))
	}
}

func TestElementArithmeticMatchesBigInt(t *testing.T) {
	ctx := modFromUint64(1000003)
	q := big.NewInt(1000003)
	for a := uint64(0); a < 200; a++ {
		for b := uint64(0); b < 200; b++ {
			ae := elemFromUint64(ctx, a)
			be := elemFromUint64(ctx, b)

			sum := ae.Add(be).Canonical()
			wantSum := big.NewInt(0).Mod(big.NewInt(0).Add(big.NewInt(int64(a)), big.NewInt(int64(b))), q).Uint64()
			require.Equal(t, wantSum, limbToUint64(sum))

			prod := ae.Mul(be).Canonical()
			wantProd := big.NewInt(0).Mod(big.NewInt(0).Mul(big.NewInt(int64(a)), big.NewInt(int64(b))), q).Uint64()
			require.Equal(t, wantProd, limbToUint64(prod))
		}
	}
}

func limbToUint64(x bigint.Int) uint64 {
	if len(x) == 0 {
		return 0
	}
	return x[0]
}

func TestElementInverse(t *testing.T) {
	ctx := modFromUint64(97)
	for v := uint64(1); v < 97; v++ {
		e := elemFromUint64(ctx, v)
		inv, err := e.Inverse()
		require.NoError(t, err)
		require.True(t, e.Mul(inv).Equal(One(ctx)))
	}
}

func TestLegendreKnownResidues(t *testing.T) {
	// mod 7: squares are 1,4,2 (1^2=1,2^2=4,3^2=2); non-residues: 3,5,6.
	ctx := modFromUint64(7)
	residues := map[uint64]bool{0: false, 1: true, 2: true, 3: false, 4: true, 5: false, 6: false}
	for v, wantResidue := range residues {
		e := elemFromUint64(ctx, v)
		l := Legendre(e)
		if v == 0 {
			require.Equal(t, 0, l)
			continue
		}
		if wantResidue {
			require.Equal(t, 1, l, "v=%d", v)
		} else {
			require.Equal(t, -1, l, "v=%d", v)
		}
	}
}
