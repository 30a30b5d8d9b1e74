package bigint

import (
	"math/big"
	"math/rand"
	"testing"
)

func TestQuoRemMatchesBigInt(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		aBig := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), 300))
		bBig := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), 150))
		if bBig.Sign() == 0 {
			bBig.SetUint64(1)
		}
		a := fromBig(aBig, 5)
		b := fromBig(bBig, 3)

		q, rem := QuoRem(a, b)

		wantQ, wantR := new(big.Int).QuoRem(aBig, bBig, new(big.Int))
		if toBig(q).Cmp(wantQ) != 0 {
			t.Fatalf("quotient mismatch for a=%s b=%s: got %s want %s", aBig, bBig, toBig(q), wantQ)
		}
		if toBig(rem).Cmp(wantR) != 0 {
			t.Fatalf("remainder mismatch for a=%s b=%s: got %s want %s", aBig, bBig, toBig(rem), wantR)
		}
	}
}

func TestQuoRemExactDivision(t *testing.T) {
	a := fromBig(big.NewInt(100), 2)
	b := fromBig(big.NewInt(4), 1)
	q, rem := QuoRem(a, b)
	if toBig(q).Uint64() != 25 || !rem.IsZero() {
		t.Fatalf("100/4: got q=%v rem=%v", toBig(q), rem)
	}
}

func TestFromHexToHexRoundTrip(t *testing.T) {
	x := FromHex("0x1a2b3c", 1)
	if ToHex(x) != "0x1a2b3c" {
		t.Fatalf("got %s", ToHex(x))
	}
	zero := NewInt(1)
	if ToHex(zero) != "0x0" {
		t.Fatalf("zero: got %s", ToHex(zero))
	}
}

func TestFromDecimalMatchesBigInt(t *testing.T) {
	s := "258664426012969094010652733694893533536393512754914660539884262666720468348340822774968888139573360124440321458177"
	want, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatal("bad literal")
	}
	got := FromDecimal(s, (want.BitLen()+63)/64)
	if toBig(got).Cmp(want) != 0 {
		t.Fatalf("FromDecimal: got %s want %s", toBig(got), want)
	}
}
