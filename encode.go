// Package precompile implements the dispatcher (component G): it takes a
// parsed wire.Operation, builds the bigint/field/curve/pairing contexts the
// operation needs, runs the matching group-law or pairing handler, and
// encodes the result as the big-endian byte layout spec.md §6 describes.
package precompile

import (
	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/curve"
	"github.com/HarryR/go-eip1962/field"
)

// encodeG1 encodes a (possibly infinite) G1 point as two field-length
// coordinates; infinity is the all-zero encoding, matching EIP-1962's
// convention that the identity has no canonical nonzero representative.
func encodeG1(p curve.Point[field.Element], fieldLen int) []byte {
	out := make([]byte, 2*fieldLen)
	if p.IsInfinity() {
		return out
	}
	copy(out[:fieldLen], bigint.ToBytes(p.X().Canonical(), fieldLen))
	copy(out[fieldLen:], bigint.ToBytes(p.Y().Canonical(), fieldLen))
	return out
}

// encodeG2 encodes a (possibly infinite) G2 point as two
// extensionDegree*fieldLength-byte coordinates.
func encodeG2(p curve.Point[field.Tower], fieldLen, extDegree int) []byte {
	out := make([]byte, 2*extDegree*fieldLen)
	if p.IsInfinity() {
		return out
	}
	xCoeffs, yCoeffs := p.X().Coeffs(), p.Y().Coeffs()
	for i := 0; i < extDegree; i++ {
		copy(out[i*fieldLen:(i+1)*fieldLen], bigint.ToBytes(xCoeffs[i].Canonical(), fieldLen))
		copy(out[(extDegree+i)*fieldLen:(extDegree+i+1)*fieldLen], bigint.ToBytes(yCoeffs[i].Canonical(), fieldLen))
	}
	return out
}

// encodeBool encodes a pairing check's boolean result as the single byte
// spec.md §6 specifies: 0x01 for equality to the GT identity, 0x00 otherwise.
func encodeBool(b bool) []byte {
	if b {
		return []byte{0x01}
	}
	return []byte{0x00}
}
