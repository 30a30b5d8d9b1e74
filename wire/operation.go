package wire

import "github.com/HarryR/go-eip1962/bigint"

// Operation is the sealed interface every parsed request decodes into —
// the Go replacement for the source's tagged union over seven op shapes.
type Operation interface {
	isOperation()
	Opcode() Opcode
}

// G1Prefix is the common curve description shared by every G1 operation.
type G1Prefix struct {
	FieldLength int
	Modulus     *bigint.Modulus
	A, B        bigint.Int
	OrderLength int
	Order       bigint.Int
}

// G1Point is an affine point with plain (non-Montgomery) Fq coordinates, as
// decoded off the wire; curve/field construction happens downstream.
type G1Point struct {
	X, Y bigint.Int
}

type G1AddOp struct {
	Prefix G1Prefix
	P, Q   G1Point
}

func (G1AddOp) isOperation()     {}
func (G1AddOp) Opcode() Opcode   { return OpG1Add }

type G1MulOp struct {
	Prefix G1Prefix
	P      G1Point
	Scalar bigint.Int
}

func (G1MulOp) isOperation()   {}
func (G1MulOp) Opcode() Opcode { return OpG1Mul }

type G1MultiExpOp struct {
	Prefix  G1Prefix
	Points  []G1Point
	Scalars []bigint.Int
}

func (G1MultiExpOp) isOperation()   {}
func (G1MultiExpOp) Opcode() Opcode { return OpG1MultiExp }

// G2Prefix is the common curve description shared by every G2 operation.
// Points live in Fq^ExtensionDegree, the quadratic or cubic twist field.
type G2Prefix struct {
	FieldLength     int
	Modulus         *bigint.Modulus
	ExtensionDegree int
	NonResidue      bigint.Int
	A, B            bigint.Int
	OrderLength     int
	Order           bigint.Int
}

// G2Point is an affine point with plain Fq^d-coordinate vectors.
type G2Point struct {
	X, Y []bigint.Int
}

type G2AddOp struct {
	Prefix G2Prefix
	P, Q   G2Point
}

func (G2AddOp) isOperation()   {}
func (G2AddOp) Opcode() Opcode { return OpG2Add }

type G2MulOp struct {
	Prefix G2Prefix
	P      G2Point
	Scalar bigint.Int
}

func (G2MulOp) isOperation()   {}
func (G2MulOp) Opcode() Opcode { return OpG2Mul }

type G2MultiExpOp struct {
	Prefix  G2Prefix
	Points  []G2Point
	Scalars []bigint.Int
}

func (G2MultiExpOp) isOperation()   {}
func (G2MultiExpOp) Opcode() Opcode { return OpG2MultiExp }

// PairingDescriptor is the family-specific curve description consumed by a
// Pairing request. Fp6NonResidue is always a 2-element Fq2 value xi: the
// quadratic-G2 families' GT embedding needs it to flatten Fq[X]/(X^d - xi)
// into a single-variable extension of the base field Fq, while MNT6 reads
// only its first coefficient, as gamma (see package pairing).
type PairingDescriptor struct {
	Family          Family
	FieldLength     int
	Modulus         *bigint.Modulus
	ExtensionDegree int
	A, B            bigint.Int
	OrderLength     int
	Order           bigint.Int
	Fp2NonResidue   bigint.Int
	Fp6NonResidue   []bigint.Int
	TwistKind       Twist
	XParam          bigint.Int
	Sign            byte
}

// PairingPair is one (G1, G2) operand of a pairing product check.
type PairingPair struct {
	G1 G1Point
	G2 G2Point
}

type PairingOp struct {
	Descriptor PairingDescriptor
	Pairs      []PairingPair
}

func (PairingOp) isOperation()   {}
func (PairingOp) Opcode() Opcode { return OpPairing }
