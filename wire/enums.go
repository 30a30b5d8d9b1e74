package wire

import "fmt"

// Opcode identifies the top-level operation a request requests.
type Opcode byte

const (
	OpG1Add       Opcode = 1
	OpG1Mul       Opcode = 2
	OpG1MultiExp  Opcode = 3
	OpG2Add       Opcode = 4
	OpG2Mul       Opcode = 5
	OpG2MultiExp  Opcode = 6
	OpPairing     Opcode = 7
)

func (o Opcode) String() string {
	switch o {
	case OpG1Add:
		return "G1_ADD"
	case OpG1Mul:
		return "G1_MUL"
	case OpG1MultiExp:
		return "G1_MULTIEXP"
	case OpG2Add:
		return "G2_ADD"
	case OpG2Mul:
		return "G2_MUL"
	case OpG2MultiExp:
		return "G2_MULTIEXP"
	case OpPairing:
		return "PAIRING"
	default:
		return fmt.Sprintf("Opcode(%d)", byte(o))
	}
}

// Family identifies the pairing-friendly curve family of a Pairing request.
type Family byte

const (
	FamilyBLS12 Family = 1
	FamilyBN    Family = 2
	FamilyMNT4  Family = 3
	FamilyMNT6  Family = 4
	FamilyCP    Family = 5
)

func (f Family) String() string {
	switch f {
	case FamilyBLS12:
		return "BLS12"
	case FamilyBN:
		return "BN"
	case FamilyMNT4:
		return "MNT4"
	case FamilyMNT6:
		return "MNT6"
	case FamilyCP:
		return "CP"
	default:
		return fmt.Sprintf("Family(%d)", byte(f))
	}
}

// Twist identifies which isomorphism direction a curve's G2→GT embedding uses.
type Twist byte

const (
	TwistM Twist = 1
	TwistD Twist = 2
)

func (t Twist) String() string {
	switch t {
	case TwistM:
		return "M"
	case TwistD:
		return "D"
	default:
		return fmt.Sprintf("Twist(%d)", byte(t))
	}
}
