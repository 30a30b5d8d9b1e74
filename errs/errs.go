// Package errs defines the sentinel error kinds every parser and
// arithmetic primitive in this module surfaces to its caller, so callers
// can branch with errors.Is regardless of which package raised the error.
package errs

import "errors"

var (
	// ParseTruncated: the byte cursor ran out before a declared length.
	ParseTruncated = errors.New("eip1962: truncated input")
	// ParseNotCanonical: an integer encoding is >= its declared modulus.
	ParseNotCanonical = errors.New("eip1962: value is not canonical")
	// ParseBadEnum: an unknown opcode, curve family, or twist type.
	ParseBadEnum = errors.New("eip1962: unrecognized enum value")
	// InvalidCurve: a non-prime-looking modulus, zero order, BLS12 with
	// a != 0, a failed non-residue check, or (p^k-1) mod r != 0.
	InvalidCurve = errors.New("eip1962: invalid curve description")
	// NotOnCurve: a point fails its curve equation.
	NotOnCurve = errors.New("eip1962: point not on curve")
	// NotInSubgroup: a pairing input is not in the prime-order subgroup.
	NotInSubgroup = errors.New("eip1962: point not in prime-order subgroup")
	// ArithmeticError: inversion of zero during a computation.
	ArithmeticError = errors.New("eip1962: arithmetic error")
	// Cancelled: cooperative cancellation observed mid-operation.
	Cancelled = errors.New("eip1962: operation cancelled")
)
