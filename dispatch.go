package precompile

import (
	"context"
	"errors"
	"fmt"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/curve"
	"github.com/HarryR/go-eip1962/errs"
	"github.com/HarryR/go-eip1962/field"
	"github.com/HarryR/go-eip1962/pairing"
	"github.com/HarryR/go-eip1962/wire"
	"github.com/rs/zerolog/log"
)

// Dispatch parses req, runs the operation it describes, and returns the
// encoded result bytes, or a wrapped errs.<Kind> on failure. This is the
// single entry point a caller (the gas-metering/consensus shim, out of
// scope per spec.md §1) needs.
func Dispatch(ctx context.Context, req []byte) ([]byte, error) {
	op, err := wire.Parse(req)
	if err != nil {
		log.Error().Err(err).Msg("eip1962: parse failed")
		return nil, err
	}

	log.Debug().Stringer("opcode", op.Opcode()).Msg("eip1962: dispatching")

	out, err := run(ctx, op)
	if err != nil {
		log.Error().Err(err).Stringer("opcode", op.Opcode()).Msg("eip1962: operation failed")
		return nil, mapErr(err)
	}
	return out, nil
}

// mapErr folds arithmetic failures that arise deep inside field/curve
// operations (which return bigint's own sentinel, not an errs.Kind, so
// that those packages stay free of a dependency on the error taxonomy)
// into errs.ArithmeticError at the one boundary that needs to produce a
// typed (status, kind) pair for the caller.
func mapErr(err error) error {
	if errors.Is(err, bigint.ErrNotInvertible) {
		return fmt.Errorf("%w: %v", errs.ArithmeticError, err)
	}
	return err
}

func run(ctx context.Context, op wire.Operation) ([]byte, error) {
	switch o := op.(type) {
	case wire.G1AddOp:
		return runG1Add(o)
	case wire.G1MulOp:
		return runG1Mul(o)
	case wire.G1MultiExpOp:
		return runG1MultiExp(ctx, o)
	case wire.G2AddOp:
		return runG2Add(o)
	case wire.G2MulOp:
		return runG2Mul(o)
	case wire.G2MultiExpOp:
		return runG2MultiExp(ctx, o)
	case wire.PairingOp:
		return runPairing(ctx, o)
	default:
		return nil, fmt.Errorf("%w: unhandled operation %T", errs.ParseBadEnum, op)
	}
}

// reduceScalar reduces s modulo the operation's declared group order,
// bounding the iteration count of the scalar multiply that follows
// (spec.md §4.D).
func reduceScalar(s, order bigint.Int) bigint.Int {
	_, rem := bigint.QuoRem(s, order)
	return rem
}

func runG1Add(o wire.G1AddOp) ([]byte, error) {
	params := g1Params(o.Prefix)
	p := g1Point(o.Prefix.Modulus, o.P)
	q := g1Point(o.Prefix.Modulus, o.Q)
	r, err := curve.Add(p, q, params)
	if err != nil {
		return nil, err
	}
	return encodeG1(r, o.Prefix.FieldLength), nil
}

func runG1Mul(o wire.G1MulOp) ([]byte, error) {
	params := g1Params(o.Prefix)
	p := g1Point(o.Prefix.Modulus, o.P)
	scalar := reduceScalar(o.Scalar, o.Prefix.Order)
	r, err := curve.ScalarMul(p, scalar, params)
	if err != nil {
		return nil, err
	}
	return encodeG1(r, o.Prefix.FieldLength), nil
}

func runG1MultiExp(ctx context.Context, o wire.G1MultiExpOp) ([]byte, error) {
	params := g1Params(o.Prefix)
	points := make([]curve.Point[field.Element], len(o.Points))
	scalars := make([]bigint.Int, len(o.Points))
	for i, pt := range o.Points {
		points[i] = g1Point(o.Prefix.Modulus, pt)
		scalars[i] = reduceScalar(o.Scalars[i], o.Prefix.Order)
	}
	r, err := curve.MultiExp(ctx, points, scalars, params)
	if err != nil {
		return nil, err
	}
	return encodeG1(r, o.Prefix.FieldLength), nil
}

func runG2Add(o wire.G2AddOp) ([]byte, error) {
	tctx := g2TowerCtx(o.Prefix)
	params := g2Params(o.Prefix, tctx)
	p := g2Point(tctx, o.Prefix.Modulus, o.P)
	q := g2Point(tctx, o.Prefix.Modulus, o.Q)
	r, err := curve.Add(p, q, params)
	if err != nil {
		return nil, err
	}
	return encodeG2(r, o.Prefix.FieldLength, o.Prefix.ExtensionDegree), nil
}

func runG2Mul(o wire.G2MulOp) ([]byte, error) {
	tctx := g2TowerCtx(o.Prefix)
	params := g2Params(o.Prefix, tctx)
	p := g2Point(tctx, o.Prefix.Modulus, o.P)
	scalar := reduceScalar(o.Scalar, o.Prefix.Order)
	r, err := curve.ScalarMul(p, scalar, params)
	if err != nil {
		return nil, err
	}
	return encodeG2(r, o.Prefix.FieldLength, o.Prefix.ExtensionDegree), nil
}

func runG2MultiExp(ctx context.Context, o wire.G2MultiExpOp) ([]byte, error) {
	tctx := g2TowerCtx(o.Prefix)
	params := g2Params(o.Prefix, tctx)
	points := make([]curve.Point[field.Tower], len(o.Points))
	scalars := make([]bigint.Int, len(o.Points))
	for i, pt := range o.Points {
		points[i] = g2Point(tctx, o.Prefix.Modulus, pt)
		scalars[i] = reduceScalar(o.Scalars[i], o.Prefix.Order)
	}
	r, err := curve.MultiExp(ctx, points, scalars, params)
	if err != nil {
		return nil, err
	}
	return encodeG2(r, o.Prefix.FieldLength, o.Prefix.ExtensionDegree), nil
}

func runPairing(ctx context.Context, o wire.PairingOp) ([]byte, error) {
	ok, err := pairing.Check(ctx, o.Descriptor, o.Pairs)
	if err != nil {
		return nil, err
	}
	return encodeBool(ok), nil
}
