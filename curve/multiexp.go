package curve

import (
	"context"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/errs"
)

// pippengerThreshold is the point count at or above which MultiExp switches from
// the naive per-term scalar multiply to Pippenger's bucket method. Below
// it, the fixed overhead of building buckets outweighs the asymptotic win.
const pippengerThreshold = 32

const windowBits = 4

// MultiExp computes sum(scalars[i]*points[i]), polling ctx for cooperative
// cancellation once per accumulation step (spec.md §5).
func MultiExp[F FieldElement[F]](ctx context.Context, points []Point[F], scalars []bigint.Int, params Params[F]) (Point[F], error) {
	if len(points) != len(scalars) {
		return Point[F]{}, ErrLengthMismatch
	}
	if len(points) < pippengerThreshold {
		return multiExpNaive(ctx, points, scalars, params)
	}
	return multiExpPippenger(ctx, points, scalars, params)
}

func multiExpNaive[F FieldElement[F]](ctx context.Context, points []Point[F], scalars []bigint.Int, params Params[F]) (Point[F], error) {
	acc := Infinity[F]()
	for i := range points {
		select {
		case <-ctx.Done():
			return Point[F]{}, errs.Cancelled
		default:
		}
		term, err := ScalarMul(points[i], scalars[i], params)
		if err != nil {
			return Point[F]{}, err
		}
		acc, err = Add(acc, term, params)
		if err != nil {
			return Point[F]{}, err
		}
	}
	return acc, nil
}

// multiExpPippenger buckets points by a fixed-width window of each scalar,
// processing windows from most to least significant and summing each
// window's buckets with the standard running-sum trick (avoiding an
// explicit per-bucket scalar multiply).
func multiExpPippenger[F FieldElement[F]](ctx context.Context, points []Point[F], scalars []bigint.Int, params Params[F]) (Point[F], error) {
	maxBits := 0
	for _, s := range scalars {
		if bl := s.BitLen(); bl > maxBits {
			maxBits = bl
		}
	}
	if maxBits == 0 {
		return Infinity[F](), nil
	}
	numWindows := (maxBits + windowBits - 1) / windowBits
	numBuckets := 1 << windowBits

	result := Infinity[F]()
	for w := numWindows - 1; w >= 0; w-- {
		select {
		case <-ctx.Done():
			return Point[F]{}, errs.Cancelled
		default:
		}
		var err error
		for i := 0; i < windowBits; i++ {
			result, err = Double(result, params)
			if err != nil {
				return Point[F]{}, err
			}
		}

		buckets := make([]Point[F], numBuckets)
		for i := range buckets {
			buckets[i] = Infinity[F]()
		}
		for i, s := range scalars {
			digit := windowDigit(s, w)
			if digit == 0 {
				continue
			}
			buckets[digit], err = Add(buckets[digit], points[i], params)
			if err != nil {
				return Point[F]{}, err
			}
		}

		windowSum := Infinity[F]()
		running := Infinity[F]()
		for b := numBuckets - 1; b >= 1; b-- {
			running, err = Add(running, buckets[b], params)
			if err != nil {
				return Point[F]{}, err
			}
			windowSum, err = Add(windowSum, running, params)
			if err != nil {
				return Point[F]{}, err
			}
		}
		result, err = Add(result, windowSum, params)
		if err != nil {
			return Point[F]{}, err
		}
	}
	return result, nil
}

// windowDigit extracts the windowBits-wide digit at window index w (0 is
// least significant) from scalar s.
func windowDigit(s bigint.Int, w int) int {
	start := w * windowBits
	val := 0
	for i := 0; i < windowBits; i++ {
		if s.Bit(start + i) {
			val |= 1 << i
		}
	}
	return val
}
