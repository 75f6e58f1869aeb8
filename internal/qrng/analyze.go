package qrng

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matteo-piccolini/qrand/pkg/formulas"
)

// Analysis is the interpreted form of one execution's raw counts.
type Analysis struct {
	// IntCounts maps each observed outcome (bitstring parsed big-endian)
	// to its occurrence count.
	IntCounts map[int]int

	// NormalizedSpread is popStdDev(counts)/mean(counts) over ALL observed
	// outcomes, rounded to 9 decimal places. 0 means perfectly uniform.
	NormalizedSpread float64

	// Valid is IntCounts restricted to outcomes < numOutcomes. When the
	// range is not a power of two, measured patterns above it land only
	// in IntCounts.
	Valid map[int]int
}

// Analyze converts raw bitstring counts to integer outcomes, computes the
// normalized spread, and partitions outcomes into in-range and
// out-of-range relative to numOutcomes.
//
// Returns ErrDegenerateDistribution if the mean occurrence count is zero
// and ErrNoValidOutcomes if filtering empties the in-range subset.
func Analyze(result Counts, numOutcomes int) (Analysis, error) {
	if numOutcomes <= 0 {
		return Analysis{}, fmt.Errorf("%w: num outcomes must be positive, got %d", ErrInvalidArgument, numOutcomes)
	}

	intCounts := make(map[int]int, len(result))
	occurrences := make([]float64, 0, len(result))
	for pattern, count := range result {
		outcome, err := ParseBitPattern(pattern)
		if err != nil {
			return Analysis{}, err
		}
		intCounts[outcome] += count
		occurrences = append(occurrences, float64(count))
	}

	mean := formulas.Mean(occurrences)
	if mean == 0 {
		return Analysis{}, fmt.Errorf("%w: mean occurrence count is zero across %d outcomes", ErrDegenerateDistribution, len(occurrences))
	}
	spread := round9(formulas.PopStdDev(occurrences) / mean)

	valid := make(map[int]int, len(intCounts))
	for outcome, count := range intCounts {
		if outcome < numOutcomes {
			valid[outcome] = count
		}
	}
	if len(valid) == 0 {
		return Analysis{}, fmt.Errorf("%w: all %d measured outcomes fall outside [0, %d]", ErrNoValidOutcomes, len(intCounts), numOutcomes-1)
	}

	return Analysis{
		IntCounts:        intCounts,
		NormalizedSpread: spread,
		Valid:            valid,
	}, nil
}

// ParseBitPattern interprets a measurement bitstring as a big-endian
// binary integer. A malformed pattern means the executor broke its
// contract, so the error carries the ErrExecutionFailed kind.
func ParseBitPattern(pattern string) (int, error) {
	v, err := strconv.ParseInt(pattern, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed bit pattern %q: %v", ErrExecutionFailed, pattern, err)
	}
	return int(v), nil
}

// round9 rounds to 9 decimal places, matching the precision the spread
// metric is reported at.
func round9(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
