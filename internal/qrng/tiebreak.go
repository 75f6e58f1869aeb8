package qrng

import "fmt"

// ReExecutor runs one fresh single-shot execution of the same circuit.
// Used only when multiple outcomes tie for maximum frequency.
type ReExecutor func() (Counts, error)

// ResolveTie picks the winning outcome from the in-range counts.
//
// A single outcome with the maximum count wins outright: it is itself a
// random draw, since the sampling that produced it was random. When
// several outcomes tie at the maximum, one extra single-shot run of the
// same circuit decides, so the tie is broken by fresh randomness from
// the backend rather than by an arbitrary rule. The single-shot result
// is taken as-is: it is not filtered against the requested range and
// cannot tie, because no comparison is performed on it.
//
// Returns the chosen outcome and whether the tie-break run was used.
func ResolveTie(valid map[int]int, reExec ReExecutor) (int, bool, error) {
	if len(valid) == 0 {
		return 0, false, fmt.Errorf("%w: empty valid outcome set", ErrNoValidOutcomes)
	}

	maxCount := 0
	for _, count := range valid {
		if count > maxCount {
			maxCount = count
		}
	}

	var candidates []int
	for outcome, count := range valid {
		if count == maxCount {
			candidates = append(candidates, outcome)
		}
	}

	if len(candidates) == 1 {
		return candidates[0], false, nil
	}

	result, err := reExec()
	if err != nil {
		return 0, false, err
	}
	for pattern := range result {
		outcome, err := ParseBitPattern(pattern)
		if err != nil {
			return 0, false, err
		}
		return outcome, true, nil
	}
	return 0, false, fmt.Errorf("%w: tie-break run returned no counts", ErrExecutionFailed)
}
