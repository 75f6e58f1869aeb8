// Package qrng implements the sampling-and-selection protocol behind the
// random number service: sizing the circuit for a requested outcome range,
// interpreting raw measurement counts, scoring how uniform the sampled
// distribution was, and resolving ties among the most frequent outcomes
// with a fresh single-shot run.
package qrng

import (
	"context"
	"fmt"
	"math/bits"
)

// CircuitSpec describes the abstract circuit sampled by a backend: every
// qubit in an equal superposition of its basis states, then all qubits
// measured into a same-width classical register. Immutable once built.
type CircuitSpec struct {
	NumQubits   int
	NumOutcomes int
}

// Counts maps a fixed-width measurement bitstring (big-endian) to the
// number of shots that produced it. The values sum to the shot count of
// the execution that produced them.
type Counts map[string]int

// Executor runs a circuit on some execution backend and reports the
// measured bitstring counts. Implementations must return
// ErrBackendUnavailable-kinded errors for connectivity/session failures
// and ErrExecutionFailed-kinded errors for rejected jobs.
type Executor interface {
	Name() string
	Execute(ctx context.Context, spec CircuitSpec, shots int) (Counts, error)
}

// BuildCircuit sizes the circuit for the requested outcome range.
// numOutcomes == 1 yields a zero-qubit spec; callers short-circuit that
// case before touching an executor (see Runner.Run).
func BuildCircuit(numOutcomes int) (CircuitSpec, error) {
	if numOutcomes <= 0 {
		return CircuitSpec{}, fmt.Errorf("%w: num outcomes must be positive, got %d", ErrInvalidArgument, numOutcomes)
	}
	return CircuitSpec{
		NumQubits:   QubitsFor(numOutcomes),
		NumOutcomes: numOutcomes,
	}, nil
}

// QubitsFor returns ceil(log2(n)), the minimal register width covering n
// outcomes. Computed on integers to avoid float log rounding at powers
// of two.
func QubitsFor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}
