package qrng

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Result is the output of one end-to-end draw.
type Result struct {
	// RandomNumber lies in [0, numOutcomes-1] except when a tie-break run
	// produced it: the single-shot value is returned unfiltered (see
	// ResolveTie).
	RandomNumber int

	// NormalizedSpread scores how uniform the sampled distribution was.
	NormalizedSpread float64

	NumQubits int
	TieBroken bool

	// RawCounts is the main batch's measurement result, kept for
	// auditing and histogram display.
	RawCounts Counts
}

// Runner composes circuit sizing, execution, analysis and tie resolution
// into the end-to-end "produce one random integer" operation. Stateless
// between calls; the executor is the only collaborator.
type Runner struct {
	exec Executor
	log  zerolog.Logger
}

// NewRunner creates a new runner
func NewRunner(exec Executor, log zerolog.Logger) *Runner {
	return &Runner{
		exec: exec,
		log:  log.With().Str("component", "qrng").Logger(),
	}
}

// Run produces one random integer in [0, numOutcomes-1] plus the spread
// metric, sampling the backend with the given shot count.
//
// numOutcomes == 1 has exactly one possible answer, and a zero-qubit
// circuit is ill-defined for most executors, so it returns 0 immediately
// without touching the backend. The executor is invoked at most twice:
// the main batch, and one single-shot run if outcomes tie at maximum
// frequency. Errors from any stage propagate with their kind intact; a
// failed execution is terminal for the call, never retried.
func (r *Runner) Run(ctx context.Context, numOutcomes, shots int) (Result, error) {
	if shots <= 0 {
		return Result{}, fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidArgument, shots)
	}

	spec, err := BuildCircuit(numOutcomes)
	if err != nil {
		return Result{}, err
	}
	if numOutcomes == 1 {
		r.log.Debug().Msg("Single-outcome request, skipping execution")
		return Result{RandomNumber: 0, NormalizedSpread: 0, NumQubits: 0}, nil
	}
	r.log.Debug().
		Int("num_outcomes", numOutcomes).
		Int("num_qubits", spec.NumQubits).
		Msg("Circuit spec built")

	result, err := r.exec.Execute(ctx, spec, shots)
	if err != nil {
		return Result{}, err
	}
	r.log.Debug().
		Str("backend", r.exec.Name()).
		Int("shots", shots).
		Int("distinct_patterns", len(result)).
		Msg("Execution completed")

	analysis, err := Analyze(result, numOutcomes)
	if err != nil {
		return Result{}, err
	}

	randomNumber, tieBroken, err := ResolveTie(analysis.Valid, func() (Counts, error) {
		r.log.Info().Msg("Multiple outcomes at maximum frequency, re-running with a single shot")
		return r.exec.Execute(ctx, spec, 1)
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		RandomNumber:     randomNumber,
		NormalizedSpread: analysis.NormalizedSpread,
		NumQubits:        spec.NumQubits,
		TieBroken:        tieBroken,
		RawCounts:        result,
	}, nil
}
