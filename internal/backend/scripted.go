package backend

import (
	"context"
	"fmt"

	"github.com/matteo-piccolini/qrand/internal/qrng"
)

// Scripted is a deterministic executor that replays a fixed sequence of
// results, one per Execute call. Used by tests and by the algorithm's
// consumers that need reproducible draws.
type Scripted struct {
	results []qrng.Counts
	errs    []error
	calls   int
}

// NewScripted creates a scripted executor; call Queue to add responses.
func NewScripted() *Scripted { return &Scripted{} }

// Queue appends a response for the next unserved Execute call.
func (s *Scripted) Queue(result qrng.Counts) *Scripted {
	s.results = append(s.results, result)
	s.errs = append(s.errs, nil)
	return s
}

// QueueErr appends a failing response.
func (s *Scripted) QueueErr(err error) *Scripted {
	s.results = append(s.results, nil)
	s.errs = append(s.errs, err)
	return s
}

// Calls reports how many times Execute has been invoked.
func (s *Scripted) Calls() int { return s.calls }

// Name implements qrng.Executor
func (s *Scripted) Name() string { return "scripted" }

// Execute implements qrng.Executor
func (s *Scripted) Execute(_ context.Context, _ qrng.CircuitSpec, _ int) (qrng.Counts, error) {
	if s.calls >= len(s.results) {
		return nil, fmt.Errorf("%w: scripted executor exhausted after %d calls", qrng.ErrExecutionFailed, s.calls)
	}
	result, err := s.results[s.calls], s.errs[s.calls]
	s.calls++
	if err != nil {
		return nil, err
	}
	return result, nil
}
