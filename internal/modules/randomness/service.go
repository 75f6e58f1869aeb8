// Package randomness exposes the draw operation: sample the configured
// backend, select one integer in the requested range, and record the
// draw to history.
package randomness

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matteo-piccolini/qrand/internal/modules/history"
	"github.com/matteo-piccolini/qrand/internal/qrng"
)

// Recorder persists completed draws. Satisfied by *history.Repository.
type Recorder interface {
	InsertDraw(d history.Draw) error
}

// Service performs draws against a single executor and records them.
type Service struct {
	runner   *qrng.Runner
	exec     qrng.Executor
	recorder Recorder
	log      zerolog.Logger
}

// NewService creates a new randomness service.
// recorder may be nil, in which case draws are not persisted.
func NewService(exec qrng.Executor, recorder Recorder, log zerolog.Logger) *Service {
	return &Service{
		runner:   qrng.NewRunner(exec, log),
		exec:     exec,
		recorder: recorder,
		log:      log.With().Str("service", "randomness").Logger(),
	}
}

// Draw produces one random integer in [0, numOutcomes-1] using shots
// measurement trials, and records the result. A failed history write
// does not fail the draw: the number was already produced, losing the
// audit row is the lesser problem.
func (s *Service) Draw(ctx context.Context, numOutcomes, shots int) (history.Draw, error) {
	result, err := s.runner.Run(ctx, numOutcomes, shots)
	if err != nil {
		return history.Draw{}, err
	}

	draw := history.Draw{
		ID:               uuid.New().String(),
		CreatedAt:        time.Now().UTC(),
		Backend:          s.exec.Name(),
		NumOutcomes:      numOutcomes,
		Shots:            shots,
		NumQubits:        result.NumQubits,
		RandomNumber:     result.RandomNumber,
		NormalizedSpread: result.NormalizedSpread,
		TieBroken:        result.TieBroken,
		RawCounts:        result.RawCounts,
	}

	if s.recorder != nil {
		if err := s.recorder.InsertDraw(draw); err != nil {
			s.log.Error().Err(err).Str("draw_id", draw.ID).Msg("Failed to record draw")
		}
	}

	s.log.Info().
		Str("draw_id", draw.ID).
		Int("num_outcomes", numOutcomes).
		Int("shots", shots).
		Int("random_number", draw.RandomNumber).
		Float64("normalized_spread", draw.NormalizedSpread).
		Bool("tie_broken", draw.TieBroken).
		Msg("Draw completed")

	return draw, nil
}
