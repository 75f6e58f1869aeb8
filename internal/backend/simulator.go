package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matteo-piccolini/qrand/internal/qrng"
)

// SimulatorConfig holds simulator configuration
type SimulatorConfig struct {
	// Gamma is the per-qubit amplitude damping probability: each measured
	// 1 independently decays to 0 with this probability, approximating
	// the relaxation noise of real hardware. 0 disables noise.
	Gamma float64

	// RNG overrides the classical randomness source. Nil means the
	// crypto-backed default.
	RNG RandomSource
}

// Simulator samples a uniform superposition in-process: every qubit is a
// fair coin per shot, optionally perturbed by amplitude damping.
type Simulator struct {
	gamma float64
	rng   RandomSource
	log   zerolog.Logger
}

// NewSimulator creates a new simulator backend
func NewSimulator(cfg SimulatorConfig, log zerolog.Logger) (*Simulator, error) {
	if cfg.Gamma < 0 || cfg.Gamma > 1 {
		return nil, fmt.Errorf("%w: noise gamma must be in [0, 1], got %v", qrng.ErrInvalidArgument, cfg.Gamma)
	}
	rng := cfg.RNG
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Simulator{
		gamma: cfg.Gamma,
		rng:   rng,
		log:   log.With().Str("backend", "simulator").Logger(),
	}, nil
}

// Name implements qrng.Executor
func (s *Simulator) Name() string { return "simulator" }

// Execute runs shots independent measurement trials and returns the
// observed bitstring counts. The counts always sum to shots.
func (s *Simulator) Execute(ctx context.Context, spec qrng.CircuitSpec, shots int) (qrng.Counts, error) {
	if spec.NumQubits <= 0 {
		return nil, fmt.Errorf("%w: zero-width circuit is not measurable", qrng.ErrExecutionFailed)
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%w: shots must be positive, got %d", qrng.ErrExecutionFailed, shots)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", qrng.ErrBackendUnavailable, err)
	}

	counts := make(qrng.Counts)
	var sb strings.Builder
	for i := 0; i < shots; i++ {
		sb.Reset()
		for q := 0; q < spec.NumQubits; q++ {
			bit := byte('0')
			if s.rng.Float64() < 0.5 {
				bit = '1'
			}
			// amplitude damping: a measured 1 may relax to 0
			if bit == '1' && s.gamma > 0 && s.rng.Float64() < s.gamma {
				bit = '0'
			}
			sb.WriteByte(bit)
		}
		counts[sb.String()]++
	}

	s.log.Debug().
		Int("num_qubits", spec.NumQubits).
		Int("shots", shots).
		Int("distinct_patterns", len(counts)).
		Float64("gamma", s.gamma).
		Msg("Sampled circuit")

	return counts, nil
}
