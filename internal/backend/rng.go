// Package backend provides executor implementations for the sampling
// core: an in-process simulator with an optional noise model, and a
// scripted double for deterministic tests. The remote QPU client lives
// in internal/clients/qpu.
package backend

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies the classical randomness behind the simulator's
// measurement sampling.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// cryptoRNG draws from crypto/rand, falling back to math/rand/v2 if the
// system source is unreadable.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // keep 53 bits
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the crypto-backed source used in production.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible source for tests and calibration
// experiments.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
