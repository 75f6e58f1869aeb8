package backend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matteo-piccolini/qrand/internal/qrng"
)

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func TestSimulator_CountsSumToShots(t *testing.T) {
	sim, err := NewSimulator(SimulatorConfig{RNG: NewSeededRNG(42)}, testLogger())
	require.NoError(t, err)

	spec := qrng.CircuitSpec{NumQubits: 3, NumOutcomes: 8}
	counts, err := sim.Execute(context.Background(), spec, 1000)
	require.NoError(t, err)

	total := 0
	for pattern, n := range counts {
		assert.Len(t, pattern, 3, "pattern width must equal qubit count")
		assert.Positive(t, n)
		total += n
	}
	assert.Equal(t, 1000, total)
	// 1000 shots over 8 patterns: every pattern should appear
	assert.Len(t, counts, 8)
}

func TestSimulator_SeededRunsAreReproducible(t *testing.T) {
	spec := qrng.CircuitSpec{NumQubits: 2, NumOutcomes: 4}

	sim1, err := NewSimulator(SimulatorConfig{RNG: NewSeededRNG(7)}, testLogger())
	require.NoError(t, err)
	counts1, err := sim1.Execute(context.Background(), spec, 500)
	require.NoError(t, err)

	sim2, err := NewSimulator(SimulatorConfig{RNG: NewSeededRNG(7)}, testLogger())
	require.NoError(t, err)
	counts2, err := sim2.Execute(context.Background(), spec, 500)
	require.NoError(t, err)

	assert.Equal(t, counts1, counts2)
}

func TestSimulator_FullDampingCollapsesToZero(t *testing.T) {
	// gamma=1: every measured 1 relaxes to 0
	sim, err := NewSimulator(SimulatorConfig{Gamma: 1, RNG: NewSeededRNG(1)}, testLogger())
	require.NoError(t, err)

	spec := qrng.CircuitSpec{NumQubits: 4, NumOutcomes: 16}
	counts, err := sim.Execute(context.Background(), spec, 200)
	require.NoError(t, err)

	assert.Equal(t, qrng.Counts{"0000": 200}, counts)
}

func TestSimulator_SingleShot(t *testing.T) {
	sim, err := NewSimulator(SimulatorConfig{RNG: NewSeededRNG(3)}, testLogger())
	require.NoError(t, err)

	spec := qrng.CircuitSpec{NumQubits: 3, NumOutcomes: 8}
	counts, err := sim.Execute(context.Background(), spec, 1)
	require.NoError(t, err)

	assert.Len(t, counts, 1)
	for _, n := range counts {
		assert.Equal(t, 1, n)
	}
}

func TestSimulator_RejectsZeroWidthCircuit(t *testing.T) {
	sim, err := NewSimulator(SimulatorConfig{}, testLogger())
	require.NoError(t, err)

	_, err = sim.Execute(context.Background(), qrng.CircuitSpec{NumQubits: 0, NumOutcomes: 1}, 10)
	assert.ErrorIs(t, err, qrng.ErrExecutionFailed)
}

func TestSimulator_RejectsNonPositiveShots(t *testing.T) {
	sim, err := NewSimulator(SimulatorConfig{}, testLogger())
	require.NoError(t, err)

	_, err = sim.Execute(context.Background(), qrng.CircuitSpec{NumQubits: 2, NumOutcomes: 4}, 0)
	assert.ErrorIs(t, err, qrng.ErrExecutionFailed)
}

func TestSimulator_CancelledContext(t *testing.T) {
	sim, err := NewSimulator(SimulatorConfig{}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = sim.Execute(ctx, qrng.CircuitSpec{NumQubits: 2, NumOutcomes: 4}, 10)
	assert.ErrorIs(t, err, qrng.ErrBackendUnavailable)
}

func TestNewSimulator_InvalidGamma(t *testing.T) {
	_, err := NewSimulator(SimulatorConfig{Gamma: 1.5}, testLogger())
	assert.ErrorIs(t, err, qrng.ErrInvalidArgument)

	_, err = NewSimulator(SimulatorConfig{Gamma: -0.1}, testLogger())
	assert.ErrorIs(t, err, qrng.ErrInvalidArgument)
}

func TestScripted_ReplaysQueuedResults(t *testing.T) {
	scripted := NewScripted().
		Queue(qrng.Counts{"00": 25, "01": 25, "10": 25, "11": 25}).
		Queue(qrng.Counts{"10": 1})

	spec := qrng.CircuitSpec{NumQubits: 2, NumOutcomes: 4}

	first, err := scripted.Execute(context.Background(), spec, 100)
	require.NoError(t, err)
	assert.Equal(t, 25, first["00"])

	second, err := scripted.Execute(context.Background(), spec, 1)
	require.NoError(t, err)
	assert.Equal(t, qrng.Counts{"10": 1}, second)

	_, err = scripted.Execute(context.Background(), spec, 1)
	assert.ErrorIs(t, err, qrng.ErrExecutionFailed, "exhausted script must fail")
	assert.Equal(t, 3, scripted.Calls())
}
