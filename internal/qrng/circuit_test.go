package qrng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCircuit_QubitWidths(t *testing.T) {
	tests := []struct {
		numOutcomes int
		wantQubits  int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{16, 4},
		{100, 7},
		{1024, 10},
	}

	for _, tt := range tests {
		spec, err := BuildCircuit(tt.numOutcomes)
		require.NoError(t, err, "numOutcomes=%d", tt.numOutcomes)
		assert.Equal(t, tt.wantQubits, spec.NumQubits, "numOutcomes=%d", tt.numOutcomes)
		assert.Equal(t, tt.numOutcomes, spec.NumOutcomes)
	}
}

func TestBuildCircuit_InvalidArgument(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		_, err := BuildCircuit(n)
		assert.ErrorIs(t, err, ErrInvalidArgument, "numOutcomes=%d", n)
	}
}

func TestParseBitPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"0", 0},
		{"1", 1},
		{"010", 2},
		{"101", 5},
		{"111", 7},
		{"0011", 3},
	}
	for _, tt := range tests {
		got, err := ParseBitPattern(tt.pattern)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "pattern=%s", tt.pattern)
	}
}

func TestParseBitPattern_Malformed(t *testing.T) {
	_, err := ParseBitPattern("01x1")
	assert.ErrorIs(t, err, ErrExecutionFailed)

	_, err = ParseBitPattern("")
	assert.ErrorIs(t, err, ErrExecutionFailed)
}
