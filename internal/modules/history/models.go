// Package history persists every draw and calibration run to the
// history database, keeping an auditable record of what the backend
// produced over time.
package history

import "time"

// Draw is one recorded end-to-end draw.
type Draw struct {
	ID               string         `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	Backend          string         `json:"backend"`
	NumOutcomes      int            `json:"num_outcomes"`
	Shots            int            `json:"shots"`
	NumQubits        int            `json:"num_qubits"`
	RandomNumber     int            `json:"random_number"`
	NormalizedSpread float64        `json:"normalized_spread"`
	TieBroken        bool           `json:"tie_broken"`
	RawCounts        map[string]int `json:"raw_counts,omitempty"`
}

// CalibrationRun is one recorded scheduled calibration batch.
type CalibrationRun struct {
	ID               int64     `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Backend          string    `json:"backend"`
	NumOutcomes      int       `json:"num_outcomes"`
	Shots            int       `json:"shots"`
	NormalizedSpread float64   `json:"normalized_spread"`
}
